// Package capture records a short clip of a live source via ffmpeg. The
// recording is intentionally time-boxed: hitting the deadline is the
// normal way a capture ends, and the partial file written up to that
// point is the artifact.
package capture

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"go.uber.org/zap"
)

// DefaultTimeout bounds one capture. Four seconds of video is plenty to
// decode a single frame from.
const DefaultTimeout = 4 * time.Second

// ErrNoArtifact is returned when the capture ended without writing any
// bytes; there is nothing to extract a frame from.
var ErrNoArtifact = errors.New("capture produced no artifact")

// FFmpeg captures a bounded clip of a source URL to a local file.
type FFmpeg struct {
	timeout    time.Duration
	newCommand func(ctx context.Context, source, dest string) *exec.Cmd
	logger     *zap.Logger
}

// New builds a capturer with the given wall-clock bound. A zero timeout
// means DefaultTimeout.
func New(timeout time.Duration, logger *zap.Logger) *FFmpeg {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &FFmpeg{
		timeout: timeout,
		newCommand: func(ctx context.Context, source, dest string) *exec.Cmd {
			// Stream copy into MPEG-TS: no re-encode, and a
			// truncated TS file is still decodable.
			return exec.CommandContext(ctx, "ffmpeg",
				"-y", "-loglevel", "quiet",
				"-i", source,
				"-c", "copy", "-f", "mpegts",
				dest)
		},
		logger: logger.Named("capture"),
	}
}

// Capture records source into dest until the timeout elapses. The
// deadline is enforced here, not trusted to the external tool; when it
// fires the subprocess is killed and the partial file is accepted. Any
// other non-zero exit is a hard failure for the work item.
func (r *FFmpeg) Capture(ctx context.Context, source, dest string) error {
	cctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	err := r.newCommand(cctx, source, dest).Run()

	if errors.Is(cctx.Err(), context.DeadlineExceeded) {
		fi, statErr := os.Stat(dest)
		if statErr != nil || fi.Size() == 0 {
			return ErrNoArtifact
		}
		r.logger.Debug("capture reached deadline",
			zap.String("dest", dest),
			zap.Int64("bytes", fi.Size()))
		return nil
	}
	if err != nil {
		return fmt.Errorf("capture: %w", err)
	}
	return nil
}

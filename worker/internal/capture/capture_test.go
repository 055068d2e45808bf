package capture

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
)

// A source that never terminates must be cut off at the timeout and the
// partial file accepted as the artifact.
func TestCapture_TimeoutReturnsPartialArtifact(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "clip.ts")

	c := New(300*time.Millisecond, zap.NewNop())
	c.newCommand = func(ctx context.Context, source, d string) *exec.Cmd {
		// Write some bytes, then hang like a live stream does.
		return exec.CommandContext(ctx, "sh", "-c", "echo partial > "+d+" && sleep 60")
	}

	start := time.Now()
	err := c.Capture(context.Background(), "http://cdn/stream", dest)
	elapsed := time.Since(start)

	if err != nil {
		t.Fatalf("timeout is the expected terminator, got error: %v", err)
	}
	if elapsed > 2*time.Second {
		t.Fatalf("capture took %v, must return near the 300ms bound", elapsed)
	}
	data, readErr := os.ReadFile(dest)
	if readErr != nil || len(data) == 0 {
		t.Fatalf("partial artifact missing: %v", readErr)
	}
}

func TestCapture_TimeoutWithoutBytesIsNoArtifact(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "clip.ts")

	c := New(200*time.Millisecond, zap.NewNop())
	c.newCommand = func(ctx context.Context, source, d string) *exec.Cmd {
		return exec.CommandContext(ctx, "sleep", "60")
	}

	err := c.Capture(context.Background(), "http://cdn/stream", dest)
	if !errors.Is(err, ErrNoArtifact) {
		t.Fatalf("expected ErrNoArtifact, got %v", err)
	}
}

func TestCapture_NonZeroExitIsHardFailure(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "clip.ts")

	c := New(time.Second, zap.NewNop())
	c.newCommand = func(ctx context.Context, source, d string) *exec.Cmd {
		return exec.CommandContext(ctx, "false")
	}

	if err := c.Capture(context.Background(), "http://cdn/stream", dest); err == nil {
		t.Fatal("non-zero exit before the deadline must be an error")
	}
}

func TestCapture_CleanExitBeforeDeadline(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "clip.ts")

	c := New(time.Second, zap.NewNop())
	c.newCommand = func(ctx context.Context, source, d string) *exec.Cmd {
		return exec.CommandContext(ctx, "sh", "-c", "echo done > "+d)
	}

	if err := c.Capture(context.Background(), "http://cdn/stream", dest); err != nil {
		t.Fatalf("clean exit: %v", err)
	}
}

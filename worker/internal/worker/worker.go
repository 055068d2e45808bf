// Package worker runs the per-stream processing cycle: claim a stream
// from the work queue, resolve it to a playable source, capture a
// bounded clip, extract one cropped grayscale frame, pre-filter it,
// recognize the alive count and publish it to the leaderboard.
//
// A worker instance processes one work item at a time. Horizontal
// throughput comes from running more instances; the queue's atomic claim
// keeps them from duplicating effort.
package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/IBM/rotisserie/worker/internal/db"
	"github.com/IBM/rotisserie/worker/internal/entity"
	"github.com/IBM/rotisserie/worker/internal/metrics"
	"github.com/IBM/rotisserie/worker/internal/prefilter"
	"github.com/IBM/rotisserie/worker/internal/resolver"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SentinelAlive is published when the count is unknown or the broadcast
// is still in its pre-match lobby. It sorts last on the ascending
// leaderboard. The store cannot tell it apart from a genuine reading of
// 100 players.
const SentinelAlive = 100

// Mode selects the control flow around the shared per-cycle logic.
type Mode string

const (
	// ModeBatch drains the queue and exits on the first empty claim.
	ModeBatch Mode = "batch"
	// ModeLoop runs until stopped, backing off while the queue is empty.
	ModeLoop Mode = "loop"
)

const defaultBackoff = 5 * time.Second

type Queue interface {
	Claim(ctx context.Context) (string, error)
}

type Ranks interface {
	Publish(ctx context.Context, stream string, alive int) error
}

type Resolver interface {
	Resolve(ctx context.Context, stream string) (string, error)
}

type Capturer interface {
	Capture(ctx context.Context, source, dest string) error
}

type Recognizer interface {
	Recognize(ctx context.Context, image []byte) (int, error)
}

// Feed receives a copy of every published leaderboard entry.
type Feed interface {
	Publish(stream string, alive int)
}

// Still is one cropped grayscale frame, owned by the cycle that
// extracted it.
type Still interface {
	LuminanceAt(x, y int) (uint8, bool)
	EncodePNG() ([]byte, error)
	Close() error
}

// ExtractFunc produces a Still from a capture artifact.
type ExtractFunc func(path string, crop entity.CropRect) (Still, error)

// Deps wires a Service. Queue, Ranks, Resolver, Capturer, Extract and
// Recognizer are required; Feed is optional.
type Deps struct {
	Queue      Queue
	Ranks      Ranks
	Resolver   Resolver
	Capturer   Capturer
	Extract    ExtractFunc
	Recognizer Recognizer
	Feed       Feed

	Profile entity.GameProfile
	Mode    Mode
	Backoff time.Duration
	WorkDir string

	Metrics *metrics.Metrics
	Logger  *zap.Logger
}

type Service struct {
	queue      Queue
	ranks      Ranks
	resolver   Resolver
	capturer   Capturer
	extract    ExtractFunc
	recognizer Recognizer
	feed       Feed

	profile entity.GameProfile
	mode    Mode
	backoff time.Duration
	workDir string

	metrics *metrics.Metrics
	logger  *zap.Logger
}

func New(deps Deps) *Service {
	if deps.Backoff <= 0 {
		deps.Backoff = defaultBackoff
	}
	if deps.WorkDir == "" {
		deps.WorkDir = os.TempDir()
	}
	if deps.Mode == "" {
		deps.Mode = ModeBatch
	}
	if deps.Metrics == nil {
		deps.Metrics = metrics.New()
	}
	return &Service{
		queue:      deps.Queue,
		ranks:      deps.Ranks,
		resolver:   deps.Resolver,
		capturer:   deps.Capturer,
		extract:    deps.Extract,
		recognizer: deps.Recognizer,
		feed:       deps.Feed,
		profile:    deps.Profile,
		mode:       deps.Mode,
		backoff:    deps.Backoff,
		workDir:    deps.WorkDir,
		metrics:    deps.Metrics,
		logger:     deps.Logger.Named("worker"),
	}
}

// Run executes claim cycles until the queue is drained (batch mode) or
// the context is canceled (loop mode). A single item's failure never
// stops the worker; only claim transport errors in batch mode do.
func (r *Service) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		claimed, err := r.cycle(ctx)
		if err != nil {
			if r.mode == ModeBatch {
				return err
			}
			r.logger.Error("claim failed", zap.Error(err))
		}

		if !claimed && err == nil {
			if r.mode == ModeBatch {
				r.logger.Info("out of streams, exiting normally")
				return nil
			}
		}
		if claimed {
			continue
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.backoff):
		}
	}
}

// cycle claims and processes a single work item. The returned bool is
// false when the queue was empty; the error is only for claim transport
// failures.
func (r *Service) cycle(ctx context.Context) (bool, error) {
	stream, err := r.queue.Claim(ctx)
	if errors.Is(err, db.ErrEmptyQueue) {
		r.metrics.IncEmptyClaims()
		return false, nil
	}
	if err != nil {
		return false, err
	}

	r.metrics.IncClaims()
	r.logger.Info("claimed stream", zap.String("stream", stream))
	r.process(ctx, stream)
	return true, nil
}

// process walks one claimed stream through the pipeline. Abandon paths
// return without a leaderboard write; they are logged but never fail the
// worker.
func (r *Service) process(ctx context.Context, stream string) {
	source, err := r.resolver.Resolve(ctx, stream)
	if errors.Is(err, resolver.ErrNoSource) {
		// Not an error; some broadcasts are offline.
		r.logger.Info("stream offline", zap.String("stream", stream))
		r.metrics.IncAbandoned("resolve")
		return
	}
	if err != nil {
		r.logger.Warn("resolve failed", zap.String("stream", stream), zap.Error(err))
		r.metrics.IncAbandoned("resolve")
		return
	}

	dest := filepath.Join(r.workDir, "clip-"+uuid.NewString()+".ts")
	defer os.Remove(dest)

	if err := r.capturer.Capture(ctx, source, dest); err != nil {
		r.logger.Warn("capture failed", zap.String("stream", stream), zap.Error(err))
		r.metrics.IncAbandoned("capture")
		return
	}

	still, err := r.extract(dest, r.profile.Crop)
	if err != nil {
		r.logger.Warn("frame extraction failed", zap.String("stream", stream), zap.Error(err))
		r.metrics.IncAbandoned("extract")
		return
	}
	defer still.Close()

	alive := SentinelAlive
	if prefilter.Ambiguous(still) {
		// Pre-match lobby layout; skip recognition entirely.
		r.logger.Info("pre-match layout detected", zap.String("stream", stream))
	} else {
		image, err := still.EncodePNG()
		if err != nil {
			r.logger.Warn("encode failed", zap.String("stream", stream), zap.Error(err))
			r.metrics.IncAbandoned("encode")
			return
		}
		alive, err = r.recognizer.Recognize(ctx, image)
		if err != nil {
			r.logger.Warn("recognition failed", zap.String("stream", stream), zap.Error(err))
			r.metrics.IncAbandoned("recognize")
			return
		}
	}

	if err := r.ranks.Publish(ctx, stream, alive); err != nil {
		r.logger.Error("publish failed", zap.String("stream", stream), zap.Error(err))
		r.metrics.IncAbandoned("publish")
		return
	}
	r.metrics.IncPublished()
	if alive == SentinelAlive {
		r.metrics.IncSentinel()
	}
	if r.feed != nil {
		r.feed.Publish(stream, alive)
	}

	r.logger.Info("published stream",
		zap.String("stream", stream),
		zap.Int("alive", alive))
}

// Package resolver turns a stream name into a playable source URL via
// streamlink. Broadcasts carry lots of variations on 720p and some have
// none at all, so a fixed preference order is tried and the first variant
// that exists wins.
package resolver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"

	"go.uber.org/zap"
)

// ErrNoSource is returned when a broadcast has no playable variant. The
// stream is simply offline; callers abandon the work item.
var ErrNoSource = errors.New("no playable source")

var qualityPreference = []string{"720p", "720", "720p60", "720p60_alt", "best", "source"}

// Streamlink resolves stream names by shelling out to streamlink and
// reading its JSON stream listing.
type Streamlink struct {
	provider string
	token    string
	run      func(ctx context.Context, args ...string) ([]byte, error)
	logger   *zap.Logger
}

// New builds a resolver against the given provider host (e.g.
// "twitch.tv"). token, when non-empty, is passed through as the provider
// OAuth token.
func New(provider, token string, logger *zap.Logger) *Streamlink {
	return &Streamlink{
		provider: provider,
		token:    token,
		run: func(ctx context.Context, args ...string) ([]byte, error) {
			// streamlink exits non-zero for offline channels but
			// still prints a JSON error document; keep the output.
			out, err := exec.CommandContext(ctx, "streamlink", args...).Output()
			if len(out) > 0 {
				return out, nil
			}
			return out, err
		},
		logger: logger.Named("resolver"),
	}
}

// Resolve returns the source URL of the best available quality variant
// for the named stream, or ErrNoSource when the broadcast is offline.
func (r *Streamlink) Resolve(ctx context.Context, stream string) (string, error) {
	args := []string{"--json"}
	if r.token != "" {
		args = append(args, "--twitch-oauth-token", r.token)
	}
	args = append(args, "http://"+r.provider+"/"+stream)

	out, err := r.run(ctx, args...)
	if err != nil {
		return "", fmt.Errorf("streamlink: %w", err)
	}

	var listing struct {
		Streams map[string]struct {
			URL string `json:"url"`
		} `json:"streams"`
	}
	if err := json.Unmarshal(out, &listing); err != nil {
		return "", fmt.Errorf("parse streamlink output: %w", err)
	}

	for _, quality := range qualityPreference {
		if variant, ok := listing.Streams[quality]; ok && variant.URL != "" {
			r.logger.Debug("resolved stream",
				zap.String("stream", stream),
				zap.String("quality", quality))
			return variant.URL, nil
		}
	}

	return "", ErrNoSource
}

// Package twitch lists live broadcasts for a game from the provider's
// streams API.
package twitch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

type Client struct {
	baseURL  string
	clientID string
	httpc    *http.Client
}

func New(baseURL, clientID string) *Client {
	return &Client{
		baseURL:  baseURL,
		clientID: clientID,
		httpc:    &http.Client{Timeout: 15 * time.Second},
	}
}

// LiveStreams returns the channel names currently broadcasting the given
// game, most viewers first, capped at limit.
func (r *Client) LiveStreams(ctx context.Context, game string, limit int) ([]string, error) {
	query := url.Values{}
	query.Set("game", game)
	query.Set("limit", strconv.Itoa(limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/streams?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if r.clientID != "" {
		req.Header.Set("Client-ID", r.clientID)
	}

	resp, err := r.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list streams: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("list streams: unexpected status %d", resp.StatusCode)
	}

	var listing struct {
		Streams []struct {
			Channel struct {
				Name string `json:"name"`
			} `json:"channel"`
		} `json:"streams"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 4<<20)).Decode(&listing); err != nil {
		return nil, fmt.Errorf("decode streams: %w", err)
	}

	names := make([]string, 0, len(listing.Streams))
	for _, s := range listing.Streams {
		if s.Channel.Name != "" {
			names = append(names, s.Channel.Name)
		}
	}
	return names, nil
}

package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/lox/copsandrobbers/internal/game"
)

// FetchState polls baseURL/state until the server answers, then returns the
// snapshot it served. baseURL looks like "http://localhost:8080".
func FetchState(ctx context.Context, baseURL string) (game.Snapshot, error) {
	client := &http.Client{Timeout: time.Second}

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		snap, err := getState(ctx, client, baseURL+"/state")
		if err == nil {
			return snap, nil
		}
		select {
		case <-ctx.Done():
			return game.Snapshot{}, fmt.Errorf("waiting for %s: %w", baseURL, ctx.Err())
		case <-ticker.C:
		}
	}
}

func getState(ctx context.Context, client *http.Client, url string) (game.Snapshot, error) {
	var snap game.Snapshot

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return snap, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return snap, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return snap, fmt.Errorf("unexpected status %s", resp.Status)
	}
	err = json.NewDecoder(resp.Body).Decode(&snap)
	return snap, err
}

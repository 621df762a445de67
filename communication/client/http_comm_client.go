package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"othello/communication"
	"othello/experiments/metrics"
	"othello/game"

	"github.com/rs/zerolog/log"
)

var ErrRemoteAgent = errors.New("remote agent error")

// RemoteAgent asks an agent server for moves.
type RemoteAgent struct {
	serverURL string
	client    *http.Client
	ctx       context.Context // Bounds FindMove requests
}

// NewRemoteAgent initializes and returns a new RemoteAgent.
func NewRemoteAgent(serverURL string, timeout time.Duration) *RemoteAgent {
	return &RemoteAgent{
		serverURL: strings.TrimRight(serverURL, "/"),
		client:    &http.Client{Timeout: timeout},
		ctx:       context.Background(),
	}
}

// WithContext returns a copy of the agent whose FindMove requests end with ctx.
func (ra *RemoteAgent) WithContext(ctx context.Context) *RemoteAgent {
	if ctx == nil {
		panic("nil context")
	}
	clone := *ra
	clone.ctx = ctx
	return &clone
}

func (ra *RemoteAgent) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ra.serverURL+"/ping", nil)
	if err != nil {
		return err
	}
	resp, err := ra.client.Do(req)
	if err != nil {
		return fmt.Errorf("ping %s: %w", ra.serverURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: ping returned %s", ErrRemoteAgent, resp.Status)
	}
	return nil
}

func (ra *RemoteAgent) RequestMove(ctx context.Context, state game.State) (communication.FindMoveResponse, error) {
	var out communication.FindMoveResponse

	data, err := json.Marshal(communication.NewFindMoveRequest(state))
	if err != nil {
		return out, fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ra.serverURL+"/findmove", bytes.NewReader(data))
	if err != nil {
		return out, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := ra.client.Do(req)
	if err != nil {
		return out, fmt.Errorf("find move: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var e communication.ErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return out, fmt.Errorf("%w: %s: %s", ErrRemoteAgent, resp.Status, e.Error)
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return out, fmt.Errorf("decode response: %w", err)
	}
	return out, nil
}

// FindMove returns NoMove() when the server cannot be reached or the agent's context is
// done; the referee then substitutes a legal move.
func (ra *RemoteAgent) FindMove(state game.State) (game.Position, metrics.SearchMetric) {
	resp, err := ra.RequestMove(ra.ctx, state)
	if err != nil {
		log.Error().Err(err).Str("server", ra.serverURL).Msg("remote agent failed to find a move")
		return game.NoMove(), metrics.SearchMetric{}
	}
	return resp.Move, resp.Metric()
}

package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"othello/communication/server"
	"othello/game"
	"othello/searcher"
	"othello/searcher/agent"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestRemoteAgent(t *testing.T) {
	zerolog.SetGlobalLevel(zerolog.Disabled)

	minimax := searcher.NewMinimax(searcher.WithMaxDepth(2), searcher.WithMetrics())
	ts := httptest.NewServer(server.NewAgentServer(agent.NewMinimaxAgent(minimax)).Handler())
	defer ts.Close()

	t.Run("matches the local agent", func(t *testing.T) {
		ra := NewRemoteAgent(ts.URL+"/", time.Second)
		state := game.NewGameState()

		move, metric := ra.FindMove(state)

		require.Equal(t, minimax.FindNextMove(state), move)
		require.Positive(t, metric.Leaves)
	})

	t.Run("ping", func(t *testing.T) {
		require.NoError(t, NewRemoteAgent(ts.URL, time.Second).Ping(context.Background()))
	})

	t.Run("server errors are wrapped", func(t *testing.T) {
		failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":"boom"}`))
		}))
		defer failing.Close()
		ra := NewRemoteAgent(failing.URL, time.Second)

		_, err := ra.RequestMove(context.Background(), game.NewGameState())
		require.True(t, errors.Is(err, ErrRemoteAgent))
		require.Contains(t, err.Error(), "boom")

		move, _ := ra.FindMove(game.NewGameState())
		require.Equal(t, game.NoMove(), move, "Failures should fall back to the sentinel")
	})

	t.Run("unreachable server", func(t *testing.T) {
		dead := httptest.NewServer(http.NotFoundHandler())
		url := dead.URL
		dead.Close()

		move, _ := NewRemoteAgent(url, 200*time.Millisecond).FindMove(game.NewGameState())

		require.Equal(t, game.NoMove(), move)
	})

	t.Run("cancelled context stops requests", func(t *testing.T) {
		var hits atomic.Int32
		counting := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
		}))
		defer counting.Close()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		ra := NewRemoteAgent(counting.URL, time.Second).WithContext(ctx)

		move, _ := ra.FindMove(game.NewGameState())

		require.Equal(t, game.NoMove(), move)
		require.Zero(t, hits.Load(), "No request should reach the server")
		_, err := ra.RequestMove(ctx, game.NewGameState())
		require.ErrorIs(t, err, context.Canceled)
	})
}

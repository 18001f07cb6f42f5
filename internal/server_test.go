package internal_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/hx/internal"
	"github.com/dmitrymomot/hx/pkg/logger"
)

func TestServe(t *testing.T) {
	t.Parallel()

	t.Run("stops when context is canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		hookCalled := make(chan struct{})

		done := make(chan error, 1)
		go func() {
			done <- internal.Serve(ctx, internal.ServerConfig{Address: "127.0.0.1:0", ShutdownTimeout: time.Second},
				http.NotFoundHandler(), logger.NewNope(),
				func(context.Context) error {
					close(hookCalled)
					return nil
				},
			)
		}()

		cancel()

		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("server did not stop")
		}
		<-hookCalled
	})

	t.Run("returns hook errors", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		boom := errors.New("boom")
		err := internal.Serve(ctx, internal.ServerConfig{Address: "127.0.0.1:0"},
			http.NotFoundHandler(), logger.NewNope(),
			func(context.Context) error { return boom },
		)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("fails on bad address", func(t *testing.T) {
		t.Parallel()

		err := internal.Serve(context.Background(), internal.ServerConfig{Address: "bad::address::"},
			http.NotFoundHandler(), logger.NewNope())
		assert.Error(t, err)
	})
}

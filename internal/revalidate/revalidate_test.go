package revalidate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/penguins/internal/config"
)

func TestClient_Revalidate(t *testing.T) {
	tests := []struct {
		name          string
		paths         []string
		statuses      []int
		retryAttempts uint
		wantCalls     int32
		wantErr       string
	}{
		{
			name:      "posts the paths once",
			paths:     []string{PenguinsPath, PenguinPath("p1"), AdminPath},
			statuses:  []int{http.StatusOK},
			wantCalls: 1,
		},
		{
			name:          "retries server errors",
			paths:         []string{MemoriesPath},
			statuses:      []int{http.StatusServiceUnavailable, http.StatusTooManyRequests, http.StatusOK},
			retryAttempts: 2,
			wantCalls:     3,
		},
		{
			name:          "gives up after the configured retries",
			paths:         []string{MemoriesPath},
			statuses:      []int{http.StatusInternalServerError},
			retryAttempts: 2,
			wantCalls:     3,
			wantErr:       "response error 500",
		},
		{
			name:          "does not retry a rejected secret",
			paths:         []string{AdminPath},
			statuses:      []int{http.StatusUnauthorized},
			retryAttempts: 2,
			wantCalls:     1,
			wantErr:       "response error 401",
		},
		{
			name:      "nothing to revalidate",
			paths:     nil,
			wantCalls: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				n := calls.Add(1)
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/api/revalidate", r.URL.Path)
				assert.Equal(t, "s3cret", r.Header.Get(SecretHeader))
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

				var body Request
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
				assert.Equal(t, tt.paths, body.Paths)

				status := tt.statuses[len(tt.statuses)-1]
				if int(n) <= len(tt.statuses) {
					status = tt.statuses[n-1]
				}
				w.WriteHeader(status)
				_, _ = w.Write([]byte(`{"revalidated":true}`))
			}))
			defer server.Close()

			client := NewClient(config.RevalidateConfig{
				BaseURL:       server.URL + "/",
				Secret:        "s3cret",
				RetryAttempts: tt.retryAttempts,
				Timeout:       time.Second,
			})
			client.retryDelay = time.Millisecond
			defer client.Close()

			err := client.Revalidate(context.Background(), tt.paths...)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantCalls, calls.Load())
		})
	}
}

func TestClient_Revalidate_CanceledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(config.RevalidateConfig{BaseURL: server.URL, RetryAttempts: 5})
	defer client.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, client.Revalidate(ctx, PenguinsPath))
}

func TestNew(t *testing.T) {
	assert.IsType(t, Nop{}, New(config.RevalidateConfig{}))
	assert.NoError(t, Nop{}.Revalidate(context.Background(), PenguinsPath))

	client, ok := New(config.RevalidateConfig{BaseURL: "http://localhost:3000"}).(*Client)
	require.True(t, ok)
	assert.NoError(t, client.Close())
}

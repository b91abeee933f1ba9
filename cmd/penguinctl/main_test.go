package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/penguins/internal/memory"
	"github.com/at-ishikawa/penguins/internal/penguin"
	"github.com/at-ishikawa/penguins/internal/revalidate"
	"github.com/at-ishikawa/penguins/internal/testutil"
)

func TestSetupLogger(t *testing.T) {
	previous := zerolog.GlobalLevel()
	t.Cleanup(func() {
		zerolog.SetGlobalLevel(previous)
	})

	tests := []struct {
		name      string
		debugMode bool
		wantLevel zerolog.Level
	}{
		{
			name:      "debug mode enabled",
			debugMode: true,
			wantLevel: zerolog.DebugLevel,
		},
		{
			name:      "debug mode disabled",
			debugMode: false,
			wantLevel: zerolog.InfoLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupLogger(tt.debugMode)
			assert.Equal(t, tt.wantLevel, zerolog.GlobalLevel())
		})
	}
}

func TestNewRootCommand(t *testing.T) {
	cmd := newRootCommand()

	assert.Equal(t, "penguinctl", cmd.Use)
	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.Subset(t, names, []string{"migrate", "seed", "penguins", "memories", "stats"})
	assert.NotNil(t, cmd.PersistentFlags().Lookup("config"))
	assert.NotNil(t, cmd.PersistentFlags().Lookup("debug"))
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCommands_SQLite(t *testing.T) {
	cfg := testutil.SetupTestConfig(t, t.TempDir())
	const (
		pinguID    = "11111111-1111-1111-1111-111111111111"
		kowalskiID = "44444444-4444-4444-4444-444444444444"
	)

	out, err := execute(t, "--config", cfg, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "applied 0001_create_penguins_and_memories")

	out, err = execute(t, "--config", cfg, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "schema is up to date")

	out, err = execute(t, "--config", cfg, "seed", "--dry-run")
	require.NoError(t, err)
	assert.Equal(t, "penguins: would import 4, skipped 0\nmemories: would import 4, skipped 0\n", out)

	out, err = execute(t, "--config", cfg, "seed")
	require.NoError(t, err)
	assert.Equal(t, "penguins: imported 4, skipped 0\nmemories: imported 4, skipped 0\n", out)

	out, err = execute(t, "--config", cfg, "seed")
	require.NoError(t, err)
	assert.Equal(t, "penguins: imported 0, skipped 4\nmemories: imported 0, skipped 4\n", out)

	out, err = execute(t, "--config", cfg, "penguins", "list", "--tag", "Emperor", "--sort", "birthDate")
	require.NoError(t, err)
	assert.Regexp(t, `(?s)^ID\s+NAME.*Pingu.*Pinga`, out)
	assert.NotContains(t, out, "Rico")

	_, err = execute(t, "--config", cfg, "penguins", "list", "--sort", "weight")
	assert.Error(t, err)

	out, err = execute(t, "--config", cfg, "penguins", "get", pinguID)
	require.NoError(t, err)
	assert.Contains(t, out, "name: Pingu")
	assert.Contains(t, out, "weight: 3500")
	assert.Contains(t, out, "2024-07-20 Beach Vacation")

	_, err = execute(t, "--config", cfg, "penguins", "get", "99999999-9999-9999-9999-999999999999")
	assert.ErrorContains(t, err, "not found")

	out, err = execute(t, "--config", cfg, "penguins", "delete", kowalskiID)
	require.NoError(t, err)
	assert.Contains(t, out, "deleted "+kowalskiID)

	out, err = execute(t, "--config", cfg, "memories", "list", "--penguin", kowalskiID)
	require.NoError(t, err)
	assert.Contains(t, out, "Coffee Date")
	assert.Contains(t, out, "Beach Vacation")
	assert.NotContains(t, out, "First Snow Day")

	out, err = execute(t, "--config", cfg, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "penguins:       3")
	assert.Contains(t, out, "oldest    Rico")
	assert.Contains(t, out, "memory cccccccc-cccc-cccc-cccc-cccccccccccc refers to missing penguins: "+kowalskiID)
}

func TestCommands_InvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("database:\n  driver: oracle\n"), 0o644))

	_, err := execute(t, "--config", path, "stats")
	assert.ErrorContains(t, err, "invalid configuration")
}

func TestCommands_SeedFileAndRevalidation(t *testing.T) {
	var mu sync.Mutex
	var requests [][]string
	frontend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-secret", r.Header.Get(revalidate.SecretHeader))
		var body revalidate.Request
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		mu.Lock()
		requests = append(requests, body.Paths)
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	defer frontend.Close()

	tmpDir := t.TempDir()
	cfg := testutil.SetupTestConfigWithRevalidate(t, tmpDir, frontend.URL)
	const pinguID = "11111111-1111-1111-1111-111111111111"
	seedFile := testutil.CreateSeedFile(t, tmpDir,
		[]penguin.Penguin{{ID: pinguID, Name: "Pingu", Tag: "Emperor", Images: []string{}}},
		[]memory.Memory{{ID: "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa", Title: "Beach", Description: "Sunny", Location: "Izu", Date: "2024-07-20", ImageURL: "https://example.com/beach.jpg", PenguinIDs: []string{pinguID}}},
	)

	_, err := execute(t, "--config", cfg, "migrate")
	require.NoError(t, err)

	out, err := execute(t, "--config", cfg, "seed", "--file", seedFile)
	require.NoError(t, err)
	assert.Equal(t, "penguins: imported 1, skipped 0\nmemories: imported 1, skipped 0\n", out)

	_, err = execute(t, "--config", cfg, "penguins", "delete", pinguID)
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, [][]string{{"/penguins", "/admin"}}, requests)
}

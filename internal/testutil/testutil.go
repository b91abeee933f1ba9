// Package testutil provides shared test helpers for creating config files and seed fixtures.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/penguins/internal/memory"
	"github.com/at-ishikawa/penguins/internal/penguin"
)

// SetupTestConfig creates a config file pointing at a SQLite database under tmpDir.
// The database directory is left for the driver setup to create.
// Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string) string {
	t.Helper()

	configContent := fmt.Sprintf(`database:
  driver: sqlite
  path: %s
  max_open_conns: 4
log:
  level: error
`,
		filepath.Join(tmpDir, "data", "penguins.db"),
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// SetupTestConfigWithRevalidate creates a config file that also sends revalidation
// requests to baseURL, without retries.
func SetupTestConfigWithRevalidate(t *testing.T, tmpDir, baseURL string) string {
	t.Helper()
	cfgPath := SetupTestConfig(t, tmpDir)

	content, err := os.ReadFile(cfgPath)
	require.NoError(t, err)
	content = append(content, []byte(fmt.Sprintf("revalidate:\n  base_url: %s\n  secret: test-secret\n  retry_attempts: 0\n", baseURL))...)
	require.NoError(t, os.WriteFile(cfgPath, content, 0644))
	return cfgPath
}

// CreateSeedFile writes a seed dataset with the given records and returns its path.
func CreateSeedFile(t *testing.T, dir string, penguins []penguin.Penguin, memories []memory.Memory) string {
	t.Helper()

	data, err := yaml.Marshal(struct {
		Penguins []penguin.Penguin `yaml:"penguins"`
		Memories []memory.Memory   `yaml:"memories"`
	}{
		Penguins: penguins,
		Memories: memories,
	})
	require.NoError(t, err)

	path := filepath.Join(dir, "seed.yml")
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/killallgit/podradio/pkg/config"
)

const testSingles = `[
  {"title": "Single One", "podcastName": "Show A", "audioUrl": "https://cdn.example.com/1.mp3", "pubDate": "2025-05-01T00:00:00Z"},
  {"title": "Single Two", "podcastName": "Show B", "audioUrl": "https://cdn.example.com/2.mp3", "pubDate": "2025-05-02T00:00:00Z"}
]`

// testEnv is a temp workspace with a content dir holding English singles only,
// a sqlite path and a config file pointing at both
type testEnv struct {
	dir        string
	contentDir string
	dbPath     string
	configPath string
}

func newTestEnv(t *testing.T, source string) *testEnv {
	t.Helper()

	dir := t.TempDir()
	env := &testEnv{
		dir:        dir,
		contentDir: filepath.Join(dir, "content"),
		dbPath:     filepath.Join(dir, "podradio.db"),
		configPath: filepath.Join(dir, "settings.yaml"),
	}

	require.NoError(t, os.MkdirAll(filepath.Join(env.contentDir, "en"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(env.contentDir, "en", "singles.json"), []byte(testSingles), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(env.contentDir, "en", "feeds.md"), []byte("# English\n"), 0o644))

	settings := "registry:\n" +
		"  source: " + source + "\n" +
		"  content_dir: " + env.contentDir + "\n" +
		"  default_language: en\n" +
		"database:\n" +
		"  path: " + env.dbPath + "\n" +
		"logging:\n" +
		"  level: error\n"
	require.NoError(t, os.WriteFile(env.configPath, []byte(settings), 0o644))

	config.Reset()
	t.Cleanup(config.Reset)
	return env
}

// execute runs the root command with args and returns its standard output.
// Logs and cobra errors go to a separate buffer.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeWithInput(t, "", args...)
}

func executeWithInput(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	config.Reset()

	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetContext(context.Background())
	cmd.SetIn(bytes.NewBufferString(input))
	cmd.SetArgs(args)
	resetFlags(cmd)

	err := cmd.Execute()
	return buf.String(), err
}

// resetFlags restores every flag to its default so state does not leak between runs
func resetFlags(cmd *cobra.Command) {
	visit := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(visit)
	cmd.Flags().VisitAll(visit)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

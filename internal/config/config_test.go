package config

import (
	"hftrending/internal/scrapers/huggingface"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeFile(t testing.TB, path, contents string) {
	err := os.WriteFile(path, []byte(contents), 0600)
	if err != nil {
		t.Fatal(err)
	}
}

func TestLoadMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultPath)

	config, err := Load(path, false)
	require.NoError(t, err)
	require.Equal(t, Defaults(), config)

	_, err = Load(path, true)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultPath)
	writeFile(t, path, `{
		// comments are allowed
		timeout_seconds: 20,
		detail_failure_policy: "drop",
		export: {
			sqlite: { file: "snapshot.db" },
		},
		digest: {
			smtp: { server: "localhost", port: 1025, email_address: "alice@email.com" },
			to: ["bob@email.com"],
		},
	}`)
	writeFile(t, filepath.Join(dir, "hftrending.local.json5"), `{ cloudflare_bypass: true }`)

	config, err := Load(path, true)
	require.NoError(t, err)

	require.Equal(t, huggingface.DefaultBaseUrl, config.BaseUrl)
	require.Equal(t, huggingface.DefaultUserAgent, config.UserAgent)
	require.Equal(t, "snapshot.db", config.Export.Sqlite.File)
	require.True(t, config.Digest.Enabled())
	require.Equal(t, 1025, config.Digest.Smtp.Port)

	opts, err := config.ScraperOptions()
	require.NoError(t, err)
	require.Equal(t, huggingface.Options{
		BaseUrl:             huggingface.DefaultBaseUrl,
		UserAgent:           huggingface.DefaultUserAgent,
		Timeout:             20 * time.Second,
		CloudflareBypass:    true,
		DetailFailurePolicy: huggingface.DropFailedDetails,
	}, opts)
}

func TestLoadInvalidPolicy(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultPath)
	writeFile(t, path, `{ detail_failure_policy: "retry" }`)

	_, err := Load(path, true)
	require.Error(t, err)
}

func TestLoadNearest(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0700))
	writeFile(t, filepath.Join(root, DefaultPath), `{timeout_seconds: 7}`)

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(nested))
	t.Cleanup(func() { os.Chdir(wd) })

	config, err := LoadNearest()
	require.NoError(t, err)
	require.Equal(t, 7, config.TimeoutSeconds)
	require.Equal(t, Defaults().BaseUrl, config.BaseUrl)
}

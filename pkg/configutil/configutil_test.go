package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	BaseUrl string   `json:"base_url"`
	Timeout int      `json:"timeout_seconds"`
	To      []string `json:"to"`
}

func writeFile(t testing.TB, path, contents string) {
	err := os.WriteFile(path, []byte(contents), 0600)
	if err != nil {
		t.Fatal(err)
	}
}

func TestLocalPath(t *testing.T) {
	require.Equal(t, "hftrending.local.json5", LocalPath("hftrending.json5"))
	require.Equal(t, "dir/a.local.json", LocalPath("dir/a.json"))
}

func TestReadConfig(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "hftrending.json5")

	_, err := ReadConfig[testConfig](name)
	require.True(t, os.IsNotExist(err))

	writeFile(t, name, `{
		// comments and trailing commas are allowed
		base_url: "https://huggingface.co",
		timeout_seconds: 10,
	}`)
	cfg, err := ReadConfig[testConfig](name)
	require.NoError(t, err)
	require.Equal(t, testConfig{BaseUrl: "https://huggingface.co", Timeout: 10}, cfg)

	writeFile(t, LocalPath(name), `{timeout_seconds: 30, to: ["a@example.com"]}`)
	cfg, err = ReadConfig[testConfig](name)
	require.NoError(t, err)
	require.Equal(t, testConfig{
		BaseUrl: "https://huggingface.co",
		Timeout: 30,
		To:      []string{"a@example.com"},
	}, cfg)
}

func TestReadConfigMalformed(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "hftrending.json5")
	writeFile(t, name, `{base_url: `)

	_, err := ReadConfig[testConfig](name)
	require.Error(t, err)
	require.False(t, os.IsNotExist(err))
}

func TestWithDefaults(t *testing.T) {
	cfg, err := WithDefaults(
		testConfig{Timeout: 5},
		testConfig{BaseUrl: "https://huggingface.co", Timeout: 30},
	)
	require.NoError(t, err)
	require.Equal(t, "https://huggingface.co", cfg.BaseUrl)
	require.Equal(t, 5, cfg.Timeout)
}

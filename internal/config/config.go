// Package config reads hftrending.json5, the configuration shared by every
// command.
package config

import (
	"errors"
	"hftrending/internal/components/telemetry"
	"hftrending/internal/digest"
	"hftrending/internal/export"
	"hftrending/internal/scrapers/huggingface"
	"hftrending/pkg/configutil"
	"os"
	"time"
)

const DefaultPath = "hftrending.json5"

type Export struct {
	ModelsCsv string        `json:"models_csv"`
	PapersCsv string        `json:"papers_csv"`
	Sqlite    export.SQLite `json:"sqlite"`
}

type Config struct {
	BaseUrl             string           `json:"base_url"`
	UserAgent           string           `json:"user_agent"`
	TimeoutSeconds      int              `json:"timeout_seconds"`
	DetailFailurePolicy string           `json:"detail_failure_policy"`
	CloudflareBypass    bool             `json:"cloudflare_bypass"`
	DumpDir             string           `json:"dump_dir"`
	Export              Export           `json:"export"`
	Telemetry           telemetry.Config `json:"telemetry"`
	Digest              digest.Config    `json:"digest"`
}

func Defaults() Config {
	return Config{
		BaseUrl:             huggingface.DefaultBaseUrl,
		UserAgent:           huggingface.DefaultUserAgent,
		DetailFailurePolicy: string(huggingface.AbortOnDetailFailure),
	}
}

// Load reads the config at path (and its .local override) and fills in the
// defaults. A missing file is only an error when required is set, otherwise the
// defaults are used as is.
func Load(path string, required bool) (Config, error) {
	config, err := configutil.ReadConfig[Config](path)
	if errors.Is(err, os.ErrNotExist) && !required {
		return Defaults(), nil
	}
	if err != nil {
		return Config{}, err
	}
	return complete(config)
}

// LoadNearest looks for DefaultPath in the working directory and its parents,
// the defaults are used if none of them has one.
func LoadNearest() (Config, error) {
	config, err := configutil.ReadRecursively[Config](DefaultPath)
	if errors.Is(err, os.ErrNotExist) {
		return Defaults(), nil
	}
	if err != nil {
		return Config{}, err
	}
	return complete(config)
}

func complete(config Config) (Config, error) {
	config, err := configutil.WithDefaults(config, Defaults())
	if err != nil {
		return Config{}, err
	}
	_, err = huggingface.ParseDetailFailurePolicy(config.DetailFailurePolicy)
	if err != nil {
		return Config{}, err
	}
	return config, nil
}

// ScraperOptions converts the config into options for huggingface.NewClient.
func (c Config) ScraperOptions() (huggingface.Options, error) {
	policy, err := huggingface.ParseDetailFailurePolicy(c.DetailFailurePolicy)
	if err != nil {
		return huggingface.Options{}, err
	}
	return huggingface.Options{
		BaseUrl:             c.BaseUrl,
		UserAgent:           c.UserAgent,
		Timeout:             time.Duration(c.TimeoutSeconds) * time.Second,
		CloudflareBypass:    c.CloudflareBypass,
		DetailFailurePolicy: policy,
		DumpDir:             c.DumpDir,
	}, nil
}

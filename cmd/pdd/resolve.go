package main

import (
	"errors"
	"fmt"

	pdd "github.com/alnah/go-pdd"
	"github.com/alnah/go-pdd/internal/config"
	"github.com/alnah/go-pdd/internal/fileutil"
	"github.com/alnah/go-pdd/internal/hints"
)

// loadConfig layers the config file, the environment and then apply (the
// command's flags) before filling defaults and validating the result.
func loadConfig(configFlag string, env *Environment, apply func(*config.Config)) (*config.Config, error) {
	envCfg, err := loadEnvConfig()
	if err != nil {
		return nil, err
	}
	warnUnknownEnvVars(env.Stderr)

	name := configFlag
	if name == "" {
		name = envCfg.ConfigPath
	}

	cfg := &config.Config{}
	if name != "" {
		cfg, err = config.LoadConfig(name)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) && !fileutil.IsFilePath(name) {
				return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
			}
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	applyEnvConfig(envCfg, cfg)
	if apply != nil {
		apply(cfg)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyDocumentFlags merges generation flags that were set explicitly.
func applyDocumentFlags(f documentFlags, changedFn func(string) bool, cfg *config.Config) {
	if changedFn("inline-markdown") {
		cfg.Document.InlineMarkdown = config.Bool(f.inlineMarkdown)
	}
	if changedFn("timeout") {
		cfg.Document.Timeout = config.Duration(f.timeout)
	}
}

// newGenerator builds a library generator from the document settings.
func newGenerator(cfg *config.Config, env *Environment) (*pdd.Generator, error) {
	return pdd.NewGenerator(
		pdd.WithTimeout(cfg.Document.Timeout.Value()),
		pdd.WithInlineMarkdown(cfg.Document.InlineMarkdownEnabled()),
		pdd.WithClock(env.Now),
	)
}

package main

import (
	"fmt"

	"github.com/alnah/go-pdd/internal/config"
	"github.com/alnah/go-pdd/internal/yamlutil"
)

// runConfig prints the effective configuration as YAML.
func runConfig(args []string, env *Environment) error {
	f, err := parseConfigFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(f.config, env, nil)
	if err != nil {
		return err
	}

	out, err := yamlutil.Marshal(effective(cfg))
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(env.Stdout, string(out))
	return err
}

// effective makes optional booleans explicit so the output shows every value.
func effective(cfg *config.Config) *config.Config {
	out := *cfg
	out.Server.Demo = config.Bool(cfg.Server.DemoEnabled())
	out.Metrics.Enabled = config.Bool(cfg.Metrics.IsEnabled())
	out.Document.InlineMarkdown = config.Bool(cfg.Document.InlineMarkdownEnabled())
	return &out
}

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	pdd "github.com/alnah/go-pdd"
	"github.com/alnah/go-pdd/client"
	"github.com/alnah/go-pdd/internal/config"
	"github.com/alnah/go-pdd/internal/fileutil"
	"github.com/alnah/go-pdd/internal/hints"
	"github.com/alnah/go-pdd/internal/yamlutil"
)

// maxInputSize bounds request files read from disk or stdin.
const maxInputSize = 1 << 20

// runGenerate writes one document for a request file, stdin, or the
// built-in example. With --remote it goes through a running server.
func runGenerate(ctx context.Context, args []string, env *Environment) error {
	f, positional, err := parseGenerateFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(f.common.config, env, func(cfg *config.Config) {
		applyDocumentFlags(f.document, func(name string) bool { return changed(f.set, name) }, cfg)
	})
	if err != nil {
		return err
	}

	body, err := readRequest(f, positional, env)
	if err != nil {
		return err
	}

	outDir := f.output
	if outDir == "" {
		outDir = "."
	}

	var path string
	if f.remote != "" {
		path, err = generateRemote(ctx, f.remote, body, outDir, cfg)
	} else {
		path, err = generateLocal(ctx, body, outDir, cfg, env)
	}
	if err != nil {
		return err
	}

	if !f.common.quiet {
		fmt.Fprintln(env.Stdout, path)
	}
	return nil
}

// readRequest returns the request as JSON. YAML files (.yaml, .yml) are converted.
func readRequest(f *generateFlags, positional []string, env *Environment) ([]byte, error) {
	if f.example {
		if len(positional) > 0 {
			return nil, fmt.Errorf("%w: --example takes no input argument", ErrUsage)
		}
		data, err := json.Marshal(pdd.ExampleRequest())
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrReadInput, err)
		}
		return data, nil
	}

	switch len(positional) {
	case 0:
		return nil, ErrNoInput
	case 1:
	default:
		return nil, fmt.Errorf("%w: expected one input, got %d", ErrUsage, len(positional))
	}

	input := positional[0]
	var r io.Reader
	if input == "-" {
		r = env.Stdin
	} else {
		file, err := os.Open(input) // #nosec G304 -- input path is user-provided
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrReadInput, err)
		}
		defer func() { _ = file.Close() }()
		r = file
	}

	data, err := io.ReadAll(io.LimitReader(r, maxInputSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadInput, err)
	}
	if len(data) > maxInputSize {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrReadInput, input, maxInputSize)
	}

	switch strings.ToLower(filepath.Ext(input)) {
	case ".yaml", ".yml":
		converted, err := yamlutil.ToJSON(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrReadInput, input, err)
		}
		return converted, nil
	}
	return data, nil
}

func generateLocal(ctx context.Context, body []byte, outDir string, cfg *config.Config, env *Environment) (string, error) {
	req, err := pdd.DecodeRequest(body)
	if err != nil {
		return "", err
	}

	gen, err := newGenerator(cfg, env)
	if err != nil {
		return "", err
	}

	res, err := gen.Generate(ctx, *req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("%w%s", err, hints.ForTimeout())
		}
		return "", err
	}

	path, err := fileutil.WriteFileAtomic(outDir, res.FileName, res.Document)
	if err != nil {
		return "", fmt.Errorf("%w: %w%s", ErrWriteOutput, err, hints.ForOutputDirectory())
	}
	return path, nil
}

func generateRemote(ctx context.Context, baseURL string, body []byte, outDir string, cfg *config.Config) (string, error) {
	c := client.New(baseURL, client.WithTimeout(cfg.Document.Timeout.Value()))

	res, err := c.GenerateDocxJSON(ctx, body)
	if err != nil {
		if errors.Is(err, client.ErrRequest) {
			return "", fmt.Errorf("%w%s", err, hints.ForServerUnreachable(c.BaseURL()))
		}
		return "", err
	}

	path, err := client.DownloadFile(outDir, res.FileName, res.FileBase64)
	if err != nil {
		return "", fmt.Errorf("%w%s", err, hints.ForOutputDirectory())
	}
	return path, nil
}

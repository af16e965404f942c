package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-pdd/internal/config"
	"github.com/alnah/go-pdd/internal/hints"
	"github.com/alnah/go-pdd/internal/logging"
	"github.com/alnah/go-pdd/internal/metrics"
	"github.com/alnah/go-pdd/internal/server"
)

// runServe starts the API listener, and the metrics listener when
// metrics.addr is set, until ctx is canceled.
func runServe(ctx context.Context, args []string, env *Environment) error {
	f, err := parseServeFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(f.common.config, env, func(cfg *config.Config) {
		mergeServeFlags(f, cfg)
	})
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	gen, err := newGenerator(cfg, env)
	if err != nil {
		return err
	}

	var (
		recorder   metrics.Recorder = metrics.Nop{}
		apiMetrics http.Handler
		sideMux    *http.ServeMux
	)
	if cfg.Metrics.IsEnabled() {
		m := metrics.New()
		recorder = m
		if cfg.Metrics.Addr == "" {
			apiMetrics = m.Handler()
		} else {
			sideMux = http.NewServeMux()
			sideMux.Handle("/metrics", m.Handler())
		}
	}

	srv := server.New(gen, server.Config{
		BodyLimit: cfg.Server.BodyLimit,
		RateLimit: cfg.Server.RateLimit,
		Demo:      cfg.Server.DemoEnabled(),
		Metrics:   apiMetrics,
	}, server.WithLogger(logger), server.WithRecorder(recorder))

	timeouts := server.Timeouts{
		Read:     cfg.Server.ReadTimeout.Value(),
		Write:    cfg.Server.WriteTimeout.Value(),
		Shutdown: cfg.Server.ShutdownTimeout.Value(),
	}

	ln, err := listen(cfg.Server.Addr)
	if err != nil {
		return err
	}

	var sideLn net.Listener
	if sideMux != nil {
		sideLn, err = listen(cfg.Metrics.Addr)
		if err != nil {
			_ = ln.Close()
			return err
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Serve(gctx, ln, srv, timeouts)
	})
	if sideLn != nil {
		g.Go(func() error {
			return server.Serve(gctx, sideLn, sideMux, timeouts)
		})
		logger.Info("metrics listening", zap.String("addr", sideLn.Addr().String()))
	}

	logger.Info("listening",
		zap.String("addr", ln.Addr().String()),
		zap.String("version", Version),
		zap.Bool("demo", cfg.Server.DemoEnabled()),
		zap.Bool("metrics", cfg.Metrics.IsEnabled()),
		zap.Bool("inline_markdown", cfg.Document.InlineMarkdownEnabled()),
	)

	if err := g.Wait(); err != nil {
		return fmt.Errorf("serving: %w", err)
	}
	logger.Info("stopped")
	return nil
}

// listen opens addr and adds a hint when the port is taken.
func listen(addr string) (net.Listener, error) {
	ln, err := server.Listen(addr)
	if err != nil {
		if errors.Is(err, syscall.EADDRINUSE) {
			return nil, fmt.Errorf("%w%s", err, hints.ForAddrInUse(addr))
		}
		return nil, err
	}
	return ln, nil
}

// mergeServeFlags merges explicitly set CLI flags into config. CLI values override config values.
func mergeServeFlags(f *serveFlags, cfg *config.Config) {
	set := func(name string) bool { return changed(f.set, name) }

	if set("addr") {
		cfg.Server.Addr = f.listen.addr
	}
	if set("metrics-addr") {
		cfg.Metrics.Addr = f.listen.metricsAddr
	}
	if set("body-limit") {
		cfg.Server.BodyLimit = f.listen.bodyLimit
	}
	if set("rate-limit") {
		cfg.Server.RateLimit = f.listen.rateLimit
	}
	if f.listen.noDemo {
		cfg.Server.Demo = config.Bool(false)
	}
	if f.listen.noMetrics {
		cfg.Metrics.Enabled = config.Bool(false)
	}
	if set("log-level") {
		cfg.Log.Level = f.log.level
	}
	if set("log-format") {
		cfg.Log.Format = f.log.format
	}
	applyDocumentFlags(f.document, set, cfg)
}

package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-pdd/internal/fileutil"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config string
	quiet  bool
}

// listenFlags holds HTTP listener flags.
type listenFlags struct {
	addr        string
	metricsAddr string
	bodyLimit   string
	rateLimit   float64
	noDemo      bool
	noMetrics   bool
}

// logFlags holds logger flags.
type logFlags struct {
	level  string
	format string
}

// documentFlags holds generation flags.
type documentFlags struct {
	inlineMarkdown bool
	timeout        string
}

// serveFlags holds all flags for the serve command.
type serveFlags struct {
	common   commonFlags
	listen   listenFlags
	log      logFlags
	document documentFlags
	set      *flag.FlagSet
}

// generateFlags holds all flags for the generate command.
type generateFlags struct {
	common   commonFlags
	output   string
	remote   string
	example  bool
	document documentFlags
	set      *flag.FlagSet
}

// doctorFlags holds all flags for the doctor command.
type doctorFlags struct {
	common commonFlags
	json   bool
	remote string
}

// changed reports whether the named flag was given on the command line.
func changed(fs *flag.FlagSet, name string) bool {
	return fs != nil && fs.Changed(name)
}

func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
}

func addDocumentFlags(fs *flag.FlagSet, f *documentFlags) {
	fs.BoolVar(&f.inlineMarkdown, "inline-markdown", false, "format **bold**, *italic* and `code` in field text")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "generation timeout (e.g., 30s, 2m)")
}

func newFlagSet(name string, usage func(io.Writer), w io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() { usage(w) }
	return fs
}

// buildServeFlagSet registers the serve flags. Completion reads the same set.
func buildServeFlagSet(w io.Writer) *serveFlags {
	fs := newFlagSet("serve", printServeUsage, w)
	f := &serveFlags{set: fs}

	addCommonFlags(fs, &f.common)
	fs.StringVar(&f.listen.addr, "addr", "", "listen address (default :8080)")
	fs.StringVar(&f.listen.metricsAddr, "metrics-addr", "", "separate /metrics listen address")
	fs.StringVar(&f.listen.bodyLimit, "body-limit", "", "maximum request body size (e.g., 512K, 1M)")
	fs.Float64Var(&f.listen.rateLimit, "rate-limit", 0, "requests per second per client IP (0 = off)")
	fs.BoolVar(&f.listen.noDemo, "no-demo", false, "do not serve the demo page")
	fs.BoolVar(&f.listen.noMetrics, "no-metrics", false, "disable Prometheus metrics")
	fs.StringVar(&f.log.level, "log-level", "", "log level: debug, info, warn, error")
	fs.StringVar(&f.log.format, "log-format", "", "log format: console, json")
	addDocumentFlags(fs, &f.document)
	return f
}

func parseServeFlags(args []string, w io.Writer) (*serveFlags, error) {
	f := buildServeFlagSet(w)
	fs := f.set

	if err := parse(fs, args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: serve takes no arguments, got %q", ErrUsage, fs.Args())
	}
	return f, nil
}

func buildGenerateFlagSet(w io.Writer) *generateFlags {
	fs := newFlagSet("generate", printGenerateUsage, w)
	f := &generateFlags{set: fs}

	addCommonFlags(fs, &f.common)
	fs.StringVarP(&f.output, "output", "o", "", "output directory (default: current directory)")
	fs.StringVarP(&f.remote, "remote", "r", "", "generate on a running server, e.g. http://localhost:8080")
	fs.BoolVar(&f.example, "example", false, "use the built-in example request")
	addDocumentFlags(fs, &f.document)
	return f
}

func parseGenerateFlags(args []string, w io.Writer) (*generateFlags, []string, error) {
	f := buildGenerateFlagSet(w)

	if err := parse(f.set, args); err != nil {
		return nil, nil, err
	}
	if err := validateRemote(f.remote); err != nil {
		return nil, nil, err
	}
	return f, f.set.Args(), nil
}

func buildConfigFlagSet(w io.Writer) (*flag.FlagSet, *commonFlags) {
	fs := newFlagSet("config", printConfigUsage, w)
	f := &commonFlags{}
	addCommonFlags(fs, f)
	return fs, f
}

func parseConfigFlags(args []string, w io.Writer) (*commonFlags, error) {
	fs, f := buildConfigFlagSet(w)

	if err := parse(fs, args); err != nil {
		return nil, err
	}
	return f, nil
}

func buildDoctorFlagSet(w io.Writer) (*flag.FlagSet, *doctorFlags) {
	fs := newFlagSet("doctor", printDoctorUsage, w)
	f := &doctorFlags{}
	addCommonFlags(fs, &f.common)
	fs.BoolVar(&f.json, "json", false, "print the report as JSON")
	fs.StringVarP(&f.remote, "remote", "r", "", "also check a running server, e.g. http://localhost:8080")
	return fs, f
}

func parseDoctorFlags(args []string, w io.Writer) (*doctorFlags, error) {
	fs, f := buildDoctorFlagSet(w)

	if err := parse(fs, args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: doctor takes no arguments, got %q", ErrUsage, fs.Args())
	}
	if err := validateRemote(f.remote); err != nil {
		return nil, err
	}
	return f, nil
}

// validateRemote rejects --remote values that are not HTTP(S) base URLs.
func validateRemote(remote string) error {
	if remote != "" && !fileutil.IsURL(remote) {
		return fmt.Errorf("%w: --remote must start with http:// or https://, got %q", ErrUsage, remote)
	}
	return nil
}

// parse wraps flag errors in ErrUsage. -h and --help return flag.ErrHelp as is.
func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return nil
}

func isHelp(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}

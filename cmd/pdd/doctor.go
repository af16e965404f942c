package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"runtime"
	"time"

	pdd "github.com/alnah/go-pdd"
	"github.com/alnah/go-pdd/client"
	"github.com/alnah/go-pdd/internal/config"
	"github.com/alnah/go-pdd/internal/docx"
	"github.com/alnah/go-pdd/internal/hints"
	"github.com/alnah/go-pdd/internal/server"
)

// remoteCheckTimeout bounds the health request to a remote server.
const remoteCheckTimeout = 5 * time.Second

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string       `json:"status"` // "ready", "warnings", "errors"
	Engine   engineInfo   `json:"engine"`
	Config   configInfo   `json:"config"`
	Listener listenerInfo `json:"listener"`
	Remote   *remoteInfo  `json:"remote,omitempty"`
	Env      envInfo      `json:"environment"`
	System   systemInfo   `json:"system"`
	Warnings []string     `json:"warnings,omitempty"`
	Errors   []string     `json:"errors,omitempty"`
}

// engineInfo holds the result of generating the example document.
type engineInfo struct {
	OK         bool `json:"ok"`
	Paragraphs int  `json:"paragraphs"`
	Size       int  `json:"size_bytes"`
}

// configInfo holds the configuration check result.
type configInfo struct {
	OK     bool   `json:"ok"`
	Source string `json:"source"` // config name or path, "defaults" when none
}

// listenerInfo reports whether the configured API address can be bound.
type listenerInfo struct {
	Addr      string `json:"addr"`
	Available bool   `json:"available"`
}

// remoteInfo holds the health check of a running server.
type remoteInfo struct {
	URL     string `json:"url"`
	Healthy bool   `json:"healthy"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found, 2 = bad flags.
func runDoctorCmd(ctx context.Context, args []string, env *Environment) int {
	f, err := parseDoctorFlags(args, env.Stderr)
	if err != nil {
		if isHelp(err) {
			return ExitSuccess
		}
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return exitCodeFor(err)
	}

	result := runDoctor(ctx, f, env)

	if f.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(ctx context.Context, f *doctorFlags, env *Environment) *doctorResult {
	result := &doctorResult{
		Status: "ready",
		Env: envInfo{
			OS:   runtime.GOOS,
			Arch: runtime.GOARCH,
		},
	}

	cfg := checkConfig(result, f, env)
	checkEngine(ctx, result, cfg, env)
	checkListener(result, cfg.Server.Addr)
	if f.remote != "" {
		checkRemote(ctx, result, f.remote)
	}
	checkEnvironment(result, cfg.Server.Addr)
	checkSystem(result)

	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}

	return result
}

// checkConfig loads the effective configuration. On failure the remaining
// checks run against the defaults.
func checkConfig(result *doctorResult, f *doctorFlags, env *Environment) *config.Config {
	result.Config.Source = f.common.config
	if result.Config.Source == "" {
		result.Config.Source = os.Getenv("PDD_CONFIG")
	}
	if result.Config.Source == "" {
		result.Config.Source = "defaults"
	}

	cfg, err := loadConfig(f.common.config, env, nil)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Config: %v", err))
		return config.DefaultConfig()
	}
	result.Config.OK = true
	return cfg
}

// checkEngine generates the example document and reads it back.
func checkEngine(ctx context.Context, result *doctorResult, cfg *config.Config, env *Environment) {
	gen, err := newGenerator(cfg, env)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Document engine: %v", err))
		return
	}

	res, err := gen.Generate(ctx, pdd.ExampleRequest())
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Document engine: %v", err))
		return
	}

	paras, err := docx.ReadParagraphs(res.Document)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Document engine: generated document is unreadable: %v", err))
		return
	}

	result.Engine = engineInfo{OK: true, Paragraphs: len(paras), Size: len(res.Document)}
}

// checkListener tries to bind the API address. A busy port is a warning:
// pdd serve may already be running there.
func checkListener(result *doctorResult, addr string) {
	result.Listener.Addr = addr

	ln, err := server.Listen(addr)
	if err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Address %s is not available (pdd serve already running?): %v", addr, err))
		return
	}
	_ = ln.Close()
	result.Listener.Available = true
}

// checkRemote asks a running server for its health endpoint.
func checkRemote(ctx context.Context, result *doctorResult, baseURL string) {
	c := client.New(baseURL, client.WithTimeout(remoteCheckTimeout))
	result.Remote = &remoteInfo{URL: c.BaseURL()}

	if err := c.Health(ctx); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Remote server %s: %v", c.BaseURL(), err))
		return
	}
	result.Remote.Healthy = true
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult, addr string) {
	result.Env.Container, result.Env.ContainerHint = isContainer()

	ciVars := []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}
	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}

	if result.Env.Container && isLoopbackAddr(addr) {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Container detected but server.addr %s only accepts local connections. Use :8080", addr))
	}
}

// isContainer detects if running in a container environment.
// Returns (isContainer, hint) where hint indicates which signal was detected.
func isContainer() (bool, string) {
	if os.Getenv("PDD_CONTAINER") == "1" {
		return true, "PDD_CONTAINER=1"
	}
	if hints.IsInContainer() {
		return true, "/.dockerenv"
	}
	if v := os.Getenv("container"); v != "" {
		return true, "container=" + v
	}
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// isLoopbackAddr reports whether addr binds a loopback host only.
// An empty host (":8080") binds every interface.
func isLoopbackAddr(addr string) bool {
	host, _, err := net.SplitHostPort(addr)
	if err != nil || host == "" {
		return false
	}
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

// checkSystem verifies the temp directory used for atomic writes.
func checkSystem(result *doctorResult) {
	tmpDir := os.TempDir()
	testFile := filepath.Join(tmpDir, "pdd-doctor-test")
	if err := os.WriteFile(testFile, []byte("test"), 0o600); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", tmpDir))
	} else {
		_ = os.Remove(testFile)
		result.System.TempWritable = true
	}
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "pdd doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Document engine")
	if r.Engine.OK {
		fmt.Fprintf(w, "  [OK] Example document: %d paragraphs, %d bytes\n", r.Engine.Paragraphs, r.Engine.Size)
	} else {
		fmt.Fprintln(w, "  [ERROR] Example document could not be generated")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Configuration")
	if r.Config.OK {
		fmt.Fprintf(w, "  [OK] Loaded: %s\n", r.Config.Source)
	} else {
		fmt.Fprintf(w, "  [ERROR] Invalid: %s\n", r.Config.Source)
	}
	if r.Listener.Available {
		fmt.Fprintf(w, "  [OK] Listen address %s: available\n", r.Listener.Addr)
	} else {
		fmt.Fprintf(w, "  [WARN] Listen address %s: in use\n", r.Listener.Addr)
	}
	fmt.Fprintln(w)

	if r.Remote != nil {
		fmt.Fprintln(w, "Remote server")
		if r.Remote.Healthy {
			fmt.Fprintf(w, "  [OK] %s: healthy\n", r.Remote.URL)
		} else {
			fmt.Fprintf(w, "  [ERROR] %s: unreachable or unhealthy\n", r.Remote.URL)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintf(w, "  [OK] Container: detected (%s)\n", r.Env.ContainerHint)
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	if r.System.TempWritable {
		fmt.Fprintln(w, "  [OK] Temp directory: writable")
	} else {
		fmt.Fprintln(w, "  [ERROR] Temp directory: not writable")
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}

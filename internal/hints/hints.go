// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-pdd/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config and the first user config location that was searched.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	userDir := string(filepath.Separator) + "go-pdd" + string(filepath.Separator)
	for _, p := range searchedPaths {
		if strings.Contains(p, userDir) {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForAddrInUse returns hints for a listener that cannot bind.
func ForAddrInUse(addr string) string {
	hint := "another process is listening on " + addr + "; use --addr or PDD_ADDR to pick another port"
	if IsInContainer() {
		hint += " and publish it from the container"
	}
	return format(hint)
}

// ForServerUnreachable returns hints for a remote generation request that never got a response.
func ForServerUnreachable(baseURL string) string {
	return format("check that `pdd serve` is running at " + baseURL + " or drop --remote to generate locally")
}

// ForTimeout returns a hint about increasing the generation timeout.
func ForTimeout() string {
	return format("raise the limit with --timeout or PDD_TIMEOUT")
}

// ForOutputDirectory returns hints for output directory errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForBrowserConnect returns hints for browser launch errors in the demo page tests.
func ForBrowserConnect() string {
	var hints []string

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != ""

	if (inCI || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use custom Chrome")
	}

	return formatHints(hints)
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}

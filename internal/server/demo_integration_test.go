//go:build integration

package server

// Notes:
// - Drives the embedded demo page in headless Chrome through go-rod.
// - The browser download is observed by wrapping the global downloadFile
//   helper, so no files are written.
// - Launch failures skip the test with environment hints instead of failing.

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"

	pdd "github.com/alnah/go-pdd"
	"github.com/alnah/go-pdd/internal/hints"
)

func launchBrowser(t *testing.T) *rod.Browser {
	t.Helper()

	l := launcher.New()
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}
	if os.Getenv("CI") == "true" || os.Getenv("ROD_NO_SANDBOX") == "1" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		t.Skipf("cannot launch browser: %v%s", err, hints.ForBrowserConnect())
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		t.Skipf("cannot connect to browser: %v%s", err, hints.ForBrowserConnect())
	}
	t.Cleanup(func() { _ = browser.Close() })
	return browser
}

const recordDownload = `() => {
	window.downloadFile = (fileName, fileBase64) => {
		window.__download = { fileName, size: atob(fileBase64).length };
	};
}`

func TestDemoPage_GeneratesExampleDocument(t *testing.T) {
	gen, err := pdd.NewGenerator()
	if err != nil {
		t.Fatal(err)
	}
	ts := httptest.NewServer(New(gen, Config{Demo: true}))
	defer ts.Close()

	page := launchBrowser(t).MustPage(ts.URL + "/").Timeout(30 * time.Second)
	page.MustWaitLoad()
	page.MustEval(recordDownload)

	page.MustElement("#generate").MustClick()
	page.MustWait(`() => window.__download !== undefined`)

	name := page.MustEval(`() => window.__download.fileName`).Str()
	if !fileNamePattern.MatchString(name) {
		t.Errorf("downloaded file name = %q", name)
	}
	if size := page.MustEval(`() => window.__download.size`).Int(); size == 0 {
		t.Error("downloaded document is empty")
	}
	if visible := page.MustElement("#error").MustVisible(); visible {
		t.Error("error box should stay hidden on success")
	}
	if label := page.MustElement("#generate").MustText(); label != "Generate Example Document" {
		t.Errorf("button label = %q after completion", label)
	}
}

func TestDemoPage_ShowsServerError(t *testing.T) {
	gen := generatorFunc(func(context.Context, pdd.Request) (*pdd.Result, error) {
		return nil, errors.New("unavailable")
	})
	ts := httptest.NewServer(New(gen, Config{Demo: true}))
	defer ts.Close()

	page := launchBrowser(t).MustPage(ts.URL + "/").Timeout(30 * time.Second)
	page.MustWaitLoad()
	page.MustEval(recordDownload)

	page.MustElement("#generate").MustClick()
	page.MustWait(`() => !document.getElementById("error").hidden`)

	if got := page.MustElement("#error").MustText(); got != MessageGenerationFailed {
		t.Errorf("error box = %q, want %q", got, MessageGenerationFailed)
	}
	if !page.MustEval(`() => window.__download === undefined`).Bool() {
		t.Error("no download should happen on failure")
	}
}

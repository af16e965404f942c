package main

import (
	"errors"
	"fmt"
	"os"
	"testing"

	pdd "github.com/alnah/go-pdd"
	"github.com/alnah/go-pdd/client"
	"github.com/alnah/go-pdd/internal/config"
	"github.com/alnah/go-pdd/internal/logging"
	"github.com/alnah/go-pdd/internal/server"
)

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"unknown error", errors.New("boom"), ExitGeneral},
		{"generation failure", fmt.Errorf("%w: internal", pdd.ErrGeneration), ExitGeneral},

		{"usage", fmt.Errorf("%w: bad flag", ErrUsage), ExitUsage},
		{"no input", ErrNoInput, ExitUsage},
		{"invalid env", ErrInvalidEnv, ExitUsage},
		{"unsupported shell", ErrUnsupportedShell, ExitUsage},
		{"config not found", fmt.Errorf("loading config: %w", config.ErrConfigNotFound), ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"config value", config.ErrInvalidValue, ExitUsage},
		{"log level", logging.ErrInvalidLevel, ExitUsage},
		{"invalid request", fmt.Errorf("%w: %w", pdd.ErrInvalidInput, pdd.ErrTitleRequired), ExitUsage},
		{"malformed request", pdd.ErrMalformedRequest, ExitUsage},
		{"remote 400", &client.APIError{StatusCode: 400, Message: "Invalid input"}, ExitUsage},

		{"missing file", fmt.Errorf("%w: %w", ErrReadInput, os.ErrNotExist), ExitIO},
		{"permission", os.ErrPermission, ExitIO},
		{"write output", ErrWriteOutput, ExitIO},
		{"download", client.ErrDownload, ExitIO},

		{"remote 500", &client.APIError{StatusCode: 500, Message: "Failed"}, ExitNetwork},
		{"unreachable", fmt.Errorf("%w: refused", client.ErrRequest), ExitNetwork},
		{"bad response", client.ErrResponse, ExitNetwork},
		{"listen", fmt.Errorf("%w: :80", server.ErrListen), ExitNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

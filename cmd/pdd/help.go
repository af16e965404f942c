package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pdd <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  serve      Run the document generation HTTP service")
	fmt.Fprintln(w, "  generate   Generate a document from a request file")
	fmt.Fprintln(w, "  config     Print the effective configuration")
	fmt.Fprintln(w, "  doctor     Check the document engine, config and environment")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w, "  completion Generate shell completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'pdd help <command>' for details on a specific command.")
}

// printServeUsage prints usage for the serve command.
func printServeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pdd serve [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Serve POST /api/generate-docx, /healthz, /metrics and the demo page.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Listener:")
	fmt.Fprintln(w, "      --addr <addr>         Listen address (default :8080)")
	fmt.Fprintln(w, "      --metrics-addr <addr> Serve /metrics on a separate listener")
	fmt.Fprintln(w, "      --body-limit <size>   Maximum request body (e.g., 512K, 1M)")
	fmt.Fprintln(w, "      --rate-limit <n>      Requests per second per client IP (0 = off)")
	fmt.Fprintln(w, "      --no-demo             Do not serve the demo page")
	fmt.Fprintln(w, "      --no-metrics          Disable Prometheus metrics")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Logging:")
	fmt.Fprintln(w, "      --log-level <s>       debug, info, warn, error")
	fmt.Fprintln(w, "      --log-format <s>      console, json")
	fmt.Fprintln(w)
	printDocumentFlags(w)
}

// printGenerateUsage prints usage for the generate command.
func printGenerateUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pdd generate <input|-> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate a Process Definition Document and print its path.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Request file (.json, .yaml, .yml) or - for stdin")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory (default: current directory)")
	fmt.Fprintln(w, "  -r, --remote <url>        Generate on a running server instead of locally")
	fmt.Fprintln(w, "      --example             Use the built-in example request")
	fmt.Fprintln(w)
	printDocumentFlags(w)
}

func printDocumentFlags(w io.Writer) {
	fmt.Fprintln(w, "Document:")
	fmt.Fprintln(w, "      --inline-markdown     Format **bold**, *italic* and `code` in field text")
	fmt.Fprintln(w, "  -t, --timeout <d>         Generation timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Common:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment: PDD_CONFIG, PDD_ADDR, PDD_METRICS_ADDR, PDD_LOG_LEVEL,")
	fmt.Fprintln(w, "PDD_LOG_FORMAT, PDD_RATE_LIMIT, PDD_TIMEOUT, PDD_INLINE_MARKDOWN.")
	fmt.Fprintln(w, "A .env file in the working directory is loaded first.")
}

// printConfigUsage prints usage for the config command.
func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pdd config [-c name]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the configuration after applying the file, PDD_* variables and defaults.")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pdd doctor [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate the example document in memory, check the configuration and")
	fmt.Fprintln(w, "report whether the listen address is free. Exits 1 when a check fails.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -r, --remote <url>        Also check a running server's /healthz")
	fmt.Fprintln(w, "      --json                Print the report as JSON")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "serve":
		printServeUsage(env.Stdout)
	case "generate":
		printGenerateUsage(env.Stdout)
	case "config":
		printConfigUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: pdd version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: pdd help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "unknown command: %s\n\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}

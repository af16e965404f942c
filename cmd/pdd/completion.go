package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	flag "github.com/spf13/pflag"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash       Shell = "bash"
	ShellZsh        Shell = "zsh"
	ShellFish       Shell = "fish"
	ShellPowerShell Shell = "powershell"
)

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota // default
	flagBool
	flagFloat
	flagEnum // has predefined values
	flagFile // file with glob pattern
	flagDir  // directory
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string   // --output
	Short    string   // -o (empty if none)
	Type     flagType // completion type
	Desc     string   // help text
	Values   []string // for enum flags
	FileGlob string   // for file flags
}

// commandDef describes a command for completion.
type commandDef struct {
	Name        string
	Desc        string
	Flags       []flagDef
	TakesFiles  bool   // accepts file arguments
	FilePattern string // glob for file arguments (e.g., "*.json")
}

// completionMeta holds completion-specific metadata for flags.
// Flag names, types, and descriptions come from the FlagSet.
type completionMeta struct {
	Values   []string // enum values
	FileGlob string   // file glob pattern
	IsDir    bool     // directory completion
}

// flagCompletionMeta maps flag names to their completion metadata.
var flagCompletionMeta = map[string]completionMeta{
	"log-level":  {Values: []string{"debug", "info", "warn", "error"}},
	"log-format": {Values: []string{"console", "json"}},
	"config":     {FileGlob: "*.yaml,*.yml"},
	"output":     {IsDir: true},
}

// extractFlagsFromFlagSet extracts flag definitions from a pflag.FlagSet,
// enriched with flagCompletionMeta.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
		}

		switch f.Value.Type() {
		case "bool":
			fd.Type = flagBool
		case "float32", "float64":
			fd.Type = flagFloat
		default:
			fd.Type = flagString
		}

		if meta, ok := flagCompletionMeta[f.Name]; ok {
			switch {
			case len(meta.Values) > 0:
				fd.Type = flagEnum
				fd.Values = meta.Values
			case meta.FileGlob != "":
				fd.Type = flagFile
				fd.FileGlob = meta.FileGlob
			case meta.IsDir:
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	return flags
}

// getCommands returns the command registry for completion.
// Flags are extracted from the same FlagSets the commands parse.
func getCommands() []commandDef {
	configSet, _ := buildConfigFlagSet(io.Discard)
	doctorSet, _ := buildDoctorFlagSet(io.Discard)

	return []commandDef{
		{
			Name:  "serve",
			Desc:  "Run the HTTP service",
			Flags: extractFlagsFromFlagSet(buildServeFlagSet(io.Discard).set),
		},
		{
			Name:        "generate",
			Desc:        "Generate a document from a request file",
			Flags:       extractFlagsFromFlagSet(buildGenerateFlagSet(io.Discard).set),
			TakesFiles:  true,
			FilePattern: "*.json,*.yaml,*.yml",
		},
		{
			Name:  "config",
			Desc:  "Print the effective configuration",
			Flags: extractFlagsFromFlagSet(configSet),
		},
		{
			Name:  "doctor",
			Desc:  "Check the document engine, config and environment",
			Flags: extractFlagsFromFlagSet(doctorSet),
		},
		{Name: "version", Desc: "Show version information"},
		{Name: "help", Desc: "Show help for a command"},
		{Name: "completion", Desc: "Generate shell completion script"},
	}
}

// GenerateCompletion writes shell completion script to w.
// Returns error if shell is unsupported or write fails.
func GenerateCompletion(w io.Writer, shell Shell) error {
	var script string
	switch shell {
	case ShellBash:
		script = bashScript(getCommands())
	case ShellZsh:
		script = zshScript(getCommands())
	case ShellFish:
		script = fishScript(getCommands())
	case ShellPowerShell:
		script = powerShellScript(getCommands())
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish, powershell)", ErrUnsupportedShell, shell)
	}
	_, err := io.WriteString(w, script)
	return err
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}
	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pdd completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w, "  powershell  PowerShell completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(pdd completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (after compinit):")
	fmt.Fprintln(w, "    eval \"$(pdd completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    pdd completion fish > ~/.config/fish/completions/pdd.fish")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  PowerShell:")
	fmt.Fprintln(w, "    # Add to $PROFILE:")
	fmt.Fprintln(w, "    pdd completion powershell | Out-String | Invoke-Expression")
}

// ---------------------------------------------------------------------------
// Script generators
// ---------------------------------------------------------------------------

// globExtensions turns "*.yaml,*.yml" into ["yaml", "yml"].
func globExtensions(glob string) []string {
	var exts []string
	for _, p := range strings.Split(glob, ",") {
		p = strings.TrimPrefix(strings.TrimSpace(p), "*.")
		if p != "" {
			exts = append(exts, p)
		}
	}
	return exts
}

func commandNames(cmds []commandDef) []string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return names
}

func flagNames(fd flagDef) []string {
	names := []string{"--" + fd.Long}
	if fd.Short != "" {
		names = append(names, "-"+fd.Short)
	}
	return names
}

func bashScript(cmds []commandDef) string {
	var b strings.Builder

	b.WriteString("# bash completion for pdd\n")
	b.WriteString("_pdd_completions() {\n")
	b.WriteString("    local cur prev cmd\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("    cmd=\"${COMP_WORDS[1]}\"\n\n")
	b.WriteString("    if [[ ${COMP_CWORD} -eq 1 ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n", strings.Join(commandNames(cmds), " "))
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    case \"${cmd}\" in\n")

	for _, c := range cmds {
		if len(c.Flags) == 0 && !c.TakesFiles {
			continue
		}
		fmt.Fprintf(&b, "    %s)\n", c.Name)

		b.WriteString("        case \"${prev}\" in\n")
		var all []string
		for _, fd := range c.Flags {
			names := flagNames(fd)
			all = append(all, names...)
			switch fd.Type {
			case flagEnum:
				fmt.Fprintf(&b, "        %s) COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") ); return ;;\n",
					strings.Join(names, "|"), strings.Join(fd.Values, " "))
			case flagFile:
				fmt.Fprintf(&b, "        %s) COMPREPLY=( $(compgen -f -X '!*.@(%s)' -- \"${cur}\") ); return ;;\n",
					strings.Join(names, "|"), strings.Join(globExtensions(fd.FileGlob), "|"))
			case flagDir:
				fmt.Fprintf(&b, "        %s) COMPREPLY=( $(compgen -d -- \"${cur}\") ); return ;;\n",
					strings.Join(names, "|"))
			case flagString, flagFloat:
				fmt.Fprintf(&b, "        %s) return ;;\n", strings.Join(names, "|"))
			}
		}
		b.WriteString("        esac\n")

		b.WriteString("        if [[ \"${cur}\" == -* ]]; then\n")
		fmt.Fprintf(&b, "            COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n", strings.Join(all, " "))
		b.WriteString("            return\n")
		b.WriteString("        fi\n")
		if c.TakesFiles {
			fmt.Fprintf(&b, "        COMPREPLY=( $(compgen -f -X '!*.@(%s)' -- \"${cur}\") )\n",
				strings.Join(globExtensions(c.FilePattern), "|"))
		}
		b.WriteString("        ;;\n")
	}

	b.WriteString("    help)\n")
	fmt.Fprintf(&b, "        COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n", strings.Join(commandNames(cmds), " "))
	b.WriteString("        ;;\n")
	b.WriteString("    completion)\n")
	b.WriteString("        COMPREPLY=( $(compgen -W \"bash zsh fish powershell\" -- \"${cur}\") )\n")
	b.WriteString("        ;;\n")
	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("shopt -s extglob\n")
	b.WriteString("complete -o filenames -F _pdd_completions pdd\n")

	return b.String()
}

// zshQuote escapes s for a single-quoted _arguments description.
func zshQuote(s string) string {
	r := strings.NewReplacer("'", `'\''`, "[", `\[`, "]", `\]`)
	return r.Replace(s)
}

func zshScript(cmds []commandDef) string {
	var b strings.Builder

	b.WriteString("#compdef pdd\n\n")
	b.WriteString("_pdd() {\n")
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        '%s:%s'\n", c.Name, zshQuote(c.Desc))
	}
	b.WriteString("    )\n\n")
	b.WriteString("    if (( CURRENT == 2 )); then\n")
	b.WriteString("        _describe 'command' commands\n")
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    case \"${words[2]}\" in\n")

	for _, c := range cmds {
		if len(c.Flags) == 0 && !c.TakesFiles {
			continue
		}
		fmt.Fprintf(&b, "    %s)\n", c.Name)
		b.WriteString("        _arguments \\\n")
		for _, fd := range c.Flags {
			var argSpec string
			if fd.Short != "" {
				argSpec = fmt.Sprintf("'(-%s --%s)'{-%s,--%s}'[%s]", fd.Short, fd.Long, fd.Short, fd.Long, zshQuote(fd.Desc))
			} else {
				argSpec = fmt.Sprintf("'--%s[%s]", fd.Long, zshQuote(fd.Desc))
			}
			switch fd.Type {
			case flagEnum:
				argSpec += fmt.Sprintf(":%s:(%s)", fd.Long, strings.Join(fd.Values, " "))
			case flagFile:
				argSpec += fmt.Sprintf(":file:_files -g \"*.(%s)\"", strings.Join(globExtensions(fd.FileGlob), "|"))
			case flagDir:
				argSpec += ":directory:_files -/"
			case flagString, flagFloat:
				argSpec += ":value:"
			}
			fmt.Fprintf(&b, "            %s' \\\n", argSpec)
		}
		if c.TakesFiles {
			fmt.Fprintf(&b, "            '*:input file:_files -g \"*.(%s)\"' \\\n", strings.Join(globExtensions(c.FilePattern), "|"))
		}
		b.WriteString("            && return 0\n")
		b.WriteString("        ;;\n")
	}

	b.WriteString("    help)\n")
	b.WriteString("        _describe 'command' commands\n")
	b.WriteString("        ;;\n")
	b.WriteString("    completion)\n")
	b.WriteString("        _values 'shell' bash zsh fish powershell\n")
	b.WriteString("        ;;\n")
	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("compdef _pdd pdd\n")

	return b.String()
}

// fishQuote escapes s for a fish single-quoted string.
func fishQuote(s string) string {
	return strings.NewReplacer(`\`, `\\`, "'", `\'`).Replace(s)
}

func fishScript(cmds []commandDef) string {
	var b strings.Builder

	b.WriteString("# fish completion for pdd\n\n")
	b.WriteString("function __fish_pdd_needs_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -eq 1\n")
	b.WriteString("end\n\n")
	b.WriteString("function __fish_pdd_using_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -gt 1; and test $cmd[2] = $argv[1]\n")
	b.WriteString("end\n\n")
	b.WriteString("complete -c pdd -f\n")

	for _, c := range cmds {
		fmt.Fprintf(&b, "complete -c pdd -n __fish_pdd_needs_command -a %s -d '%s'\n", c.Name, fishQuote(c.Desc))
	}
	b.WriteString("\n")

	for _, c := range cmds {
		cond := fmt.Sprintf("-n '__fish_pdd_using_command %s'", c.Name)
		for _, fd := range c.Flags {
			line := "complete -c pdd " + cond
			if fd.Short != "" {
				line += " -s " + fd.Short
			}
			line += " -l " + fd.Long
			switch fd.Type {
			case flagEnum:
				line += fmt.Sprintf(" -x -a '%s'", strings.Join(fd.Values, " "))
			case flagFile:
				line += " -r -F"
			case flagDir:
				line += " -x -a '(__fish_complete_directories)'"
			case flagString, flagFloat:
				line += " -x"
			}
			line += fmt.Sprintf(" -d '%s'", fishQuote(fd.Desc))
			b.WriteString(line + "\n")
		}
		if c.TakesFiles {
			fmt.Fprintf(&b, "complete -c pdd %s -F\n", cond)
		}
	}

	b.WriteString("complete -c pdd -n '__fish_pdd_using_command help' -a '" + strings.Join(commandNames(cmds), " ") + "'\n")
	b.WriteString("complete -c pdd -n '__fish_pdd_using_command completion' -a 'bash zsh fish powershell'\n")

	return b.String()
}

// psQuote escapes s for a PowerShell single-quoted string.
func psQuote(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func powerShellScript(cmds []commandDef) string {
	var b strings.Builder

	b.WriteString("# powershell completion for pdd\n")
	b.WriteString("Register-ArgumentCompleter -Native -CommandName pdd -ScriptBlock {\n")
	b.WriteString("    param($wordToComplete, $commandAst, $cursorPosition)\n\n")
	b.WriteString("    $words = @($commandAst.CommandElements | ForEach-Object { $_.ToString() })\n\n")
	b.WriteString("    $commands = [ordered]@{\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        '%s' = '%s'\n", c.Name, psQuote(c.Desc))
	}
	b.WriteString("    }\n\n")

	b.WriteString("    $flags = @{\n")
	for _, c := range cmds {
		if len(c.Flags) == 0 {
			continue
		}
		var names []string
		for _, fd := range c.Flags {
			for _, n := range flagNames(fd) {
				names = append(names, "'"+n+"'")
			}
		}
		sort.Strings(names)
		fmt.Fprintf(&b, "        '%s' = @(%s)\n", c.Name, strings.Join(names, ", "))
	}
	b.WriteString("    }\n\n")

	b.WriteString("    if ($words.Count -le 1 -or ($words.Count -eq 2 -and $wordToComplete -ne '')) {\n")
	b.WriteString("        $commands.GetEnumerator() | Where-Object { $_.Key -like \"$wordToComplete*\" } | ForEach-Object {\n")
	b.WriteString("            [System.Management.Automation.CompletionResult]::new($_.Key, $_.Key, 'ParameterValue', $_.Value)\n")
	b.WriteString("        }\n")
	b.WriteString("        return\n")
	b.WriteString("    }\n\n")
	b.WriteString("    $cmd = $words[1]\n")
	b.WriteString("    if ($flags.ContainsKey($cmd)) {\n")
	b.WriteString("        $flags[$cmd] | Where-Object { $_ -like \"$wordToComplete*\" } | ForEach-Object {\n")
	b.WriteString("            [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterName', $_)\n")
	b.WriteString("        }\n")
	b.WriteString("    }\n")
	b.WriteString("}\n")

	return b.String()
}

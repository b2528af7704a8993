// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - Command parsing and dispatch for ambient.

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdPreview Command = iota
	CmdDetect
	CmdTheme
	CmdRules
	CmdConfig
	CmdChat
	CmdVersion
	CmdHelp
)

var commandNames = map[Command]string{
	CmdPreview: "preview",
	CmdDetect:  "detect",
	CmdTheme:   "theme",
	CmdRules:   "rules",
	CmdConfig:  "config",
	CmdChat:    "chat",
	CmdVersion: "version",
	CmdHelp:    "help",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return "unknown"
}

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	JSON       bool
	Quiet      bool
	Verbose    bool
	LLM        bool   // force the model classifier on
	ConfigPath string // settings file instead of the default

	// Subcommand is the first argument after the command, if any.
	Subcommand string
	// Raw holds every argument after the command for per-command parsing.
	Raw []string
	// Unknown is set when the command word was not recognized.
	Unknown string
}

// ErrUnknownCommand is returned by Run for unrecognized commands.
var ErrUnknownCommand = errors.New("unknown command")

const usageText = `ambient - conversation mood themes and text effects

USAGE:
  ambient [global flags] <command> [args]

COMMANDS:
  preview                       Live themed preview (default)
  detect [text...]              Detect the mood of text, a file or stdin
  theme [show|list|lerp]        Inspect mood themes and transitions
  rules [list|presets|...]      Manage and test text effect rules
  config [show|get|set|...]     Manage settings
  chat                          Line-based chat with mood tracking
  version                       Show version information
  help                          Show this help

GLOBAL FLAGS:
  --json                        Machine-readable output
  --config <path>               Use a specific settings file
  --llm                         Add model-based mood signals
  -q, --quiet                   Less output
  -v, --verbose                 More output

EXAMPLES:
  ambient detect "I can't believe you did that!!!"
  ambient detect --file transcript.txt --window 10 --json
  ambient theme show romantic --tokens
  ambient theme lerp neutral heated 0.5
  ambient rules apply "*waves* hello <3" --presets
  ambient rules add --match "wow" --action wrap --class sparkle
  ambient config set intensity 0.6
  ambient chat

ENVIRONMENT:
  AMBIENT_HOME                  Settings directory (default ~/.ambient)
  AMBIENT_ENABLED, AMBIENT_INTENSITY, AMBIENT_MANUAL_MOOD, ...
  OPENAI_API_KEY                API key for --llm
  NO_COLOR, FORCE_COLOR         Color output control
`

// PrintUsage prints the top-level help.
func PrintUsage() {
	fmt.Fprint(stdout, usageText)
}

// PrintVersion prints version information.
func PrintVersion() {
	fmt.Fprintf(stdout, "ambient %s\n", Version)
	fmt.Fprintf(stdout, "  Commit:  %s\n", GitCommit)
	fmt.Fprintf(stdout, "  Built:   %s\n", BuildDate)
	fmt.Fprintf(stdout, "  Go:      %s\n", runtime.Version())
}

// VersionData is the --json payload of the version command.
type VersionData struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
}

// =============================================================================
// PARSING
// =============================================================================

// Parse parses os.Args.
func Parse() (Command, Args) {
	return ParseArgs(os.Args[1:])
}

// ParseArgs parses argv (without the program name). Global flags may
// appear anywhere; with no command the preview runs.
func ParseArgs(argv []string) (Command, Args) {
	remaining, parsedArgs := parseGlobalFlags(argv)

	if len(remaining) == 0 {
		return CmdPreview, parsedArgs
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	parsedArgs.Raw = remaining
	if len(remaining) > 0 {
		parsedArgs.Subcommand = remaining[0]
	}

	switch cmd {
	case "preview", "tui", "ui":
		return CmdPreview, parsedArgs
	case "detect", "mood":
		return CmdDetect, parsedArgs
	case "theme", "themes":
		return CmdTheme, parsedArgs
	case "rules", "rule", "fx":
		return CmdRules, parsedArgs
	case "config", "cfg":
		return CmdConfig, parsedArgs
	case "chat", "c":
		return CmdChat, parsedArgs
	case "version", "--version", "-V":
		return CmdVersion, parsedArgs
	case "help", "--help", "-h":
		return CmdHelp, parsedArgs
	}

	parsedArgs.Unknown = cmd
	return CmdHelp, parsedArgs
}

// parseGlobalFlags pulls the global flags out of args and returns the rest
// in order.
func parseGlobalFlags(args []string) ([]string, Args) {
	var remaining []string
	var parsedArgs Args

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if arg == "--" {
			remaining = append(remaining, args[i:]...)
			break
		}

		switch arg {
		case "-q", "--quiet":
			parsedArgs.Quiet = true
		case "-v", "--verbose":
			parsedArgs.Verbose = true
		case "--json":
			parsedArgs.JSON = true
		case "--llm":
			parsedArgs.LLM = true
		case "--config":
			if i+1 < len(args) {
				i++
				parsedArgs.ConfigPath = args[i]
			}
		default:
			if strings.HasPrefix(arg, "--config=") {
				parsedArgs.ConfigPath = strings.TrimPrefix(arg, "--config=")
			} else {
				remaining = append(remaining, arg)
			}
		}
	}

	return remaining, parsedArgs
}

// =============================================================================
// DISPATCH
// =============================================================================

// Run executes cmd.
func Run(ctx context.Context, cmd Command, args Args) error {
	switch cmd {
	case CmdPreview:
		return HandlePreview(ctx, args)
	case CmdDetect:
		return HandleDetect(ctx, args)
	case CmdTheme:
		return HandleTheme(args)
	case CmdRules:
		return HandleRules(args)
	case CmdConfig:
		return HandleConfig(args)
	case CmdChat:
		return HandleChat(ctx, args)
	case CmdVersion:
		HandleVersion(args)
		return nil
	}

	if args.Unknown != "" {
		err := fmt.Errorf("%w: %s", ErrUnknownCommand, args.Unknown)
		if args.JSON {
			_ = NewJSONErrorResponse(args.Unknown, err).Print()
		} else {
			fmt.Fprintf(stderr, "%s\n\n", err)
			PrintUsage()
		}
		return err
	}
	PrintUsage()
	return nil
}

// HandleVersion handles the "version" command.
func HandleVersion(args Args) {
	if args.JSON {
		data := VersionData{
			Version:   Version,
			GitCommit: GitCommit,
			BuildDate: BuildDate,
			GoVersion: runtime.Version(),
		}
		_ = NewJSONResponse("version", data).Print()
		return
	}
	PrintVersion()
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - Interactive chat command handler for the ambient CLI.
//
// A line-based REPL: every message is run through the text rules, echoed
// in the current mood's colors, and folded into mood detection. Mood
// changes are announced as they happen.
//
// Command: chat
// Short:   Line-based chat with mood tracking
// Aliases: c
//
// Examples:
//   ambient chat
//   ambient --llm chat                Add model-based signals
//   ambient chat --speaker Ada        Label your messages
//
// Flags:
//   --speaker NAME      Label printed before each message (default "you")
//   -q, --quiet         Minimal output
//
// Interactive Commands (during chat):
//   /help, /h           Show available commands
//   /mood [name|auto]   Show, force or release the mood
//   /reset              Back to neutral and forget the conversation
//   /tokens             Print the current design tokens
//   /rules              List active text rules
//   /effects            Toggle text effects
//   /llm [on|off]       Show or switch model-based signals
//   /history            Show the conversation
//   /quit, /q           Exit chat
//   Ctrl+C              Cancel a pending model call, or exit at the prompt
//   Ctrl+D              Exit chat

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/peterh/liner"

	"github.com/jeranaias/ambient/internal/ambient"
	"github.com/jeranaias/ambient/internal/config"
	"github.com/jeranaias/ambient/internal/llm"
	"github.com/jeranaias/ambient/internal/mood"
	"github.com/jeranaias/ambient/internal/textfx"
	"github.com/jeranaias/ambient/internal/theme"
	"github.com/jeranaias/ambient/internal/ui/styles"
)

// =============================================================================
// INPUT HISTORY
// =============================================================================

// ChatCLI provides input history and line editing for interactive chat.
type ChatCLI struct {
	line        *liner.State
	historyFile string
}

// NewChatCLI creates a new ChatCLI with input history support.
func NewChatCLI() *ChatCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	configDir, err := config.ConfigDir()
	if err != nil {
		configDir = os.TempDir()
	}

	cli := &ChatCLI{
		line:        line,
		historyFile: filepath.Join(configDir, "chat_history"),
	}
	cli.LoadHistory()
	return cli
}

// LoadHistory loads command history from file.
func (c *ChatCLI) LoadHistory() {
	if f, err := os.Open(c.historyFile); err == nil {
		c.line.ReadHistory(f)
		f.Close()
	}
}

// ReadInput reads a line of input with the given prompt.
func (c *ChatCLI) ReadInput(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}
	return input, nil
}

// SaveHistory persists command history to file (0600).
func (c *ChatCLI) SaveHistory() {
	if err := os.MkdirAll(filepath.Dir(c.historyFile), 0700); err != nil {
		return
	}
	f, err := os.OpenFile(c.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return
	}
	defer f.Close()
	c.line.WriteHistory(f)
}

// Close saves history and closes the liner.
func (c *ChatCLI) Close() {
	c.SaveHistory()
	c.line.Close()
}

// =============================================================================
// SESSION STATE
// =============================================================================

// ChatSession holds the state for an interactive chat session.
type ChatSession struct {
	Engine   *ambient.Engine
	Styles   *styles.Theme
	Messages []string
	Speaker  string
	Quiet    bool

	// NewSource builds the model signal source for /llm on.
	NewSource func(config.LLMConfig) (ambient.SignalSource, error)

	out         io.Writer
	mu          sync.Mutex // guards lastMood
	lastMood    mood.Mood
	llmOn       bool
	unsubscribe func()
}

func newLLMSource(c config.LLMConfig) (ambient.SignalSource, error) {
	src, err := llm.FromConfig(c)
	if err != nil {
		return nil, err
	}
	return src, nil
}

// NewChatSession builds a session writing to out. Theme transitions run on
// timers and restyle output as they progress.
func NewChatSession(cfg *config.Settings, source ambient.SignalSource, out io.Writer) *ChatSession {
	st := newStyles(out)
	st.SetIntensity(cfg.Intensity)

	ctrl := ambient.NewController(ambient.ControllerOptions{Sink: st})
	s := &ChatSession{
		Engine:   ambient.NewEngine(cfg, ambient.EngineOptions{Controller: ctrl, Source: source}),
		Styles:   st,
		Speaker:   "you",
		NewSource: newLLMSource,
		out:       out,
		lastMood:  mood.Neutral,
		llmOn:     source != nil,
	}
	s.lastMood = s.Engine.State().Current
	s.unsubscribe = s.Engine.Subscribe(s.announce)
	return s
}

// Close stops transitions and mood announcements.
func (s *ChatSession) Close() {
	s.unsubscribe()
	s.Engine.Controller().Stop()
}

// announce prints a mood change.
func (s *ChatSession) announce(state ambient.MoodState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.lastMood
	s.lastMood = state.Current
	if s.Quiet {
		return
	}
	target := s.Styles.Renderer().NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(theme.HexOf(state.Theme.Accent, styles.SurfaceHex)))
	fmt.Fprintf(s.out, "%s %s → %s %s\n",
		DimStyle.Render("[mood]"),
		prev,
		target.Render(string(state.Current)),
		DimStyle.Render(fmt.Sprintf("(%.2f)", state.Confidence)))
}

// =============================================================================
// COMMAND HANDLER
// =============================================================================

// HandleChat handles the "chat" command.
func HandleChat(ctx context.Context, args Args) error {
	parser := NewArgParser(args.Raw)

	cfg, err := loadSettings(args)
	if err != nil {
		return err
	}
	source, err := signalSource(args, cfg)
	if err != nil {
		return err
	}

	session := NewChatSession(cfg, source, stdout)
	defer session.Close()
	session.Quiet = args.Quiet
	session.Speaker = parser.FlagOrDefault("speaker", session.Speaker)

	if !session.Quiet {
		printWelcome(session)
	}

	if path, err := settingsPath(args); err == nil {
		if w := session.watchSettings(path); w != nil {
			defer w.Close()
		}
	}

	input := NewChatCLI()
	defer input.Close()

	for {
		line, err := input.ReadInput(session.Styles.AccentStyle().Render("ambient> "))
		if err != nil {
			// Ctrl+C at the prompt, Ctrl+D or a closed terminal
			fmt.Fprintln(stdout)
			printExitSummary(session)
			return nil
		}

		msgCtx, stop := signal.NotifyContext(ctx, os.Interrupt)
		cont, err := session.HandleLine(msgCtx, line)
		stop()
		if err != nil {
			fmt.Fprintf(stderr, "%s %v\n", ErrorStyle.Render("[Error]"), err)
		}
		if !cont {
			printExitSummary(session)
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

// watchSettings applies edits to the settings file as they happen. It
// returns nil when the file cannot be watched.
func (s *ChatSession) watchSettings(path string) *config.Watcher {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		log.Printf("ambient: settings watcher unavailable: %v", err)
		return nil
	}
	w, err := config.NewWatcher(path, config.DefaultDebounce, func(cfg *config.Settings, err error) {
		if err != nil {
			log.Printf("ambient: settings not reloaded: %v", err)
			return
		}
		s.Styles.SetIntensity(cfg.Intensity)
		for _, rerr := range s.Engine.ApplySettings(cfg) {
			log.Printf("ambient: %v", rerr)
		}
		if !s.Quiet {
			fmt.Fprintln(s.out, DimStyle.Render("[settings reloaded]"))
		}
	})
	if err != nil {
		log.Printf("ambient: settings watcher unavailable: %v", err)
		return nil
	}
	if err := w.Watch(); err != nil {
		log.Printf("ambient: settings watcher unavailable: %v", err)
		w.Close()
		return nil
	}
	return w
}

// HandleLine processes one line of input. It returns false when the
// session should end.
func (s *ChatSession) HandleLine(ctx context.Context, line string) (bool, error) {
	line = strings.TrimSpace(line)
	switch {
	case line == "":
		return true, nil
	case strings.HasPrefix(line, "/"):
		return s.handleSlashCommand(ctx, line)
	case strings.EqualFold(line, "exit"), strings.EqualFold(line, "quit"):
		return false, nil
	}
	return true, s.processMessage(ctx, line)
}

// =============================================================================
// MESSAGE PROCESSING
// =============================================================================

// processMessage folds input into the mood and echoes it with effects.
func (s *ChatSession) processMessage(ctx context.Context, input string) error {
	s.Messages = append(s.Messages, input)
	_, err := s.Engine.Analyze(ctx, s.Messages)
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(s.out, WarningStyle.Render("[Cancelled]"))
		err = nil
	}

	fmt.Fprintf(s.out, "%s %s\n",
		s.Styles.Speaker.Render(s.Speaker+":"),
		s.Styles.RenderSegments(s.Engine.ProcessText(input), len(s.Messages)))
	return err
}

// =============================================================================
// SLASH COMMANDS
// =============================================================================

// handleSlashCommand processes slash commands.
// Returns (shouldContinue, error) where shouldContinue=false means exit.
func (s *ChatSession) handleSlashCommand(ctx context.Context, cmd string) (bool, error) {
	parts := strings.Fields(cmd)
	if len(parts) == 0 {
		return true, nil
	}
	command := strings.ToLower(parts[0])
	args := parts[1:]

	switch command {
	case "/help", "/h", "/?", "/":
		printChatHelp(s.out)
		return true, nil

	case "/mood", "/m":
		return true, s.handleMoodCommand(ctx, args)

	case "/reset", "/clear":
		s.Messages = s.Messages[:0]
		s.Engine.Reset()
		fmt.Fprintln(s.out, DimStyle.Render("[Conversation cleared]"))
		return true, nil

	case "/tokens":
		for _, tok := range s.Engine.Tokens() {
			fmt.Fprintf(s.out, "  %s: %s;\n", tok.Name, tok.Value)
		}
		return true, nil

	case "/rules":
		rules := s.Engine.Rules()
		if len(rules) == 0 {
			fmt.Fprintln(s.out, DimStyle.Render("No text rules configured."))
		}
		for _, r := range rules {
			printRule(s.out, RuleView{TextRule: r})
		}
		return true, nil

	case "/effects", "/fx":
		settings := s.Engine.Settings()
		settings.Layers.TextEffects = !settings.Layers.TextEffects
		s.Engine.ApplySettings(settings)
		fmt.Fprintf(s.out, "%s text effects %s\n", DimStyle.Render("[fx]"), onOff(settings.Layers.TextEffects))
		return true, nil

	case "/llm":
		return true, s.handleLLMCommand(args)

	case "/history":
		for i, m := range s.Messages {
			fmt.Fprintf(s.out, "%3d  %s\n", i+1, textfx.Render(s.Engine.ProcessText(m)))
		}
		return true, nil

	case "/quit", "/q", "/exit":
		return false, nil

	default:
		return true, fmt.Errorf("unknown command: %s (type /help for commands)", command)
	}
}

// handleMoodCommand shows, forces or releases the mood.
func (s *ChatSession) handleMoodCommand(ctx context.Context, args []string) error {
	settings := s.Engine.Settings()
	if len(args) == 0 {
		state := s.Engine.State()
		mode := "auto"
		if settings.ManualMood != "" {
			mode = "manual"
		}
		fmt.Fprintf(s.out, "%s %s %s\n",
			s.Styles.AccentStyle().Bold(true).Render(string(state.Current)),
			DimStyle.Render(fmt.Sprintf("(%.2f, %s)", state.Confidence, mode)),
			s.Styles.GradientBar(12, 1))
		return nil
	}

	if strings.EqualFold(args[0], "auto") {
		settings.ManualMood = ""
		s.Engine.ApplySettings(settings)
		if len(s.Messages) > 0 {
			if _, err := s.Engine.Analyze(ctx, s.Messages); err != nil {
				return err
			}
		}
		fmt.Fprintln(s.out, DimStyle.Render("[mood] detection resumed"))
		return nil
	}

	m, err := mood.Parse(args[0])
	if err != nil {
		return err
	}
	settings.ManualMood = m
	s.Engine.ApplySettings(settings)
	return nil
}

// handleLLMCommand shows or switches the model signal source.
func (s *ChatSession) handleLLMCommand(args []string) error {
	if len(args) == 0 {
		fmt.Fprintf(s.out, "%s model signals %s\n", DimStyle.Render("[llm]"), onOff(s.llmOn))
		return nil
	}
	switch on, err := ParseBoolString(args[0]); {
	case err != nil:
		return errors.New("usage: /llm [on|off]")
	case on:
		src, err := s.NewSource(s.Engine.Settings().LLM)
		if err != nil {
			return fmt.Errorf("model signals unavailable: %w", err)
		}
		s.Engine.SetSource(src)
		s.llmOn = true
	default:
		s.Engine.SetSource(nil)
		s.llmOn = false
	}
	fmt.Fprintf(s.out, "%s model signals %s\n", DimStyle.Render("[llm]"), onOff(s.llmOn))
	return nil
}

// =============================================================================
// OUTPUT
// =============================================================================

func printWelcome(s *ChatSession) {
	fmt.Fprintln(s.out, s.Styles.GradientText("ambient chat"))
	fmt.Fprintln(s.out, DimStyle.Render("Type a message to see the mood follow along. /help for commands, Ctrl+D to exit."))
	fmt.Fprintln(s.out)
}

func printChatHelp(w io.Writer) {
	fmt.Fprintln(w, SectionStyle.Render("Commands"))
	help := [][2]string{
		{"/mood [name|auto]", "Show, force or release the mood"},
		{"/reset", "Back to neutral and forget the conversation"},
		{"/tokens", "Print the current design tokens"},
		{"/rules", "List active text rules"},
		{"/effects", "Toggle text effects"},
		{"/llm [on|off]", "Show or switch model-based signals"},
		{"/history", "Show the conversation"},
		{"/quit", "Exit chat"},
	}
	for _, h := range help {
		printKV(w, h[0], h[1])
	}
	fmt.Fprintf(w, "\n  %s %s\n", DimStyle.Render("Moods:"), strings.Join(moodNames(), ", "))
}

func printExitSummary(s *ChatSession) {
	if s.Quiet {
		return
	}
	state := s.Engine.State()
	fmt.Fprintf(s.out, "%s %d message(s), ended %s\n",
		DimStyle.Render("[Session]"),
		len(s.Messages),
		s.Styles.AccentStyle().Render(string(state.Current)))
}

func moodNames() []string {
	all := mood.All()
	names := make([]string, len(all))
	for i, m := range all {
		names[i] = string(m)
	}
	return names
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

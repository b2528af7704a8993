// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package preview

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/ambient/internal/ambient"
	"github.com/jeranaias/ambient/internal/config"
	"github.com/jeranaias/ambient/internal/mood"
	"github.com/jeranaias/ambient/internal/theme"
	"github.com/jeranaias/ambient/internal/ui/styles"
	"github.com/jeranaias/ambient/internal/util"
)

// =============================================================================
// MESSAGES
// =============================================================================

// TickInterval paces particles, background and animate rules.
const TickInterval = 100 * time.Millisecond

// tickMsg advances the ambient animations.
type tickMsg time.Time

// analyzedMsg reports a finished analysis.
type analyzedMsg struct {
	state ambient.MoodState
	err   error
}

// settingsMsg delivers reloaded settings from the file watcher.
type settingsMsg struct {
	settings *config.Settings
	err      error
}

// chromeLines is the number of rows outside the transcript: title,
// gradient bar, particle row, input and help.
const chromeLines = 5

// =============================================================================
// MODEL
// =============================================================================

// Model is the preview's Bubble Tea model.
type Model struct {
	engine *ambient.Engine
	styles *styles.Theme
	keys   KeyMap
	help   help.Model

	input    textinput.Model
	viewport viewport.Model

	messages  []string
	width     int
	height    int
	ready     bool
	tick      int
	started   time.Time
	analyzing  bool
	status     string
	statusKind statusKind
}

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusErr
)

// New creates the preview model around engine, painting with st.
func New(engine *ambient.Engine, st *styles.Theme) Model {
	input := textinput.New()
	input.Placeholder = "Say something..."
	input.Prompt = "> "
	input.PromptStyle = st.InputPrompt
	input.CharLimit = 2000
	input.Focus()

	st.SetIntensity(engine.Settings().Intensity)

	h := help.New()
	h.Styles.ShortKey = st.ShortcutKey
	h.Styles.ShortDesc = st.ShortcutDesc
	h.Styles.ShortSeparator = st.Separator

	return Model{
		engine:   engine,
		styles:   st,
		keys:     DefaultKeyMap(),
		help:     h,
		input:    input,
		viewport: viewport.New(80, 20),
		started:  time.Now(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tickCmd())
}

func tickCmd() tea.Cmd {
	return tea.Tick(TickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case frameMsg:
		msg.req.run(time.Now())
		return m, nil

	case tickMsg:
		m.tick++
		// Animate rules depend on the tick.
		m.refreshTranscript()
		return m, tickCmd()

	case analyzedMsg:
		m.analyzing = false
		if msg.err != nil {
			m.status, m.statusKind = "analysis failed: "+msg.err.Error(), statusErr
		}
		return m, nil

	case settingsMsg:
		if msg.err != nil {
			m.status, m.statusKind = "settings not reloaded: "+msg.err.Error(), statusErr
			return m, nil
		}
		m.status, m.statusKind = "", statusInfo
		m = m.applySettings(msg.settings)
		if m.status == "" {
			m.status, m.statusKind = "settings reloaded", statusOK
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleResize(msg tea.WindowSizeMsg) Model {
	m.width = msg.Width
	m.height = msg.Height
	h := msg.Height - chromeLines
	if h < 1 {
		h = 1
	}
	m.viewport.Width = msg.Width
	m.viewport.Height = h
	m.input.Width = msg.Width - 4
	m.help.Width = msg.Width
	m.ready = true
	m.refreshTranscript()
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Submit):
		text := strings.TrimSpace(m.input.Value())
		if text == "" {
			return m, nil
		}
		m.input.SetValue("")
		m.messages = append(m.messages, text)
		m.refreshTranscript()
		m.viewport.GotoBottom()
		m.analyzing = true
		m.status, m.statusKind = "", statusInfo
		return m, analyzeCmd(m.engine, append([]string(nil), m.messages...))

	case key.Matches(msg, m.keys.CycleMood):
		s := m.engine.Settings()
		s.ManualMood = nextMood(s.ManualMood)
		return m.applySettings(s), nil

	case key.Matches(msg, m.keys.Toggle):
		s := m.engine.Settings()
		s.Enabled = !s.Enabled
		return m.applySettings(s), nil

	case key.Matches(msg, m.keys.Effects):
		s := m.engine.Settings()
		s.Layers.TextEffects = !s.Layers.TextEffects
		m = m.applySettings(s)
		m.refreshTranscript()
		return m, nil

	case key.Matches(msg, m.keys.Reset):
		m.engine.Reset()
		m.messages = nil
		m.status, m.statusKind = "", statusInfo
		m.refreshTranscript()
		return m, nil

	case key.Matches(msg, m.keys.ScrollUp), key.Matches(msg, m.keys.ScrollDown):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func analyzeCmd(engine *ambient.Engine, texts []string) tea.Cmd {
	return func() tea.Msg {
		state, err := engine.Analyze(context.Background(), texts)
		return analyzedMsg{state: state, err: err}
	}
}

func (m Model) applySettings(s *config.Settings) Model {
	if errs := m.engine.ApplySettings(s); len(errs) > 0 {
		m.status, m.statusKind = fmt.Sprintf("%d text rule(s) skipped", len(errs)), statusWarn
	}
	m.styles.SetIntensity(s.Intensity)
	m.refreshTranscript()
	return m
}

// nextMood cycles auto -> every mood -> auto.
func nextMood(current mood.Mood) mood.Mood {
	all := mood.All()
	if current == "" {
		return all[0]
	}
	for i, m := range all {
		if m == current && i+1 < len(all) {
			return all[i+1]
		}
	}
	return ""
}

func (m *Model) refreshTranscript() {
	var b strings.Builder
	for i, text := range m.messages {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(m.styles.Speaker.Render(fmt.Sprintf("#%d ", i+1)))
		b.WriteString(m.styles.RenderSegments(m.engine.ProcessText(text), m.tick))
	}
	m.viewport.SetContent(b.String())
}

// =============================================================================
// VIEW
// =============================================================================

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "\n  starting..."
	}
	settings := m.engine.Settings()
	lines := []string{
		m.titleLine(settings),
		m.gradientLine(settings),
		m.particleLine(settings),
		m.viewport.View(),
		m.input.View(),
		m.footer(),
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) titleLine(s *config.Settings) string {
	title := m.styles.GradientText("ambient")
	if !s.ThemeActive() {
		return m.styles.Header.Render(title + "  " + m.styles.Muted.Render("off"))
	}

	state := m.engine.State()
	label := m.styles.AccentStyle().Inherit(m.styles.MoodLabel).Render(string(state.Current))
	conf := m.styles.Confidence.Render(fmt.Sprintf("%3.0f%%", state.Confidence*100))
	parts := []string{title, label, conf}
	if s.ManualMood != "" {
		parts = append(parts, m.styles.Muted.Render("pinned"))
	}
	if m.analyzing {
		parts = append(parts, m.styles.Muted.Render(styles.DotsSpinner.Frame(time.Since(m.started), m.styles.Mood().AnimationSpeed)))
	}
	return m.styles.Header.Render(strings.Join(parts, "  "))
}

func (m Model) gradientLine(s *config.Settings) string {
	if !s.ThemeActive() {
		return ""
	}
	displayed := ambient.LayerTheme(m.styles.Mood(), s)
	level := styles.BackgroundLevel(displayed.BgAnimation, time.Duration(m.tick)*TickInterval, displayed.AnimationSpeed)
	return m.styles.GradientBar(m.width, level)
}

func (m Model) particleLine(s *config.Settings) string {
	if !s.ThemeActive() {
		return ""
	}
	displayed := ambient.LayerTheme(m.styles.Mood(), s)
	if displayed.ParticleEffect == theme.ParticleNone || displayed.ParticleEffect == "" {
		return ""
	}
	return m.styles.AccentStyle().Render(styles.ParticleRow(displayed.ParticleEffect, m.width, m.tick, displayed.AnimationSpeed))
}

func (m Model) footer() string {
	if m.status != "" {
		// Leave room for the indicator.
		msg := util.TruncateWidth(m.status, m.width-4)
		switch m.statusKind {
		case statusOK:
			return styles.RenderSuccess(msg)
		case statusWarn:
			return styles.RenderWarning(msg)
		case statusErr:
			return styles.RenderError(msg)
		}
		return styles.RenderInfo(msg)
	}
	return m.styles.StatusBar.Render(m.help.View(m.keys))
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package preview

import (
	"context"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/ambient/internal/ambient"
	"github.com/jeranaias/ambient/internal/config"
	"github.com/jeranaias/ambient/internal/ui/styles"
)

// Options configures Run.
type Options struct {
	Settings *config.Settings
	// SettingsPath is watched for changes when set.
	SettingsPath string
	// Source adds model-based signals. Optional.
	Source ambient.SignalSource
	// Styles defaults to styles.NewTheme().
	Styles *styles.Theme
	// AltScreen runs the preview full screen.
	AltScreen bool
}

// Run starts the preview and blocks until the user quits or ctx is done.
func Run(ctx context.Context, opts Options) error {
	st := opts.Styles
	if st == nil {
		st = styles.NewTheme()
	}

	sched := NewTeaScheduler()
	ctrl := ambient.NewController(ambient.ControllerOptions{Scheduler: sched, Sink: st})
	defer ctrl.Stop()
	engine := ambient.NewEngine(opts.Settings, ambient.EngineOptions{Controller: ctrl, Source: opts.Source})

	progOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if opts.AltScreen {
		progOpts = append(progOpts, tea.WithAltScreen())
	}
	p := tea.NewProgram(New(engine, st), progOpts...)
	sched.Attach(p.Send)

	if opts.SettingsPath != "" {
		w, err := config.NewWatcher(opts.SettingsPath, config.DefaultDebounce, func(s *config.Settings, err error) {
			p.Send(settingsMsg{settings: s, err: err})
		})
		if err != nil {
			log.Printf("preview: settings watcher unavailable: %v", err)
		} else if err := w.Watch(); err != nil {
			log.Printf("preview: settings watcher unavailable: %v", err)
			w.Close()
		} else {
			defer w.Close()
		}
	}

	_, err := p.Run()
	return err
}

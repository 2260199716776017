package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/1-abhinav/PromptDJ-DeepMind/config"
	"github.com/1-abhinav/PromptDJ-DeepMind/logger"
	"github.com/1-abhinav/PromptDJ-DeepMind/midi"
	"github.com/1-abhinav/PromptDJ-DeepMind/surface"
	"github.com/1-abhinav/PromptDJ-DeepMind/theme"
	"github.com/1-abhinav/PromptDJ-DeepMind/tui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New()
	if err != nil {
		fmt.Printf("Error opening log: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	th := theme.New(nil)

	binding := midi.NewController()
	s := surface.New(cfg, binding, nil, log)
	defer s.Close()

	m := tui.NewModel(s, th)
	p := tea.NewProgram(m, tea.WithAltScreen())

	// Surface errors show up in the TUI footer
	s.OnError(func(msg string) {
		p.Send(tui.ErrorMsg(msg))
	})

	// Device access resolves in the background; the surface keeps
	// rendering either way
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		if err := s.ConnectMIDI(ctx); err != nil {
			return
		}
		if cfg.MIDI.AutoConnect && cfg.MIDI.PortName != "" {
			s.SetActiveDevice(midi.DeviceID(cfg.MIDI.PortName))
		}
	}()

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

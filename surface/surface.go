// Package surface wires the prompt store, change broadcaster, layout
// manager, visualization engine and MIDI device binding into the
// control surface the host embeds.
package surface

import (
	"errors"
	"sync"
	"time"

	"github.com/1-abhinav/PromptDJ-DeepMind/config"
	"github.com/1-abhinav/PromptDJ-DeepMind/layout"
	"github.com/1-abhinav/PromptDJ-DeepMind/logger"
	"github.com/1-abhinav/PromptDJ-DeepMind/midi"
	"github.com/1-abhinav/PromptDJ-DeepMind/prompt"
	"github.com/1-abhinav/PromptDJ-DeepMind/theme"
	"github.com/1-abhinav/PromptDJ-DeepMind/viz"
)

// PlaybackState mirrors the external audio client's state. The surface
// displays it and never derives or mutates it.
type PlaybackState string

const (
	Stopped PlaybackState = "stopped"
	Loading PlaybackState = "loading"
	Playing PlaybackState = "playing"
	Paused  PlaybackState = "paused"
)

// Surface owns the canonical prompt state and everything derived from
// it. All mutations arrive on the host's event loop; the only other
// goroutines touching it are the broadcast timer and the MIDI pump,
// which go through the store's own locking.
type Surface struct {
	store       *prompt.Store
	broadcaster *prompt.Broadcaster
	layout      *layout.Manager
	engine      *viz.Engine
	binding     midi.DeviceBinding
	theme       *theme.Theme
	log         *logger.Logger

	mu            sync.RWMutex
	playback      PlaybackState
	audioLevel    float64
	devices       []midi.DeviceID
	midiAvailable bool

	onPromptsChanged []func([]prompt.Prompt)
	onPlayPause      []func()
	onError          []func(string)

	// UpdateChan signals the host that displayed state changed.
	// Buffered with cap 1: redundant renders collapse.
	UpdateChan chan struct{}

	closeOnce sync.Once
}

// New builds a surface from config. The device binding is injected so
// the surface is testable without hardware; clock likewise (nil uses
// the wall clock).
func New(cfg *config.Config, binding midi.DeviceBinding, clock prompt.Clock, log *logger.Logger) *Surface {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if log == nil {
		log = logger.Nop()
	}

	s := &Surface{
		store:      prompt.NewStore(),
		layout:     layout.New(cfg.Layout.Breakpoint, cfg.Layout.CompactColumns, cfg.Layout.WideColumns),
		engine:     viz.New(cfg.BaseRadius),
		binding:    binding,
		theme:      theme.New(nil),
		playback:   Stopped,
		log:        log,
		UpdateChan: make(chan struct{}, 1),
	}

	s.broadcaster = prompt.NewBroadcaster(
		time.Duration(cfg.ThrottleWindowMS)*time.Millisecond,
		clock,
		s.store.Snapshot,
		s.deliverPrompts,
	)
	s.store.OnMutate(s.broadcaster.Notify)
	s.store.OnRender(s.notifyUpdate)

	seed := make([]prompt.Prompt, 0, len(cfg.Prompts))
	for i, pc := range cfg.Prompts {
		color := pc.Color
		if color == "" {
			color = s.theme.PromptColor(i)
		}
		seed = append(seed, prompt.New(pc.Text, pc.Weight, pc.CC, color))
	}
	s.store.SetPrompts(seed)

	return s
}

// OnPromptsChanged registers a host callback for the throttled
// prompts-changed notification. The payload is a snapshot; the host
// may keep it.
func (s *Surface) OnPromptsChanged(fn func([]prompt.Prompt)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onPromptsChanged = append(s.onPromptsChanged, fn)
}

// OnPlayPause registers a host callback for the play/pause toggle.
func (s *Surface) OnPlayPause(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onPlayPause = append(s.onPlayPause, fn)
}

// OnError registers a host callback for non-fatal failures.
func (s *Surface) OnError(fn func(string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onError = append(s.onError, fn)
}

// SetPrompts replaces the collection wholesale.
func (s *Surface) SetPrompts(prompts []prompt.Prompt) {
	s.store.SetPrompts(prompts)
}

// Prompts returns a snapshot in iteration order.
func (s *Surface) Prompts() []prompt.Prompt {
	return s.store.Snapshot()
}

// ApplyEdit routes an edit from a child control into the store.
// Unknown identities are dropped; the edit may have raced a removal.
func (s *Surface) ApplyEdit(p prompt.Prompt) {
	if err := s.store.ApplyEdit(p); err != nil {
		if errors.Is(err, prompt.ErrUnknownPrompt) {
			s.log.Debug("dropped edit for unknown prompt", "id", p.ID)
			return
		}
		s.emitError(err.Error())
	}
}

// AddPrompt appends a new prompt with the lowest unbound CC number and
// the next color on the wheel.
func (s *Surface) AddPrompt(text string) prompt.Prompt {
	snapshot := s.store.Snapshot()
	used := make(map[int]bool, len(snapshot))
	for _, p := range snapshot {
		used[p.CC] = true
	}
	cc := -1
	for i := 0; i <= 127; i++ {
		if !used[i] {
			cc = i
			break
		}
	}
	if cc < 0 {
		// All 128 CCs are bound; share a knob rather than refuse the prompt
		cc = len(snapshot) % 128
	}
	p := prompt.New(text, 0, cc, s.theme.PromptColor(len(snapshot)))
	s.store.Add(p)
	return p
}

// RemovePrompt deletes a prompt; survivors keep their slots' order.
func (s *Surface) RemovePrompt(id string) {
	s.store.Remove(id)
}

// AddFilteredPrompt mutes a prompt text regardless of weight.
// Idempotent; triggers a render but no broadcast.
func (s *Surface) AddFilteredPrompt(text string) {
	s.store.MuteByText(text)
}

// RemoveFilteredPrompt unmutes a prompt text.
func (s *Surface) RemoveFilteredPrompt(text string) {
	s.store.UnmuteText(text)
}

// Filtered reports whether a text is muted.
func (s *Surface) Filtered(text string) bool {
	return s.store.Muted(text)
}

// SetPlaybackState records the external client's state for display.
func (s *Surface) SetPlaybackState(ps PlaybackState) {
	s.mu.Lock()
	s.playback = ps
	s.mu.Unlock()
	s.notifyUpdate()
}

// PlaybackState returns the last reported state.
func (s *Surface) PlaybackState() PlaybackState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.playback
}

// SetAudioLevel records the instantaneous output amplitude.
func (s *Surface) SetAudioLevel(level float64) {
	if level < 0 {
		level = 0
	}
	s.mu.Lock()
	s.audioLevel = level
	s.mu.Unlock()
	s.notifyUpdate()
}

// AudioLevel returns the last reported amplitude.
func (s *Surface) AudioLevel() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.audioLevel
}

// TogglePlayPause emits the play-pause signal. The surface does not
// track or validate playback state before emitting.
func (s *Surface) TogglePlayPause() {
	s.mu.RLock()
	cbs := append([]func(){}, s.onPlayPause...)
	s.mu.RUnlock()
	for _, fn := range cbs {
		fn()
	}
}

// ObserveWidth feeds a container resize into the layout manager. The
// new column count takes effect on the next render pass.
func (s *Surface) ObserveWidth(width int) {
	s.layout.Observe(width)
	if s.layout.Dirty() {
		s.notifyUpdate()
	}
}

// Columns returns the current derived column count.
func (s *Surface) Columns() int {
	return s.layout.Columns()
}

// Layers computes the background visualization from current state.
// Layout is read at render time, never snapshotted into a broadcast.
func (s *Surface) Layers() []viz.Layer {
	return s.engine.Render(s.store.Snapshot(), s.store.Muted, s.layout.Columns(), s.AudioLevel())
}

// Background renders the visualization as a paint string.
func (s *Surface) Background() string {
	return viz.Background(s.Layers())
}

func (s *Surface) deliverPrompts(snapshot []prompt.Prompt) {
	s.mu.RLock()
	cbs := append([]func([]prompt.Prompt){}, s.onPromptsChanged...)
	s.mu.RUnlock()
	for _, fn := range cbs {
		fn(snapshot)
	}
}

func (s *Surface) emitError(msg string) {
	s.mu.RLock()
	cbs := append([]func(string){}, s.onError...)
	s.mu.RUnlock()
	for _, fn := range cbs {
		fn(msg)
	}
}

// notifyUpdate tells the host that displayed state changed
func (s *Surface) notifyUpdate() {
	select {
	case s.UpdateChan <- struct{}{}:
	default:
		// Update already pending
	}
}

// Close releases the pending broadcast window and the MIDI binding.
// No notification fires after Close returns.
func (s *Surface) Close() {
	s.closeOnce.Do(func() {
		s.broadcaster.Close()
		if s.binding != nil {
			_ = s.binding.Close()
		}
	})
}

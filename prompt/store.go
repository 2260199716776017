package prompt

import (
	"errors"
	"sync"
)

// ErrUnknownPrompt is returned by ApplyEdit when the edit references an
// identity that is not in the collection. Edits never insert; an edit
// can race a removal, and dropping it is the behavior that never
// resurrects a removed prompt.
var ErrUnknownPrompt = errors.New("prompt: unknown prompt id")

// Store is the single writable source of truth for the prompt
// collection and the muted-text set.
//
// The collection is ordered: insertion order is the iteration order for
// every position-dependent computation (grid slot, visualization index).
// In-place edits never reorder, and removal keeps the order of the
// survivors.
type Store struct {
	mu      sync.RWMutex
	order   []string
	prompts map[string]Prompt
	muted   map[string]struct{}

	// onMutate fires after every prompt mutation (not mute changes).
	// Mute changes only need a render, which onRender covers.
	onMutate func()
	onRender func()
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		prompts: make(map[string]Prompt),
		muted:   make(map[string]struct{}),
	}
}

// OnMutate registers the hook fired after each prompt mutation.
func (s *Store) OnMutate(fn func()) { s.onMutate = fn }

// OnRender registers the hook fired whenever displayed state changes.
func (s *Store) OnRender(fn func()) { s.onRender = fn }

// SetPrompts replaces the whole collection. Order of the given slice
// becomes the iteration order. Duplicate ids keep the last entry's data
// but the first entry's position.
//
// Replacement comes from the host, which already holds the new state,
// so it triggers a render but no broadcast. Broadcasts are for edits
// originating inside the surface.
func (s *Store) SetPrompts(prompts []Prompt) {
	s.mu.Lock()
	s.order = s.order[:0]
	s.prompts = make(map[string]Prompt, len(prompts))
	for _, p := range prompts {
		if _, ok := s.prompts[p.ID]; !ok {
			s.order = append(s.order, p.ID)
		}
		s.prompts[p.ID] = p
	}
	s.mu.Unlock()

	s.rendered()
}

// ApplyEdit replaces the entry at the edit's identity. The identity
// must already exist; unknown ids are dropped with ErrUnknownPrompt.
func (s *Store) ApplyEdit(p Prompt) error {
	s.mu.Lock()
	if _, ok := s.prompts[p.ID]; !ok {
		s.mu.Unlock()
		return ErrUnknownPrompt
	}
	p.Weight = clampWeight(p.Weight)
	s.prompts[p.ID] = p
	s.mu.Unlock()

	s.mutated()
	return nil
}

// Add appends a prompt to the end of the collection. Adding an id that
// already exists behaves like an edit.
func (s *Store) Add(p Prompt) {
	s.mu.Lock()
	if _, ok := s.prompts[p.ID]; !ok {
		s.order = append(s.order, p.ID)
	}
	s.prompts[p.ID] = p
	s.mu.Unlock()

	s.mutated()
}

// Remove deletes a prompt by id. Survivors keep their relative order.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	if _, ok := s.prompts[id]; !ok {
		s.mu.Unlock()
		return
	}
	delete(s.prompts, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	s.mutated()
}

// MuteByText adds a text to the muted set. Membership is by text, not
// id, so prompts sharing a text share the mute. Idempotent. Triggers a
// render but no broadcast: the session only consumes prompt contents.
func (s *Store) MuteByText(text string) {
	s.mu.Lock()
	s.muted[text] = struct{}{}
	s.mu.Unlock()

	s.rendered()
}

// UnmuteText removes a text from the muted set.
func (s *Store) UnmuteText(text string) {
	s.mu.Lock()
	delete(s.muted, text)
	s.mu.Unlock()

	s.rendered()
}

// Muted reports whether a text is in the muted set.
func (s *Store) Muted(text string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.muted[text]
	return ok
}

// Get returns the prompt with the given id.
func (s *Store) Get(id string) (Prompt, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.prompts[id]
	return p, ok
}

// ByCC returns the first prompt bound to the given control-change
// number, in collection order.
func (s *Store) ByCC(cc int) (Prompt, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range s.order {
		if p := s.prompts[id]; p.CC == cc {
			return p, true
		}
	}
	return Prompt{}, false
}

// Len returns the collection size.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// Snapshot returns the prompts as a fresh slice in iteration order.
// Callers own the slice; it never aliases live state.
func (s *Store) Snapshot() []Prompt {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Prompt, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.prompts[id])
	}
	return out
}

func (s *Store) mutated() {
	if s.onMutate != nil {
		s.onMutate()
	}
	s.rendered()
}

func (s *Store) rendered() {
	if s.onRender != nil {
		s.onRender()
	}
}

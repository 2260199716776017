package surface

import (
	"context"

	"github.com/1-abhinav/PromptDJ-DeepMind/midi"
)

// ConnectMIDI requests device access and starts routing CC input to
// prompt weights. Run it in a goroutine; the surface never blocks on
// it. On failure MIDI is marked unavailable and one error signal is
// emitted; everything else keeps working.
func (s *Surface) ConnectMIDI(ctx context.Context) error {
	if s.binding == nil {
		return nil
	}

	devices, err := s.binding.RequestAccess(ctx)
	if err != nil {
		s.mu.Lock()
		s.midiAvailable = false
		s.devices = nil
		s.mu.Unlock()

		s.log.Warn("midi access failed", "err", err)
		s.emitError(err.Error())
		s.notifyUpdate()
		return err
	}

	s.mu.Lock()
	s.midiAvailable = true
	s.devices = devices
	s.mu.Unlock()

	s.log.Info("midi access granted", "devices", len(devices))
	go s.pumpCC()
	s.notifyUpdate()
	return nil
}

// pumpCC routes decoded CC events to the matching prompt's weight.
// Ends when the binding closes its event channel.
func (s *Surface) pumpCC() {
	for ev := range s.binding.Events() {
		p, ok := s.store.ByCC(ev.Controller)
		if !ok {
			continue
		}
		p.Weight = ev.Weight()
		if err := s.store.ApplyEdit(p); err != nil {
			// Prompt removed between lookup and edit; drop it.
			continue
		}
	}
}

// MIDIAvailable reports whether device access has been granted.
func (s *Surface) MIDIAvailable() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.midiAvailable
}

// Devices returns the device ids from the last successful access
// request, in discovery order.
func (s *Surface) Devices() []midi.DeviceID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]midi.DeviceID{}, s.devices...)
}

// DeviceName resolves a device id to its label, "" when unknown.
func (s *Surface) DeviceName(id midi.DeviceID) string {
	if s.binding == nil {
		return ""
	}
	return s.binding.NameOf(id)
}

// ActiveDevice returns the selected input device, "" when unset.
func (s *Surface) ActiveDevice() midi.DeviceID {
	if s.binding == nil {
		return ""
	}
	return s.binding.ActiveDevice()
}

// SetActiveDevice switches CC listening to the given device.
func (s *Surface) SetActiveDevice(id midi.DeviceID) {
	if s.binding == nil {
		return
	}
	if err := s.binding.SetActiveDevice(id); err != nil {
		s.log.Warn("device select failed", "device", id, "err", err)
		s.emitError(err.Error())
		return
	}
	s.notifyUpdate()
}

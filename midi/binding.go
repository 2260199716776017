// Package midi supplies the device binding for the control surface:
// discovery, naming, active-device selection, and decoded control-change
// input from hardware knobs.
package midi

import (
	"context"
	"errors"
)

// ErrDeviceUnavailable signals that MIDI access could not be obtained
// (no driver, no hardware, permission denied). It degrades the MIDI
// feature only; callers keep rendering.
var ErrDeviceUnavailable = errors.New("midi: device access unavailable")

// DeviceID identifies an input port. The zero value means unset.
type DeviceID string

// CCEvent is one decoded control-change message from the active device.
type CCEvent struct {
	Device     DeviceID
	Controller int   // CC number, 0-127
	Value      uint8 // raw value, 0-127
}

// Norm maps the raw CC value to [0, 1]. Hardware knobs are stepped so
// that the detents 0, 64 and 127 land exactly on 0, 0.5 and 1.
func (e CCEvent) Norm() float64 {
	switch {
	case e.Value == 0:
		return 0
	case e.Value == 64:
		return 0.5
	case e.Value == 127:
		return 1
	case e.Value < 64:
		return float64(e.Value) / 128
	default:
		return float64(e.Value-1) / 126
	}
}

// Weight maps the raw CC value to the prompt weight domain [0, 2].
func (e CCEvent) Weight() float64 { return e.Norm() * 2 }

// DeviceBinding is the capability contract the control surface depends
// on. Implementations are injected so the surface is testable without
// hardware.
type DeviceBinding interface {
	// RequestAccess enumerates input devices. It fails with an error
	// wrapping ErrDeviceUnavailable; it never panics the surface.
	RequestAccess(ctx context.Context) ([]DeviceID, error)

	// NameOf returns a human-readable label, or "" when unknown.
	NameOf(id DeviceID) string

	// ActiveDevice returns the current selection, "" when unset.
	ActiveDevice() DeviceID

	// SetActiveDevice switches CC listening to the given device.
	SetActiveDevice(id DeviceID) error

	// Events delivers decoded CC messages from the active device.
	Events() <-chan CCEvent

	// Close releases ports and stops event delivery.
	Close() error
}

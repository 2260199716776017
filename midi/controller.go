package midi

import (
	"context"
	"fmt"
	"sync"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver
)

// Controller is the gomidi-backed DeviceBinding. Port names are the
// device identifiers.
type Controller struct {
	mu       sync.RWMutex
	ports    map[DeviceID]drivers.In
	active   DeviceID
	stopFunc func()
	events   chan CCEvent
	closed   bool
}

// NewController creates an unopened controller. No ports are touched
// until RequestAccess.
func NewController() *Controller {
	return &Controller{
		ports:  make(map[DeviceID]drivers.In),
		events: make(chan CCEvent, 32),
	}
}

// RequestAccess enumerates MIDI input ports. The scan runs in its own
// goroutine with a timeout: CoreMIDI can hang the enumerating thread.
func (c *Controller) RequestAccess(ctx context.Context) ([]DeviceID, error) {
	type result struct {
		inPorts []drivers.In
		err     error
	}
	ch := make(chan result, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- result{err: fmt.Errorf("%w: %v", ErrDeviceUnavailable, r)}
			}
		}()
		ch <- result{inPorts: gomidi.GetInPorts()}
	}()

	var inPorts []drivers.In
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", ErrDeviceUnavailable, ctx.Err())
	case <-time.After(3 * time.Second):
		return nil, fmt.Errorf("%w: port scan timed out", ErrDeviceUnavailable)
	case res := <-ch:
		if res.err != nil {
			return nil, res.err
		}
		inPorts = res.inPorts
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, fmt.Errorf("%w: controller closed", ErrDeviceUnavailable)
	}
	return c.rebuildPorts(inPorts), nil
}

// rebuildPorts replaces the port index with the fresh scan, so
// unplugged devices stop resolving. Caller holds the lock.
func (c *Controller) rebuildPorts(inPorts []drivers.In) []DeviceID {
	c.ports = make(map[DeviceID]drivers.In, len(inPorts))
	ids := make([]DeviceID, 0, len(inPorts))
	for i, port := range inPorts {
		id := DeviceID(port.String())
		c.ports[id] = inPorts[i]
		ids = append(ids, id)
	}
	return ids
}

// NameOf returns the port name, which doubles as the identifier.
func (c *Controller) NameOf(id DeviceID) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if _, ok := c.ports[id]; !ok {
		return ""
	}
	return string(id)
}

// ActiveDevice returns the currently selected input, "" when unset.
func (c *Controller) ActiveDevice() DeviceID {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.active
}

// SetActiveDevice closes the previous listener and starts decoding CC
// messages from the named port.
func (c *Controller) SetActiveDevice(id DeviceID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return fmt.Errorf("%w: controller closed", ErrDeviceUnavailable)
	}

	if c.stopFunc != nil {
		c.stopFunc()
		c.stopFunc = nil
	}
	c.active = ""

	if id == "" {
		return nil
	}
	port, ok := c.ports[id]
	if !ok {
		return fmt.Errorf("%w: no such device %q", ErrDeviceUnavailable, id)
	}

	stop, err := gomidi.ListenTo(port, func(msg gomidi.Message, timestampms int32) {
		var channel, cc, value uint8
		if msg.GetControlChange(&channel, &cc, &value) {
			select {
			case c.events <- CCEvent{Device: id, Controller: int(cc), Value: value}:
			default:
			}
		}
	})
	if err != nil {
		return fmt.Errorf("open input %q: %w", id, err)
	}
	c.stopFunc = stop
	c.active = id
	return nil
}

// Events delivers decoded CC messages from the active device.
func (c *Controller) Events() <-chan CCEvent {
	return c.events
}

// Close stops listening and closes the event channel.
func (c *Controller) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	if c.stopFunc != nil {
		c.stopFunc()
		c.stopFunc = nil
	}
	c.active = ""
	close(c.events)
	return nil
}

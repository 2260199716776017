// Command midiprobe lists MIDI input ports and dumps decoded CC events
// from one of them. Useful for finding the knob-to-CC mapping of a new
// controller before binding it to prompts.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"

	"github.com/1-abhinav/PromptDJ-DeepMind/midi"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	switch os.Args[1] {
	case "list":
		listPorts()
	case "watch":
		if len(os.Args) < 3 {
			usage()
			return
		}
		watch(os.Args[2])
	default:
		usage()
	}
}

func usage() {
	fmt.Println("midiprobe")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  list         - List MIDI input ports")
	fmt.Println("  watch <idx>  - Print CC events from port <idx>")
}

func listPorts() {
	c := midi.NewController()
	defer c.Close()

	devices, err := c.RequestAccess(context.Background())
	if err != nil {
		fmt.Printf("No MIDI access: %v\n", err)
		return
	}
	if len(devices) == 0 {
		fmt.Println("No MIDI input ports found")
		return
	}
	for i, id := range devices {
		fmt.Printf("  %d: %s\n", i, c.NameOf(id))
	}
}

func watch(arg string) {
	idx, err := strconv.Atoi(arg)
	if err != nil {
		usage()
		return
	}

	c := midi.NewController()
	defer c.Close()

	devices, err := c.RequestAccess(context.Background())
	if err != nil {
		fmt.Printf("No MIDI access: %v\n", err)
		return
	}
	if idx < 0 || idx >= len(devices) {
		fmt.Printf("No port %d (have %d)\n", idx, len(devices))
		return
	}
	if err := c.SetActiveDevice(devices[idx]); err != nil {
		fmt.Printf("Open failed: %v\n", err)
		return
	}

	fmt.Printf("Watching %s (ctrl+c to stop)\n", c.NameOf(devices[idx]))

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	for {
		select {
		case <-sig:
			return
		case ev := <-c.Events():
			fmt.Printf("cc=%3d value=%3d weight=%.2f\n", ev.Controller, ev.Value, ev.Weight())
		}
	}
}

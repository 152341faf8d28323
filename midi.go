package main

import (
	"fmt"

	"gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // register MIDI driver
)

// inputBufferDepth bounds the listener-to-loop handoff. The loop drains the
// buffer every poll interval; if it ever falls behind, the newest event is
// dropped so the listener goroutine never blocks.
const inputBufferDepth = 256

// listPorts prints every available MIDI input and output to stdout.
func listPorts() {
	fmt.Println("Available inputs:")
	for _, in := range midi.GetInPorts() {
		fmt.Printf("  %s\n", in.String())
	}
	fmt.Println("Available outputs:")
	for _, out := range midi.GetOutPorts() {
		fmt.Printf("  %s\n", out.String())
	}
}

// openCCInput opens the named MIDI input and returns a buffered channel of
// its control-change events plus a stop function. Non-CC messages are
// dropped at the listener.
func openCCInput(name string) (<-chan CCEvent, func(), error) {
	in, err := midi.FindInPort(name)
	if err != nil {
		return nil, nil, fmt.Errorf("MIDI input %q not found: %w", name, err)
	}
	if err := in.Open(); err != nil {
		return nil, nil, fmt.Errorf("open input %q: %w", name, err)
	}

	events := make(chan CCEvent, inputBufferDepth)
	stop, err := midi.ListenTo(in, func(msg midi.Message, timestampms int32) {
		var ch, cc, val uint8
		if !msg.GetControlChange(&ch, &cc, &val) {
			logger.Debug("midi: non-CC message dropped", "port", name, "msg", msg.String())
			return
		}
		select {
		case events <- CCEvent{Channel: ch, Controller: cc, Value: val}:
		default:
			logger.Warn("midi: input buffer full, event dropped", "port", name, "cc", cc)
		}
	}, midi.HandleError(func(listenErr error) {
		logger.Warn("midi: listener error", "port", name, "err", listenErr)
	}))
	if err != nil {
		_ = in.Close()
		return nil, nil, fmt.Errorf("listen on %q: %w", name, err)
	}

	logger.Info("midi: input connected", "port", in.String())
	return events, func() {
		stop()
		_ = in.Close()
	}, nil
}

// openHUIOutput opens the named MIDI output and returns its send function
// plus a close function. Sends are synchronous and keep submission order.
func openHUIOutput(name string) (func(midi.Message) error, func(), error) {
	out, err := midi.FindOutPort(name)
	if err != nil {
		return nil, nil, fmt.Errorf("MIDI output %q not found: %w", name, err)
	}
	if err := out.Open(); err != nil {
		return nil, nil, fmt.Errorf("open output %q: %w", name, err)
	}
	send, err := midi.SendTo(out)
	if err != nil {
		_ = out.Close()
		return nil, nil, fmt.Errorf("sender for %q: %w", name, err)
	}
	logger.Info("midi: output connected", "port", out.String())
	return send, func() { _ = out.Close() }, nil
}

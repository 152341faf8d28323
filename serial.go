package main

import (
	"fmt"

	"go.bug.st/serial"
)

// SerialSource reads raw MIDI bytes from a fader controller attached over a
// USB-serial link and parses out control-change events. It feeds the same
// event channel shape as a MIDI port input.
type SerialSource struct {
	port   serial.Port
	events chan CCEvent
	done   chan struct{}
}

// OpenSerialSource opens the named serial device at the given baud rate and
// starts the read goroutine.
func OpenSerialSource(device string, baud int) (*SerialSource, error) {
	mode := &serial.Mode{BaudRate: baud}
	p, err := serial.Open(device, mode)
	if err != nil {
		return nil, fmt.Errorf("serial: open %s: %w", device, err)
	}
	s := &SerialSource{
		port:   p,
		events: make(chan CCEvent, inputBufferDepth),
		done:   make(chan struct{}),
	}
	go s.readLoop()
	logger.Info("serial: port opened", "device", device, "baud", baud)
	return s, nil
}

// Events returns the channel of parsed control-change events.
func (s *SerialSource) Events() <-chan CCEvent { return s.events }

// Close closes the underlying serial port, which also ends the read loop.
func (s *SerialSource) Close() {
	logger.Info("serial: closing port")
	close(s.done)
	_ = s.port.Close()
}

func (s *SerialSource) readLoop() {
	var parser ccParser
	buf := make([]byte, 64)
	for {
		n, err := s.port.Read(buf)
		if err != nil {
			select {
			case <-s.done:
			default:
				logger.Error("serial: read error", "err", err)
			}
			return
		}
		for _, b := range buf[:n] {
			ev, ok := parser.Feed(b)
			if !ok {
				continue
			}
			select {
			case s.events <- ev:
			default:
				logger.Warn("serial: input buffer full, event dropped", "cc", ev.Controller)
			}
		}
	}
}

// ccParser extracts control-change events from a raw MIDI byte stream. It
// tracks running status and consumes the data bytes of other voice messages
// so the stream stays aligned; everything that is not a CC is discarded.
type ccParser struct {
	status byte
	data   [2]byte
	have   int
	want   int
}

// Feed consumes one byte and reports a complete control-change event when
// one is finished.
func (p *ccParser) Feed(b byte) (CCEvent, bool) {
	switch {
	case b >= 0xF8:
		// System realtime may appear mid-message and does not disturb it.
		return CCEvent{}, false
	case b >= 0xF0:
		// System common cancels running status.
		p.status = 0
		p.have = 0
		return CCEvent{}, false
	case b >= 0x80:
		p.status = b
		p.have = 0
		p.want = voiceDataLen(b)
		return CCEvent{}, false
	}

	if p.status == 0 {
		return CCEvent{}, false // stray data byte
	}
	p.data[p.have] = b
	p.have++
	if p.have < p.want {
		return CCEvent{}, false
	}

	// Message complete; running status stays armed for the next data bytes.
	p.have = 0
	if p.status&0xF0 != 0xB0 {
		return CCEvent{}, false
	}
	return CCEvent{
		Channel:    p.status & 0x0F,
		Controller: p.data[0],
		Value:      p.data[1],
	}, true
}

// voiceDataLen returns the number of data bytes for a voice status byte.
func voiceDataLen(status byte) int {
	switch status & 0xF0 {
	case 0xC0, 0xD0: // program change, channel pressure
		return 1
	default:
		return 2
	}
}

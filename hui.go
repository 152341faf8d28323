package main

import (
	"math"

	"gitlab.com/gomidi/midi/v2"
)

// HUI fader/button wire format (all CC on MIDI channel 1, status 0xB0):
//   touch fader z:   B0 0F 0z ; B0 2F 40
//   release fader z: B0 0F 0z ; B0 2F 00
//   move fader z:    B0 0z hi ; B0 2z lo   (14-bit position, hi/lo 7 bits each)
//   press button:    B0 0C zz ; B0 2C 4p ; B0 2C 0p
// The zone-select message establishes addressing context for the message(s)
// that follow it, so ordering within each group is fixed.

const (
	NumZones = 8

	huiChannel = 0 // MIDI channel 1

	huiFaderSelect = 0x0F
	huiFaderTouch  = 0x2F
	huiTouchOn     = 0x40
	huiTouchOff    = 0x00

	huiFaderHiBase = 0x00
	huiFaderLoBase = 0x20

	huiButtonSelect = 0x0C
	huiButtonPort   = 0x2C
	huiPortOn       = 0x40
)

// HUI "channel selection" zone and its navigation ports.
const (
	huiNavZone = 0x0A

	NavPortChanLeft  = 0
	NavPortBankLeft  = 1
	NavPortChanRight = 2
	NavPortBankRight = 3
)

// scale7to14 expands a 7-bit CC value to the 14-bit HUI fader range.
// Out-of-range input is clamped, never rejected.
func scale7to14(v int) int {
	if v < 0 {
		v = 0
	}
	if v > 127 {
		v = 127
	}
	return int(math.Round(float64(v) * 16383 / 127))
}

func huiCC(controller, value uint8) midi.Message {
	return midi.ControlChange(huiChannel, controller&0x7F, value&0x7F)
}

// huiTouch builds the two-message touch sequence for a fader zone.
func huiTouch(zone int) []midi.Message {
	return []midi.Message{
		huiCC(huiFaderSelect, uint8(zone)),
		huiCC(huiFaderTouch, huiTouchOn),
	}
}

// huiRelease builds the two-message release sequence for a fader zone.
func huiRelease(zone int) []midi.Message {
	return []midi.Message{
		huiCC(huiFaderSelect, uint8(zone)),
		huiCC(huiFaderTouch, huiTouchOff),
	}
}

// huiMove builds the two-message 14-bit fader move for a zone. The value is
// clamped to [0,16383] and split into high/low 7-bit bytes.
func huiMove(zone, value14 int) []midi.Message {
	if value14 < 0 {
		value14 = 0
	}
	if value14 > 16383 {
		value14 = 16383
	}
	hi := uint8(value14>>7) & 0x7F
	lo := uint8(value14) & 0x7F
	return []midi.Message{
		huiCC(uint8(huiFaderHiBase+zone), hi),
		huiCC(uint8(huiFaderLoBase+zone), lo),
	}
}

// huiButtonPress builds a complete momentary press+release pulse for a HUI
// button: zone select, port on, port off. There is no separate hold state.
func huiButtonPress(zoneSelect, port int) []midi.Message {
	p := uint8(port) & 0x07
	return []midi.Message{
		huiCC(huiButtonSelect, uint8(zoneSelect)),
		huiCC(huiButtonPort, huiPortOn|p),
		huiCC(huiButtonPort, p),
	}
}

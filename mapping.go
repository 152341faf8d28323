package main

import "fmt"

// CCEvent is one incoming control-change event from a hardware controller.
type CCEvent struct {
	Channel    uint8
	Controller uint8
	Value      uint8
}

// ZoneMapper resolves an incoming CC event to a HUI fader zone (0-7).
// The bool result is false when the event has no mapping; such events are
// silently dropped, never treated as errors.
type ZoneMapper interface {
	Zone(ev CCEvent) (int, bool)
}

// ControllerZones maps controller numbers to zones regardless of the event's
// MIDI channel. With restrictChannels set, events outside channels 0-7 are
// dropped before the lookup.
type ControllerZones struct {
	zones            map[uint8]int
	restrictChannels bool
}

func NewControllerZones(zones map[uint8]int, restrictChannels bool) (ControllerZones, error) {
	if err := validateZoneTable(zones); err != nil {
		return ControllerZones{}, err
	}
	return ControllerZones{zones: zones, restrictChannels: restrictChannels}, nil
}

func (m ControllerZones) Zone(ev CCEvent) (int, bool) {
	if m.restrictChannels && ev.Channel > 7 {
		return 0, false
	}
	z, ok := m.zones[ev.Controller]
	return z, ok
}

// ChannelZones treats the event's MIDI channel (0-7) as the zone and accepts
// the event only when its controller number equals the controller configured
// for that channel. A mismatch is silently dropped.
type ChannelZones struct {
	cc [NumZones]uint8
}

func NewChannelZones(cc [NumZones]uint8) ChannelZones {
	return ChannelZones{cc: cc}
}

func (m ChannelZones) Zone(ev CCEvent) (int, bool) {
	if ev.Channel >= NumZones {
		return 0, false
	}
	if ev.Controller != m.cc[ev.Channel] {
		return 0, false
	}
	return int(ev.Channel), true
}

// validateZoneTable checks that every zone 0-7 has exactly one source CC.
func validateZoneTable(zones map[uint8]int) error {
	var seen [NumZones]int
	for cc, z := range zones {
		if z < 0 || z >= NumZones {
			return fmt.Errorf("cc %d maps to zone %d, want 0-%d", cc, z, NumZones-1)
		}
		seen[z]++
	}
	for z, n := range seen {
		if n != 1 {
			return fmt.Errorf("zone %d has %d source CCs, want exactly 1", z, n)
		}
	}
	return nil
}

// NavButton is one of the four HUI navigation buttons, addressed by the
// zone-select value and the port within that zone.
type NavButton struct {
	Zone int
	Port int
	Name string
}

// NavMap maps a secondary controller's CC numbers to navigation buttons.
type NavMap map[uint8]NavButton

// -------------------- Default tables --------------------

// DEFAULT_CC_TO_ZONE: controller-keyed fader mapping.
// 1=CC11 (expr), 2=CC1 (mod), 3=CC2 (breath), 4=CC21, 5=CC5 (porta rate),
// 6=CC3, 7=CC9, 8=CC7 (volume).
var DEFAULT_CC_TO_ZONE = map[uint8]int{
	11: 0,
	1:  1,
	2:  2,
	21: 3,
	5:  4,
	3:  5,
	9:  6,
	7:  7,
}

// DEFAULT_CHANNEL_CC: channel-keyed fader mapping, one expected CC per
// channel (channel 0 -> zone 0, ... channel 7 -> zone 7).
var DEFAULT_CHANNEL_CC = [NumZones]uint8{1, 11, 2, 21, 5, 3, 9, 7}

// Default navigation CCs (chosen for hardware that sends 0/127 buttons).
const (
	DEFAULT_BANK_RIGHT_CC = 75
	DEFAULT_BANK_LEFT_CC  = 76
	DEFAULT_CHAN_RIGHT_CC = 77
	DEFAULT_CHAN_LEFT_CC  = 78
)

// navButtonsByName names the four logical buttons for config files.
var navButtonsByName = map[string]NavButton{
	"bank-right": {Zone: huiNavZone, Port: NavPortBankRight, Name: "bank-right"},
	"bank-left":  {Zone: huiNavZone, Port: NavPortBankLeft, Name: "bank-left"},
	"chan-right": {Zone: huiNavZone, Port: NavPortChanRight, Name: "chan-right"},
	"chan-left":  {Zone: huiNavZone, Port: NavPortChanLeft, Name: "chan-left"},
}

var DEFAULT_NAV_MAP = NavMap{
	DEFAULT_BANK_RIGHT_CC: navButtonsByName["bank-right"],
	DEFAULT_BANK_LEFT_CC:  navButtonsByName["bank-left"],
	DEFAULT_CHAN_RIGHT_CC: navButtonsByName["chan-right"],
	DEFAULT_CHAN_LEFT_CC:  navButtonsByName["chan-left"],
}

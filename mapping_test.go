package main

import "testing"

func TestControllerZonesLookup(t *testing.T) {
	m, err := NewControllerZones(DEFAULT_CC_TO_ZONE, false)
	if err != nil {
		t.Fatalf("NewControllerZones: %v", err)
	}

	z, ok := m.Zone(CCEvent{Channel: 5, Controller: 11, Value: 64})
	if !ok || z != 0 {
		t.Errorf("CC11 -> (%d,%v), want (0,true)", z, ok)
	}
	z, ok = m.Zone(CCEvent{Controller: 7})
	if !ok || z != 7 {
		t.Errorf("CC7 -> (%d,%v), want (7,true)", z, ok)
	}
	if _, ok := m.Zone(CCEvent{Controller: 64}); ok {
		t.Error("unmapped CC64 accepted")
	}
}

func TestControllerZonesChannelRestriction(t *testing.T) {
	m, err := NewControllerZones(DEFAULT_CC_TO_ZONE, true)
	if err != nil {
		t.Fatalf("NewControllerZones: %v", err)
	}

	if _, ok := m.Zone(CCEvent{Channel: 9, Controller: 11}); ok {
		t.Error("channel 9 accepted with restriction on")
	}
	if _, ok := m.Zone(CCEvent{Channel: 7, Controller: 11}); !ok {
		t.Error("channel 7 rejected with restriction on")
	}
}

func TestChannelZonesLookup(t *testing.T) {
	m := NewChannelZones(DEFAULT_CHANNEL_CC)

	// Channel 1 expects CC11 and maps to zone 1.
	z, ok := m.Zone(CCEvent{Channel: 1, Controller: 11})
	if !ok || z != 1 {
		t.Errorf("ch1/CC11 -> (%d,%v), want (1,true)", z, ok)
	}
	// Controller mismatch on a valid channel is silently dropped.
	if _, ok := m.Zone(CCEvent{Channel: 1, Controller: 7}); ok {
		t.Error("ch1/CC7 accepted despite mismatch")
	}
	// Channels above 7 have no zone.
	if _, ok := m.Zone(CCEvent{Channel: 8, Controller: 11}); ok {
		t.Error("channel 8 accepted")
	}
}

func TestZoneTableValidation(t *testing.T) {
	// Duplicate zone target.
	_, err := NewControllerZones(map[uint8]int{1: 0, 2: 0, 3: 1, 4: 2, 5: 3, 6: 4, 7: 5, 8: 6}, false)
	if err == nil {
		t.Error("duplicate zone accepted")
	}
	// Missing zone.
	_, err = NewControllerZones(map[uint8]int{1: 0}, false)
	if err == nil {
		t.Error("incomplete table accepted")
	}
	// Zone out of range.
	_, err = NewControllerZones(map[uint8]int{1: 0, 2: 1, 3: 2, 4: 3, 5: 4, 6: 5, 7: 6, 8: 8}, false)
	if err == nil {
		t.Error("zone 8 accepted")
	}
}

func TestDefaultNavMap(t *testing.T) {
	btn, ok := DEFAULT_NAV_MAP[DEFAULT_BANK_RIGHT_CC]
	if !ok {
		t.Fatal("bank-right CC missing from default nav map")
	}
	if btn.Zone != huiNavZone || btn.Port != NavPortBankRight {
		t.Errorf("bank-right = zone %#x port %d, want zone %#x port %d",
			btn.Zone, btn.Port, huiNavZone, NavPortBankRight)
	}
}

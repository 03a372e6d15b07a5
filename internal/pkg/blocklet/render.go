package blocklet

import (
	"github.com/damonto/ofono-i3blocklet/internal/pkg/ofono"
)

const (
	GlyphPoweredOff = "󰥍"
	GlyphLocked     = "󰒨"
	GlyphNoSignal   = "󰣼"
	GlyphData       = "󱘖"

	GlyphSignalExcellent = "󰣺" // > 80
	GlyphSignalGood      = "󰣸" // > 60
	GlyphSignalOk        = "󰣶" // > 40
	GlyphSignalWeak      = "󰣴" // > 20
	GlyphSignalNone      = "󰣾" // <= 20
)

type technology struct {
	label      string
	generation string
}

var technologies = map[string]technology{
	"gsm":  {label: "2G", generation: "2G"},
	"edge": {label: "2.5", generation: "2G"},
	"umts": {label: "3G", generation: "3G"},
	"hspa": {label: "3.5", generation: "3G"},
}

// Render returns the status text for m. The first matching condition wins:
// no modem, powered off, SIM locked, registered on a known network, offline.
func Render(m *ofono.Modem) string {
	switch {
	case !m.Present():
		return ""
	case !m.Powered:
		return GlyphPoweredOff
	case m.PinLocked:
		return GlyphLocked
	case m.Online && m.Technology != "":
		label := technologyLabel(m.Technology, m.GprsActive)
		if label == "" {
			return signalGlyph(m.Strength)
		}
		return label + " " + signalGlyph(m.Strength)
	case !m.Online:
		return GlyphNoSignal
	}
	// Online without a technology yet.
	return ""
}

func technologyLabel(tech string, gprsActive bool) string {
	t, ok := technologies[tech]
	if !ok {
		return ""
	}
	if gprsActive {
		return GlyphData + " " + t.generation
	}
	return t.label
}

func signalGlyph(strength uint8) string {
	switch {
	case strength > 80:
		return GlyphSignalExcellent
	case strength > 60:
		return GlyphSignalGood
	case strength > 40:
		return GlyphSignalOk
	case strength > 20:
		return GlyphSignalWeak
	default:
		return GlyphSignalNone
	}
}

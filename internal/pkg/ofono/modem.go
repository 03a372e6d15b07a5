package ofono

import (
	"github.com/godbus/dbus/v5"
	"github.com/samber/lo"
)

// Modem is the last known state of the tracked oFono modem. An empty Path
// means no modem is present; the remaining fields keep their last values.
type Modem struct {
	Path dbus.ObjectPath

	Online  bool
	Powered bool

	HasConnectionManager   bool
	HasNetworkRegistration bool
	HasSimManager          bool

	PinLocked  bool
	GprsActive bool
	Technology string
	Status     string
	Strength   uint8
}

func (m *Modem) Present() bool {
	return m.Path != ""
}

func (m *Modem) Reset() {
	*m = Modem{}
}

// ContextPath is the object path of the primary connection context.
func (m *Modem) ContextPath() dbus.ObjectPath {
	return m.Path + ContextSuffix
}

// ApplyModemProperties reads Powered, Online and Interfaces from a modem
// property map. Interfaces always replaces the full set of Has* flags.
func (m *Modem) ApplyModemProperties(props map[string]dbus.Variant) {
	for key, value := range props {
		switch ParseProperty(key) {
		case PropertyPowered:
			store(value, &m.Powered)
		case PropertyOnline:
			store(value, &m.Online)
		case PropertyInterfaces:
			var interfaces []string
			if !store(value, &interfaces) {
				continue
			}
			m.HasConnectionManager = lo.Contains(interfaces, ConnectionManagerInterface)
			m.HasNetworkRegistration = lo.Contains(interfaces, NetworkRegistrationInterface)
			m.HasSimManager = lo.Contains(interfaces, SimManagerInterface)
		}
	}
}

func (m *Modem) ApplySimProperties(props map[string]dbus.Variant) {
	for key, value := range props {
		if ParseProperty(key) == PropertyPinRequired {
			m.setPinRequired(value)
		}
	}
}

func (m *Modem) ApplyNetworkRegistrationProperties(props map[string]dbus.Variant) {
	for key, value := range props {
		switch ParseProperty(key) {
		case PropertyStrength:
			store(value, &m.Strength)
		case PropertyTechnology:
			store(value, &m.Technology)
		case PropertyStatus:
			store(value, &m.Status)
		}
	}
}

func (m *Modem) ApplyContextProperties(props map[string]dbus.Variant) {
	for key, value := range props {
		if ParseProperty(key) == PropertyActive {
			store(value, &m.GprsActive)
		}
	}
}

// ApplyPropertyChange applies a single PropertyChanged notification and
// reports whether the key is one the status line depends on.
func (m *Modem) ApplyPropertyChange(key string, value dbus.Variant) bool {
	switch ParseProperty(key) {
	case PropertyTechnology:
		store(value, &m.Technology)
	case PropertyStrength:
		store(value, &m.Strength)
	case PropertyActive:
		store(value, &m.GprsActive)
	case PropertyPinRequired:
		m.setPinRequired(value)
	case PropertyPowered:
		store(value, &m.Powered)
	case PropertyOnline:
		store(value, &m.Online)
	default:
		return false
	}
	return true
}

func (m *Modem) setPinRequired(value dbus.Variant) {
	var pin string
	if store(value, &pin) {
		m.PinLocked = pin != PinRequiredNone
	}
}

// store copies the variant into dest, leaving dest untouched when the
// variant holds a different type.
func store[T any](value dbus.Variant, dest *T) bool {
	v, ok := value.Value().(T)
	if !ok {
		return false
	}
	*dest = v
	return true
}

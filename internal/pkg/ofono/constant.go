package ofono

import (
	"strings"

	"github.com/godbus/dbus/v5"
)

const ManagerPath dbus.ObjectPath = "/"

const (
	Service         = "org.ofono"
	ContextSuffix   = "/context1"
	PinRequiredNone = "none"

	ManagerInterface            = Service + ".Manager"
	ModemInterface               = Service + ".Modem"
	SimManagerInterface          = Service + ".SimManager"
	NetworkRegistrationInterface = Service + ".NetworkRegistration"
	ConnectionManagerInterface   = Service + ".ConnectionManager"
	ConnectionContextInterface   = Service + ".ConnectionContext"

	busName      = "org.freedesktop.DBus"
	busInterface = "org.freedesktop.DBus"
)

type Interface int

const (
	InterfaceUnknown             Interface = iota // Not an interface this tool listens to.
	InterfaceBus                                  // org.freedesktop.DBus
	InterfaceManager                              // org.ofono.Manager
	InterfaceModem                                // org.ofono.Modem
	InterfaceSimManager                           // org.ofono.SimManager
	InterfaceNetworkRegistration                  // org.ofono.NetworkRegistration
	InterfaceConnectionManager                    // org.ofono.ConnectionManager
	InterfaceConnectionContext                    // org.ofono.ConnectionContext
)

var interfaceNames = map[string]Interface{
	busInterface:                 InterfaceBus,
	ManagerInterface:             InterfaceManager,
	ModemInterface:               InterfaceModem,
	SimManagerInterface:          InterfaceSimManager,
	NetworkRegistrationInterface: InterfaceNetworkRegistration,
	ConnectionManagerInterface:   InterfaceConnectionManager,
	ConnectionContextInterface:   InterfaceConnectionContext,
}

func ParseInterface(name string) Interface {
	if i, ok := interfaceNames[name]; ok {
		return i
	}
	return InterfaceUnknown
}

type Member int

const (
	MemberUnknown          Member = iota // Any other method or signal.
	MemberPropertyChanged                // Single property change on an oFono object.
	MemberModemAdded                     // A modem was registered with the manager.
	MemberModemRemoved                   // A modem was unregistered from the manager.
	MemberNameOwnerChanged               // Bus name ownership changed.
	MemberGetModems                      // Manager.GetModems reply.
	MemberGetProperties                  // <Interface>.GetProperties reply.
)

var memberNames = map[string]Member{
	"PropertyChanged":  MemberPropertyChanged,
	"ModemAdded":       MemberModemAdded,
	"ModemRemoved":     MemberModemRemoved,
	"NameOwnerChanged": MemberNameOwnerChanged,
	"GetModems":        MemberGetModems,
	"GetProperties":    MemberGetProperties,
}

func ParseMember(name string) Member {
	if m, ok := memberNames[name]; ok {
		return m
	}
	return MemberUnknown
}

// SplitName splits a fully qualified "interface.member" name, as carried by
// dbus.Signal.Name and dbus.Call.Method, into its decoded parts.
func SplitName(name string) (Interface, Member) {
	idx := strings.LastIndex(name, ".")
	if idx == -1 {
		return InterfaceUnknown, ParseMember(name)
	}
	return ParseInterface(name[:idx]), ParseMember(name[idx+1:])
}

type Property int

const (
	PropertyUnknown     Property = iota // Ignored.
	PropertyPowered                     // Modem: b
	PropertyOnline                      // Modem: b
	PropertyInterfaces                  // Modem: as
	PropertyPinRequired                 // SimManager: s
	PropertyStrength                    // NetworkRegistration: y
	PropertyTechnology                  // NetworkRegistration: s
	PropertyStatus                      // NetworkRegistration: s
	PropertyActive                      // ConnectionContext: b
)

var propertyNames = map[string]Property{
	"Powered":     PropertyPowered,
	"Online":      PropertyOnline,
	"Interfaces":  PropertyInterfaces,
	"PinRequired": PropertyPinRequired,
	"Strength":    PropertyStrength,
	"Technology":  PropertyTechnology,
	"Status":      PropertyStatus,
	"Active":      PropertyActive,
}

func ParseProperty(key string) Property {
	if p, ok := propertyNames[key]; ok {
		return p
	}
	return PropertyUnknown
}

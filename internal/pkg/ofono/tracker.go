package ofono

import (
	"context"
	"log/slog"

	"github.com/godbus/dbus/v5"
)

// Printer outputs the status of the tracked modem.
type Printer interface {
	Print(m *Modem) error
}

type Tracker struct {
	bus     Bus
	printer Printer
	modem   *Modem
	replies chan *dbus.Call
	signals chan *dbus.Signal
}

type modemEntry struct {
	Path       dbus.ObjectPath
	Properties map[string]dbus.Variant
}

func NewTracker(bus Bus, printer Printer) *Tracker {
	return &Tracker{
		bus:     bus,
		printer: printer,
		modem:   new(Modem),
		replies: make(chan *dbus.Call, 8),
		signals: make(chan *dbus.Signal, 16),
	}
}

// Run dispatches replies and signals until ctx is done or the bus
// connection is lost. Both cases are a clean shutdown.
func (t *Tracker) Run(ctx context.Context) error {
	t.bus.Signal(t.signals)
	if err := t.bus.Subscribe(Service); err != nil {
		return err
	}
	present, err := t.bus.WatchService(Service)
	if err != nil {
		return err
	}
	if present {
		t.serviceAppeared()
	}

	for {
		select {
		case <-ctx.Done():
			slog.Info("terminate")
			return nil
		case call := <-t.replies:
			t.handleReply(call)
		case sig, ok := <-t.signals:
			if !ok {
				slog.Info("bus disconnected")
				return nil
			}
			t.handleSignal(sig)
		}
	}
}

func (t *Tracker) serviceAppeared() {
	slog.Info("service appeared", "name", Service)
	t.modem.Reset()
	t.bus.Call(ManagerPath, ManagerInterface+".GetModems", t.replies)
}

func (t *Tracker) serviceDisappeared() {
	slog.Info("service disappeared", "name", Service)
}

func (t *Tracker) handleReply(call *dbus.Call) {
	if call.Err != nil {
		slog.Debug("call failed", "path", call.Path, "method", call.Method, "error", call.Err)
		return
	}
	iface, member := SplitName(call.Method)
	switch member {
	case MemberGetModems:
		t.handleModems(call)
	case MemberGetProperties:
		t.handleProperties(iface, call)
	}
}

func (t *Tracker) handleModems(call *dbus.Call) {
	var modems []modemEntry
	if err := call.Store(&modems); err != nil {
		slog.Debug("unexpected reply", "method", call.Method, "error", err)
		return
	}
	// Only the first modem is tracked.
	if len(modems) == 0 {
		t.modem.Path = ""
	} else {
		t.modem.Path = modems[0].Path
		t.modem.ApplyModemProperties(modems[0].Properties)
		t.fetchProperties()
	}
	t.render()
}

func (t *Tracker) fetchProperties() {
	if t.modem.HasSimManager {
		t.bus.Call(t.modem.Path, SimManagerInterface+".GetProperties", t.replies)
	}
	if t.modem.HasNetworkRegistration {
		t.bus.Call(t.modem.Path, NetworkRegistrationInterface+".GetProperties", t.replies)
	}
	if t.modem.HasConnectionManager {
		t.bus.Call(t.modem.ContextPath(), ConnectionContextInterface+".GetProperties", t.replies)
	}
}

func (t *Tracker) handleProperties(iface Interface, call *dbus.Call) {
	var props map[string]dbus.Variant
	if err := call.Store(&props); err != nil {
		slog.Debug("unexpected reply", "path", call.Path, "method", call.Method, "error", err)
		return
	}
	switch iface {
	case InterfaceSimManager:
		t.modem.ApplySimProperties(props)
	case InterfaceNetworkRegistration:
		t.modem.ApplyNetworkRegistrationProperties(props)
	case InterfaceConnectionContext:
		t.modem.ApplyContextProperties(props)
	default:
		return
	}
	t.render()
}

func (t *Tracker) handleSignal(sig *dbus.Signal) {
	iface, member := SplitName(sig.Name)
	switch iface {
	case InterfaceBus:
		if member == MemberNameOwnerChanged {
			t.handleNameOwnerChanged(sig)
		}
	case InterfaceManager:
		t.handleManagerSignal(member, sig)
	case InterfaceModem, InterfaceSimManager, InterfaceNetworkRegistration, InterfaceConnectionContext:
		if member != MemberPropertyChanged {
			return
		}
		var key string
		var value dbus.Variant
		if err := dbus.Store(sig.Body, &key, &value); err != nil {
			slog.Debug("unexpected signal", "name", sig.Name, "error", err)
			return
		}
		if t.modem.ApplyPropertyChange(key, value) {
			t.render()
		}
	}
}

func (t *Tracker) handleManagerSignal(member Member, sig *dbus.Signal) {
	switch member {
	case MemberModemAdded:
		var entry modemEntry
		if err := dbus.Store(sig.Body, &entry.Path, &entry.Properties); err != nil {
			slog.Debug("unexpected signal", "name", sig.Name, "error", err)
			return
		}
		t.modem.Path = entry.Path
		t.modem.ApplyModemProperties(entry.Properties)
	case MemberModemRemoved:
		// The remaining fields are kept.
		t.modem.Path = ""
	default:
		return
	}
	t.render()
}

func (t *Tracker) handleNameOwnerChanged(sig *dbus.Signal) {
	var name, oldOwner, newOwner string
	if err := dbus.Store(sig.Body, &name, &oldOwner, &newOwner); err != nil || name != Service {
		return
	}
	if newOwner != "" {
		t.serviceAppeared()
	} else {
		t.serviceDisappeared()
	}
}

func (t *Tracker) render() {
	if err := t.printer.Print(t.modem); err != nil {
		slog.Error("failed to print status", "error", err)
	}
}

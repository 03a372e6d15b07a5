package ofono

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/godbus/dbus/v5"
)

var ErrUnknownBus = errors.New("unknown bus")

// Bus is the part of a D-Bus connection the Tracker depends on.
type Bus interface {
	// Call invokes method on the oFono object at path. The reply, or the
	// error, is delivered on ch.
	Call(path dbus.ObjectPath, method string, ch chan *dbus.Call)
	// Signal registers ch for every signal matched on the connection. The
	// channel is closed when the connection goes away.
	Signal(ch chan<- *dbus.Signal)
	// Subscribe matches every signal sent by the given service.
	Subscribe(service string) error
	// WatchService matches ownership changes of the given name and reports
	// whether it currently has an owner.
	WatchService(name string) (bool, error)
	Close() error
}

type Conn struct {
	conn *dbus.Conn
}

func Dial(bus string) (*Conn, error) {
	conn, err := busPrivate(bus)
	if err != nil {
		return nil, err
	}
	if err := conn.Auth(nil); err != nil {
		conn.Close()
		return nil, err
	}
	if err := conn.Hello(); err != nil {
		conn.Close()
		return nil, err
	}
	slog.Info("ready", "bus", bus, "name", conn.Names()[0])
	return &Conn{conn: conn}, nil
}

func busPrivate(bus string) (*dbus.Conn, error) {
	switch bus {
	case "system":
		return dbus.SystemBusPrivate()
	case "session":
		return dbus.SessionBusPrivate()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBus, bus)
	}
}

func (c *Conn) Call(path dbus.ObjectPath, method string, ch chan *dbus.Call) {
	slog.Debug("calling method", "path", path, "method", method)
	c.conn.Object(Service, path).Go(method, 0, ch)
}

func (c *Conn) Signal(ch chan<- *dbus.Signal) {
	c.conn.Signal(ch)
}

func (c *Conn) Subscribe(service string) error {
	return c.conn.AddMatchSignal(dbus.WithMatchSender(service))
}

func (c *Conn) WatchService(name string) (bool, error) {
	if err := c.conn.AddMatchSignal(
		dbus.WithMatchSender(busName),
		dbus.WithMatchInterface(busInterface),
		dbus.WithMatchMember("NameOwnerChanged"),
		dbus.WithMatchOption("arg0", name),
	); err != nil {
		return false, err
	}
	var hasOwner bool
	if err := c.conn.BusObject().Call(busInterface+".NameHasOwner", 0, name).Store(&hasOwner); err != nil {
		return false, err
	}
	return hasOwner, nil
}

func (c *Conn) Close() error {
	return c.conn.Close()
}

package dbus

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/godbus/dbus/v5"

	"github.com/jmylchreest/rhythmui/internal/config"
	"github.com/jmylchreest/rhythmui/internal/model"
)

// defaultAction is the action key desktops invoke when a notification is clicked.
const defaultAction = "default"

// caller is the subset of dbus.BusObject used to talk to the service.
type caller interface {
	Call(method string, flags dbus.Flags, args ...interface{}) *dbus.Call
}

// Forwarder sends notifications to the desktop notification service.
type Forwarder struct {
	conn    *dbus.Conn
	obj     caller
	config  *config.DesktopConfig
	logger  *slog.Logger
	signals chan *dbus.Signal
	events  chan Event

	mu       sync.Mutex
	serverID map[string]uint32 // Overlay ID -> server ID
	overlay  map[uint32]string // Server ID -> overlay ID
	stopped  bool
}

// NewForwarder connects to the session bus and subscribes to the service's
// ActionInvoked and NotificationClosed signals.
func NewForwarder(cfg *config.DesktopConfig, logger *slog.Logger) (*Forwarder, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}

	for _, member := range []string{"ActionInvoked", "NotificationClosed"} {
		if err := conn.AddMatchSignal(
			dbus.WithMatchObjectPath(DBusPath),
			dbus.WithMatchInterface(DBusInterface),
			dbus.WithMatchMember(member),
		); err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to add match rule for %s: %w", member, err)
		}
	}

	f := newForwarder(conn.Object(DBusBusName, DBusPath), cfg, logger)
	f.conn = conn
	f.signals = make(chan *dbus.Signal, 16)
	conn.Signal(f.signals)
	go f.processSignals()

	f.logger.Info("forwarding toasts to desktop notifications", "app_name", cfg.AppName)
	return f, nil
}

func newForwarder(obj caller, cfg *config.DesktopConfig, logger *slog.Logger) *Forwarder {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg == nil {
		cfg = &config.DefaultConfig().Desktop
	}
	return &Forwarder{
		obj:      obj,
		config:   cfg,
		logger:   logger,
		events:   make(chan Event, 16),
		serverID: make(map[string]uint32),
		overlay:  make(map[uint32]string),
	}
}

// Events returns desktop activations and closes of forwarded notifications.
func (f *Forwarder) Events() <-chan Event {
	return f.events
}

// Forward sends n to the notification service and returns the server id.
func (f *Forwarder) Forward(n *model.Notification) (uint32, error) {
	hints := map[string]dbus.Variant{
		"urgency": dbus.MakeVariant(UrgencyFor(n.Kind)),
	}
	if n.Kind == model.KindBackground {
		hints["transient"] = dbus.MakeVariant(true)
	}
	if n.IsProgress() {
		hints["value"] = dbus.MakeVariant(int32(n.Progress.Value * 100))
	}

	var actions []string
	if n.Activated != nil {
		actions = []string{defaultAction, "Open"}
	}

	expire := int32(-1)
	if ms := f.config.ExpireTimeout.Milliseconds(); ms > 0 {
		expire = int32(ms)
	}

	var id uint32
	call := f.obj.Call(DBusInterface+".Notify", 0,
		f.config.AppName,
		uint32(0),
		"",
		n.Kind.String(),
		n.Text,
		actions,
		hints,
		expire,
	)
	if err := call.Store(&id); err != nil {
		return 0, fmt.Errorf("failed to send notification: %w", err)
	}

	f.mu.Lock()
	f.serverID[n.ID] = id
	f.overlay[id] = n.ID
	f.mu.Unlock()

	f.logger.Debug("forwarded notification", "id", n.ID, "server_id", id, "kind", n.Kind.String())
	return id, nil
}

// Close withdraws a forwarded notification. Notifications that were never
// forwarded are ignored.
func (f *Forwarder) Close(n *model.Notification) error {
	f.mu.Lock()
	id, ok := f.serverID[n.ID]
	if ok {
		delete(f.serverID, n.ID)
		delete(f.overlay, id)
	}
	f.mu.Unlock()

	if !ok {
		return nil
	}

	if call := f.obj.Call(DBusInterface+".CloseNotification", 0, id); call.Err != nil {
		return fmt.Errorf("failed to close notification %d: %w", id, call.Err)
	}
	return nil
}

// Stop disconnects from the bus and closes the event channel.
func (f *Forwarder) Stop() error {
	f.mu.Lock()
	if f.stopped {
		f.mu.Unlock()
		return nil
	}
	f.stopped = true
	f.mu.Unlock()

	if f.conn == nil {
		close(f.events)
		return nil
	}
	f.conn.RemoveSignal(f.signals)
	close(f.signals)
	return f.conn.Close()
}

func (f *Forwarder) processSignals() {
	for sig := range f.signals {
		f.handleSignal(sig)
	}
	close(f.events)
}

// handleSignal translates a service signal into an Event for a notification
// this forwarder sent. Signals for other applications are dropped.
func (f *Forwarder) handleSignal(sig *dbus.Signal) {
	if sig == nil || len(sig.Body) < 2 {
		return
	}
	id, ok := sig.Body[0].(uint32)
	if !ok {
		return
	}

	f.mu.Lock()
	overlayID, known := f.overlay[id]
	var ev Event
	switch sig.Name {
	case DBusInterface + ".ActionInvoked":
		key, _ := sig.Body[1].(string)
		if key != defaultAction {
			known = false
		}
		ev = Event{Type: EventActivated, NotificationID: overlayID, ServerID: id}
	case DBusInterface + ".NotificationClosed":
		reason, _ := sig.Body[1].(uint32)
		ev = Event{Type: EventClosed, NotificationID: overlayID, ServerID: id, Reason: CloseReason(reason)}
		if known {
			delete(f.overlay, id)
			delete(f.serverID, overlayID)
		}
	default:
		known = false
	}
	f.mu.Unlock()

	if !known {
		return
	}

	select {
	case f.events <- ev:
	default:
		f.logger.Warn("dropping desktop notification event", "server_id", id)
	}
}

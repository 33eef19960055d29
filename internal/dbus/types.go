package dbus

import (
	"github.com/jmylchreest/rhythmui/internal/model"
)

const (
	// DBusInterface is the notification interface name.
	DBusInterface = "org.freedesktop.Notifications"
	// DBusPath is the notification object path.
	DBusPath = "/org/freedesktop/Notifications"
	// DBusBusName is the bus name of the notification service.
	DBusBusName = "org.freedesktop.Notifications"
)

// Urgency levels defined by the freedesktop.org notification specification.
const (
	UrgencyLow      byte = 0
	UrgencyNormal   byte = 1
	UrgencyCritical byte = 2
)

// UrgencyFor maps a notification kind to a desktop urgency.
func UrgencyFor(k model.Kind) byte {
	switch k {
	case model.KindError:
		return UrgencyCritical
	case model.KindBackground:
		return UrgencyLow
	default:
		return UrgencyNormal
	}
}

// CloseReason represents the reason for closing a notification.
// These values are defined by the freedesktop.org notification specification.
type CloseReason uint32

const (
	// CloseReasonExpired indicates the notification expired (timeout reached).
	CloseReasonExpired CloseReason = 1
	// CloseReasonDismissed indicates the user dismissed the notification.
	CloseReasonDismissed CloseReason = 2
	// CloseReasonClosed indicates the notification was closed via CloseNotification.
	CloseReasonClosed CloseReason = 3
	// CloseReasonUndefined is reserved.
	CloseReasonUndefined CloseReason = 4
)

// String returns the string representation of the close reason.
func (r CloseReason) String() string {
	switch r {
	case CloseReasonExpired:
		return "expired"
	case CloseReasonDismissed:
		return "dismissed"
	case CloseReasonClosed:
		return "closed"
	case CloseReasonUndefined:
		return "undefined"
	default:
		return "unknown"
	}
}

// EventType identifies what the desktop did with a forwarded notification.
type EventType int

const (
	// EventActivated is sent when the user invokes the default action.
	EventActivated EventType = iota
	// EventClosed is sent when the desktop closes the notification.
	EventClosed
)

// Event reports desktop interaction with a forwarded notification.
type Event struct {
	Type           EventType
	NotificationID string // Overlay notification ID
	ServerID       uint32
	Reason         CloseReason // Set for EventClosed
}

// Package overlay implements the notification overlay: the toast tray, the
// persistent tray and the lifecycle of progress notifications.
package overlay

// Visibility is the open/closed state of the overlay.
type Visibility int

const (
	// Hidden means the tray is closed; important posts show as toasts.
	Hidden Visibility = iota
	// Visible means the tray is open; posts go straight into it.
	Visible
)

// String returns the string representation of Visibility.
func (v Visibility) String() string {
	switch v {
	case Hidden:
		return "hidden"
	case Visible:
		return "visible"
	default:
		return "unknown"
	}
}

// Placement is where a tracked notification currently lives.
type Placement int

const (
	// PlacementToast means the notification is shown as a transient toast.
	PlacementToast Placement = iota
	// PlacementTray means the notification is in the persistent tray.
	PlacementTray
)

// String returns the string representation of Placement.
func (p Placement) String() string {
	switch p {
	case PlacementToast:
		return "toast"
	case PlacementTray:
		return "tray"
	default:
		return "unknown"
	}
}

// Package dbus forwards overlay toasts to the desktop notification service
// over the org.freedesktop.Notifications D-Bus interface, and reports back
// when the desktop activates or closes them.
package dbus

// Package room models the status of an online multiplayer room and the
// colours used to present it.
package room

import (
	"github.com/jmylchreest/rhythmui/internal/bindable"
)

// Status is the lifecycle state of a room.
type Status int

const (
	StatusOpen Status = iota
	StatusPlaying
	StatusEnded
)

// String returns the string representation of Status.
func (s Status) String() string {
	switch s {
	case StatusOpen:
		return "open"
	case StatusPlaying:
		return "playing"
	case StatusEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Next returns the following status, wrapping after StatusEnded.
func (s Status) Next() Status {
	return (s + 1) % (StatusEnded + 1)
}

// Category classifies a room. Special categories override the status colour.
type Category int

const (
	CategoryNormal Category = iota
	CategorySpotlight
	CategoryFeaturedArtist
)

// String returns the string representation of Category.
func (c Category) String() string {
	switch c {
	case CategoryNormal:
		return "normal"
	case CategorySpotlight:
		return "spotlight"
	case CategoryFeaturedArtist:
		return "featured_artist"
	default:
		return "unknown"
	}
}

// Room is an online room whose status changes over time.
type Room struct {
	Name     string
	Category Category
	status   *bindable.Bindable[Status]
}

// New creates an open room.
func New(name string, category Category) *Room {
	return &Room{
		Name:     name,
		Category: category,
		status:   bindable.New(StatusOpen),
	}
}

// Status returns the observable room status.
func (r *Room) Status() bindable.Observable[Status] {
	return r.status
}

// SetStatus updates the room status.
func (r *Room) SetStatus(s Status) {
	r.status.Set(s)
}

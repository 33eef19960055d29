package room

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette maps room state to colours.
type Palette struct {
	Open           lipgloss.Color
	Playing        lipgloss.Color
	Ended          lipgloss.Color
	Spotlight      lipgloss.Color
	FeaturedArtist lipgloss.Color
}

// DefaultPalette returns the standard room colours.
func DefaultPalette() Palette {
	return Palette{
		Open:           lipgloss.Color("#B3D944"),
		Playing:        lipgloss.Color("#8866EE"),
		Ended:          lipgloss.Color("#FFCC22"),
		Spotlight:      lipgloss.Color("#88B300"),
		FeaturedArtist: lipgloss.Color("#66CCFF"),
	}
}

// ForStatus returns the colour for a room status.
func (p Palette) ForStatus(s Status) lipgloss.Color {
	switch s {
	case StatusPlaying:
		return p.Playing
	case StatusEnded:
		return p.Ended
	default:
		return p.Open
	}
}

// ForCategory returns the override colour for special categories.
func (p Palette) ForCategory(c Category) (lipgloss.Color, bool) {
	switch c {
	case CategorySpotlight:
		return p.Spotlight, true
	case CategoryFeaturedArtist:
		return p.FeaturedArtist, true
	default:
		return "", false
	}
}

// StatusColoured keeps a style coloured after a room's status.
// The room category colour wins over the status colour when present.
type StatusColoured struct {
	room        *Room
	palette     Palette
	style       lipgloss.Style
	colour      lipgloss.Color
	unsubscribe func()
}

// NewStatusColoured binds a style to the room's status. The colour is
// applied immediately.
func NewStatusColoured(r *Room, palette Palette, base lipgloss.Style) *StatusColoured {
	c := &StatusColoured{
		room:    r,
		palette: palette,
		style:   base,
	}
	c.unsubscribe = r.Status().BindValueChanged(func(_, s Status) {
		c.apply(s)
	}, true)
	return c
}

func (c *StatusColoured) apply(s Status) {
	colour, ok := c.palette.ForCategory(c.room.Category)
	if !ok {
		colour = c.palette.ForStatus(s)
	}
	c.colour = colour
	c.style = c.style.Foreground(colour)
}

// Colour returns the colour currently applied.
func (c *StatusColoured) Colour() lipgloss.Color {
	return c.colour
}

// Render renders text in the current colour.
func (c *StatusColoured) Render(text string) string {
	return c.style.Render(text)
}

// Close stops following the room status.
func (c *StatusColoured) Close() {
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
}

// Package scenario generates sample notifications and plays scripted
// overlay sessions.
package scenario

import (
	"time"

	"github.com/jmylchreest/rhythmui/internal/model"
)

// Sample notification texts.
var (
	SimpleTexts = []string{
		"Welcome to osu!. Enjoy your stay!",
		"You have a new private message.",
		"Your score was submitted.",
		"A new version is ready to install.",
		"Chat mention in #lobby.",
	}

	BackgroundTexts = []string{
		"Beatmap listing refreshed.",
		"Skin reloaded.",
		"Online status restored.",
	}

	ErrorTexts = []string{
		"Import failed!",
		"Connection to the server was lost.",
		"Score submission failed.",
	}
)

// Task is a sample progress task.
type Task struct {
	Text       string
	Completion string
}

// Tasks are the sample progress tasks.
var Tasks = []Task{
	{"Uploading to BSS...", "Uploaded to BSS!"},
	{"Downloading Haitai...", "Downloaded Haitai!"},
	{"Importing skins...", "Imported 3 skins!"},
	{"Exporting replay...", "Exported replay!"},
}

// Generator cycles through the sample texts. Every generated notification
// advances the shared counter, so consecutive calls vary their text.
type Generator struct {
	posted         int
	timeToComplete time.Duration
}

// NewGenerator creates a Generator whose tasks take one to three multiples
// of timeToComplete.
func NewGenerator(timeToComplete time.Duration) *Generator {
	return &Generator{timeToComplete: timeToComplete}
}

// Posted returns how many notifications have been generated.
func (g *Generator) Posted() int {
	return g.posted
}

// Simple returns the next simple notification.
func (g *Generator) Simple() *model.Notification {
	g.posted++
	return model.NewSimple(pick(SimpleTexts, g.posted))
}

// Background returns the next background notification.
func (g *Generator) Background() *model.Notification {
	g.posted++
	return model.NewBackground(pick(BackgroundTexts, g.posted))
}

// Error returns the next error notification.
func (g *Generator) Error() *model.Notification {
	g.posted++
	return model.NewError(pick(ErrorTexts, g.posted))
}

// Progress returns the next progress task.
func (g *Generator) Progress(background bool) *model.Notification {
	g.posted++
	task := Tasks[g.posted%len(Tasks)]
	ttc := g.timeToComplete * time.Duration(1+g.posted%3)

	if background {
		return model.NewBackgroundProgress(task.Text, task.Completion, ttc)
	}
	return model.NewProgress(task.Text, task.Completion, ttc)
}

// Barrage returns ten notifications mixing every kind.
func (g *Generator) Barrage() []*model.Notification {
	out := make([]*model.Notification, 0, 10)
	for i := range 10 {
		switch i % 5 {
		case 0, 1:
			out = append(out, g.Simple())
		case 2:
			out = append(out, g.Background())
		case 3:
			out = append(out, g.Progress(i%2 == 0))
		case 4:
			out = append(out, g.Error())
		}
	}
	return out
}

func pick(texts []string, i int) string {
	return texts[i%len(texts)]
}

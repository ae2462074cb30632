package pipeline

import "fmt"

type Platform string

const (
	PlatformIOS     Platform = "ios"
	PlatformAndroid Platform = "android"
	// PlatformAll marks steps that touch both platforms.
	PlatformAll Platform = "all"
)

type Warning struct {
	Platform Platform
	Tag      string
	Text     string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Tag, w.Text)
}

// Warnings aggregates the non-fatal problems of a pass, in the order they
// were reported.
type Warnings struct {
	items []Warning
}

func NewWarnings() *Warnings {
	return &Warnings{}
}

func (w *Warnings) AddWarningAndroid(tag, text string) {
	w.items = append(w.items, Warning{Platform: PlatformAndroid, Tag: tag, Text: text})
}

func (w *Warnings) AddWarningIOS(tag, text string) {
	w.items = append(w.items, Warning{Platform: PlatformIOS, Tag: tag, Text: text})
}

func (w *Warnings) All() []Warning {
	return append([]Warning(nil), w.items...)
}

func (w *Warnings) ForPlatform(platform Platform) []Warning {
	var out []Warning
	for _, item := range w.items {
		if item.Platform == platform {
			out = append(out, item)
		}
	}
	return out
}

func (w *Warnings) Len() int {
	return len(w.items)
}

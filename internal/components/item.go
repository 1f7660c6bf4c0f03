package components

import "time"

// Action is the call to action shown at the bottom of a card.
type Action int

const (
	ActionReadMore Action = iota
	ActionSourceCode
)

// Label is the visible call to action text.
func (a Action) Label() string {
	switch a {
	case ActionSourceCode:
		return "Source code"
	default:
		return "Read more"
	}
}

func (a Action) String() string {
	switch a {
	case ActionSourceCode:
		return "source code"
	default:
		return "read more"
	}
}

// CardItem is anything that can be listed as a card. Implementations declare
// conformance with a compile time assertion.
type CardItem interface {
	Title() string
	Description() string
	Tags() []string
	URL() string
	NewTab() bool
	Action() Action
	// PublishedDate reports the publish date; ok is false when there is none.
	PublishedDate() (t time.Time, ok bool)
}

package cursor

import "strings"

// DefaultIndentUnit is the text a tab key inserts and a tab-aware delete removes.
const DefaultIndentUnit = "    "

// Gesture is the kind of delete the user performed.
type Gesture int

const (
	// Tap removes exactly one character.
	Tap Gesture = iota
	// SwipeDelete removes the trailing word or whitespace run.
	SwipeDelete
	// TabAware removes a whole indent unit when the cursor follows one.
	TabAware
)

func (g Gesture) String() string {
	switch g {
	case Tap:
		return "tap"
	case SwipeDelete:
		return "swipe"
	case TabAware:
		return "tab"
	}
	return "unknown"
}

// ParseGesture maps the String form back to a Gesture.
func ParseGesture(s string) (Gesture, bool) {
	switch s {
	case "tap":
		return Tap, true
	case "swipe":
		return SwipeDelete, true
	case "tab":
		return TabAware, true
	}
	return Tap, false
}

// Planner computes how many characters a delete gesture removes.
type Planner struct {
	IndentUnit string
}

// NewPlanner returns a planner for indent, or DefaultIndentUnit when indent is empty.
func NewPlanner(indent string) Planner {
	if indent == "" {
		indent = DefaultIndentUnit
	}
	return Planner{IndentUnit: indent}
}

// Plan returns the number of characters to delete backward. It is zero only
// when there is no text before the cursor.
func (p Planner) Plan(ctx Context, g Gesture) int {
	if ctx.Kind == Empty {
		return 0
	}

	switch g {
	case SwipeDelete:
		if ctx.Kind == InWord || ctx.Kind == InWhitespace {
			return ctx.Length
		}
		return 1
	case TabAware:
		if p.IndentUnit != "" && strings.HasSuffix(ctx.before, p.IndentUnit) {
			return Graphemes(p.IndentUnit)
		}
		return 1
	default:
		return 1
	}
}

package server

import (
	"errors"
	"fmt"

	"github.com/bastiangx/wordkey/pkg/cursor"
	"github.com/bastiangx/wordkey/pkg/session"
)

// ErrUnknownEvent is returned for requests the session cannot handle.
var ErrUnknownEvent = errors.New("unknown event")

// ParseEvent converts a request into a session event.
func ParseEvent(req Request) (session.Event, error) {
	switch req.Event {
	case "char":
		return session.CharacterKey{Row: req.Row, Col: req.Col}, nil
	case "text":
		return session.TypeText{Text: req.Word}, nil
	case "secondary":
		return session.SecondaryKey{Row: req.Row, Col: req.Col}, nil
	case "tertiary":
		return session.TertiaryKey{Row: req.Row, Col: req.Col}, nil
	case "shift":
		return session.ShiftPress{}, nil
	case "delete":
		if req.Gesture == "" {
			return session.Delete{Gesture: cursor.TabAware}, nil
		}
		g, ok := cursor.ParseGesture(req.Gesture)
		if !ok {
			return nil, fmt.Errorf("%w: delete gesture %q", ErrUnknownEvent, req.Gesture)
		}
		return session.Delete{Gesture: g}, nil
	case "space":
		return session.Space{}, nil
	case "tab":
		return session.Tab{}, nil
	case "return":
		return session.Return{}, nil
	case "accept":
		return session.AcceptSuggestion{Word: req.Word}, nil
	case "next":
		return session.NextLanguage{}, nil
	case "prev":
		return session.PrevLanguage{}, nil
	case "hold":
		switch req.Key {
		case "delete", "":
			return session.HoldBegin{Key: session.HoldDelete}, nil
		case "space":
			return session.HoldBegin{Key: session.HoldSpace}, nil
		}
		return nil, fmt.Errorf("%w: hold key %q", ErrUnknownEvent, req.Key)
	case "tick":
		return session.Tick{}, nil
	case "release":
		return session.HoldEnd{}, nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownEvent, req.Event)
}

func toOps(intents []session.EditIntent) []EditOp {
	ops := make([]EditOp, 0, len(intents))
	for _, in := range intents {
		switch in.Kind {
		case session.DeleteBackward:
			ops = append(ops, EditOp{Op: "d", Count: in.Count})
		case session.InsertText:
			ops = append(ops, EditOp{Op: "i", Text: in.Text})
		}
	}
	return ops
}

package tui

// SignalKind identifies a navigation request raised by a view.
type SignalKind int

const (
	// SignalNone means the view handled the input itself.
	SignalNone SignalKind = iota

	// SignalItemSelected means a list item was confirmed; Signal.Index is set.
	SignalItemSelected

	// SignalBackToList asks to return to the previous result list.
	SignalBackToList

	// SignalBackToNewSearch asks to return to query entry.
	SignalBackToNewSearch

	// SignalExit asks to quit the application.
	SignalExit

	// SignalTooSmall means the terminal cannot fit the view's frame.
	SignalTooSmall
)

// String returns the string representation of the signal kind.
func (k SignalKind) String() string {
	switch k {
	case SignalItemSelected:
		return "ITEM_SELECTED"
	case SignalBackToList:
		return "BACK_TO_LIST"
	case SignalBackToNewSearch:
		return "BACK_TO_NEW_SEARCH"
	case SignalExit:
		return "EXIT"
	case SignalTooSmall:
		return "TERMINAL_TOO_SMALL"
	default:
		return "NONE"
	}
}

// Signal is returned by view Update methods and interpreted by App.
type Signal struct {
	Kind  SignalKind
	Index int
}

func noSignal() Signal { return Signal{Kind: SignalNone} }

func signalOf(kind SignalKind) Signal { return Signal{Kind: kind} }

func selected(index int) Signal { return Signal{Kind: SignalItemSelected, Index: index} }

package ui

import (
	"github.com/swapdesk/swapdesk/internal/swap"
	"github.com/swapdesk/swapdesk/internal/token"
)

// Tea message types for UI communication

// OpenPickerMsg asks the application to push the token picker screen
type OpenPickerMsg struct {
	Side    PickerSide
	Tokens  []token.Token
	Exclude string // currency hidden from the candidate list
}

// TokensLoadedMsg carries a freshly fetched token list
type TokensLoadedMsg struct {
	Tokens []token.Token
}

// TokenFetchFailedMsg signals that the price feed could not be loaded
type TokenFetchFailedMsg struct {
	Err error
}

// SwapResultMsg carries the outcome of a submitted swap
type SwapResultMsg struct {
	Resp *swap.Response
	Err  error
}

// PickerSide identifies which side of the form a token is picked for
type PickerSide int

const (
	SideFrom PickerSide = iota
	SideTo
)

// String returns the display label of the side
func (s PickerSide) String() string {
	if s == SideFrom {
		return "From"
	}
	return "To"
}

// TokenPickedMsg reports the token chosen in the picker
type TokenPickedMsg struct {
	Side  PickerSide
	Token token.Token
}

// PickerCancelledMsg reports that the picker was dismissed without a choice
type PickerCancelledMsg struct{}

// NoticeExpiredMsg dismisses the outcome banner after its display window
type NoticeExpiredMsg struct{}

// Route represents different screens in the application
type Route int

const (
	RouteSwap Route = iota
	RouteTokenPicker
)

// String returns the string representation of the route
func (r Route) String() string {
	switch r {
	case RouteSwap:
		return "swap"
	case RouteTokenPicker:
		return "token_picker"
	default:
		return "unknown"
	}
}

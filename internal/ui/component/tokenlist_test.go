package component

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swapdesk/swapdesk/internal/token"
)

var pickerTokens = []token.Token{
	{Currency: "ATOM", Price: 7.18},
	{Currency: "BTC", Price: 26002.82},
	{Currency: "ETH", Price: 1645.93},
	{Currency: "USDC", Price: 1},
}

func keyPress(r rune) tea.Msg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestTokenListExcludesOppositeSelection(t *testing.T) {
	list := NewTokenList(pickerTokens, "ETH")

	view := list.View()
	assert.NotContains(t, view, "ETH")
	assert.Contains(t, view, "BTC")
}

func TestTokenListSearchFiltersCaseInsensitive(t *testing.T) {
	list := NewTokenList(pickerTokens, "")

	list, _ = list.Update(keyPress('b'))
	list, _ = list.Update(keyPress('t'))

	tok, ok := list.Selected()
	require.True(t, ok)
	assert.Equal(t, "BTC", tok.Currency)

	view := list.View()
	assert.NotContains(t, view, "USDC")
}

func TestTokenListNavigation(t *testing.T) {
	list := NewTokenList(pickerTokens, "")

	tok, ok := list.Selected()
	require.True(t, ok)
	assert.Equal(t, "ATOM", tok.Currency)

	list, _ = list.Update(tea.KeyMsg{Type: tea.KeyDown})
	list, _ = list.Update(tea.KeyMsg{Type: tea.KeyDown})
	tok, _ = list.Selected()
	assert.Equal(t, "ETH", tok.Currency)

	list, _ = list.Update(tea.KeyMsg{Type: tea.KeyUp})
	tok, _ = list.Selected()
	assert.Equal(t, "BTC", tok.Currency)

	// Cannot move above the first entry.
	list, _ = list.Update(tea.KeyMsg{Type: tea.KeyUp})
	list, _ = list.Update(tea.KeyMsg{Type: tea.KeyUp})
	tok, _ = list.Selected()
	assert.Equal(t, "ATOM", tok.Currency)
}

func TestTokenListNoMatches(t *testing.T) {
	list := NewTokenList(pickerTokens, "")

	list, _ = list.Update(keyPress('z'))
	list, _ = list.Update(keyPress('z'))

	_, ok := list.Selected()
	assert.False(t, ok)
	assert.Contains(t, list.View(), "No tokens found")
}

func TestTokenListSearchResetsSelection(t *testing.T) {
	list := NewTokenList(pickerTokens, "")

	list, _ = list.Update(tea.KeyMsg{Type: tea.KeyDown})
	list, _ = list.Update(keyPress('u'))

	tok, ok := list.Selected()
	require.True(t, ok)
	assert.Equal(t, "USDC", tok.Currency)
}

package component

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/swapdesk/swapdesk/internal/exchange"
	"github.com/swapdesk/swapdesk/internal/token"
	"github.com/swapdesk/swapdesk/internal/ui/style"
)

const maxVisibleTokens = 8

// TokenList is a searchable token list with an optional excluded currency.
// The exclusion is how the form keeps the two sides of a swap from ever
// pointing at the same token.
type TokenList struct {
	all      []token.Token
	filtered []token.Token
	exclude  string

	search      textinput.Model
	selectedIdx int
	offset      int
	width       int

	// Styling
	itemStyle     lipgloss.Style
	selectedStyle lipgloss.Style
	priceStyle    lipgloss.Style
	emptyStyle    lipgloss.Style
}

// NewTokenList creates a token list over the given candidates, hiding the
// excluded currency.
func NewTokenList(tokens []token.Token, exclude string) *TokenList {
	palette := style.DefaultPalette()

	search := textinput.New()
	search.Placeholder = "Search tokens..."
	search.Prompt = "🔍 "
	search.Width = 30
	search.Focus()

	l := &TokenList{
		all:     tokens,
		exclude: exclude,
		search:  search,
		width:   40,

		itemStyle: lipgloss.NewStyle().
			Foreground(palette.Text).
			Padding(0, 2),

		selectedStyle: lipgloss.NewStyle().
			Foreground(palette.Background).
			Background(palette.Primary).
			Bold(true).
			Padding(0, 2),

		priceStyle: lipgloss.NewStyle().
			Foreground(palette.TextMuted),

		emptyStyle: lipgloss.NewStyle().
			Foreground(palette.TextMuted).
			Italic(true).
			Padding(1, 2),
	}

	l.applyFilter()
	return l
}

// SetWidth sets the rendered width
func (l *TokenList) SetWidth(width int) *TokenList {
	l.width = width
	return l
}

// Selected returns the currently highlighted token, if any.
func (l *TokenList) Selected() (token.Token, bool) {
	if len(l.filtered) == 0 {
		return token.Token{}, false
	}
	return l.filtered[l.selectedIdx], true
}

// Update handles search input and list navigation.
func (l *TokenList) Update(msg tea.Msg) (*TokenList, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "up":
			if l.selectedIdx > 0 {
				l.selectedIdx--
				if l.selectedIdx < l.offset {
					l.offset = l.selectedIdx
				}
			}
			return l, nil
		case "down":
			if l.selectedIdx < len(l.filtered)-1 {
				l.selectedIdx++
				if l.selectedIdx >= l.offset+maxVisibleTokens {
					l.offset = l.selectedIdx - maxVisibleTokens + 1
				}
			}
			return l, nil
		}
	}

	var cmd tea.Cmd
	before := l.search.Value()
	l.search, cmd = l.search.Update(msg)
	if l.search.Value() != before {
		l.applyFilter()
	}
	return l, cmd
}

// View renders the search box and the visible window of the list.
func (l *TokenList) View() string {
	var b strings.Builder
	b.WriteString(l.search.View())
	b.WriteString("\n\n")

	if len(l.filtered) == 0 {
		b.WriteString(l.emptyStyle.Render("No tokens found"))
		return b.String()
	}

	end := l.offset + maxVisibleTokens
	if end > len(l.filtered) {
		end = len(l.filtered)
	}

	for i := l.offset; i < end; i++ {
		tok := l.filtered[i]
		label := tok.Currency + "  " +
			l.priceStyle.Render("$"+exchange.FormatUSD(tok.Price))

		if i == l.selectedIdx {
			b.WriteString(l.selectedStyle.Width(l.width).Render(label))
		} else {
			b.WriteString(l.itemStyle.Width(l.width).Render(label))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (l *TokenList) applyFilter() {
	query := strings.ToUpper(strings.TrimSpace(l.search.Value()))

	l.filtered = l.filtered[:0]
	for _, tok := range l.all {
		if tok.Currency == l.exclude {
			continue
		}
		if query != "" && !strings.Contains(strings.ToUpper(tok.Currency), query) {
			continue
		}
		l.filtered = append(l.filtered, tok)
	}

	l.selectedIdx = 0
	l.offset = 0
}

package screen

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/swapdesk/swapdesk/internal/token"
	"github.com/swapdesk/swapdesk/internal/ui"
	"github.com/swapdesk/swapdesk/internal/ui/component"
	"github.com/swapdesk/swapdesk/internal/ui/router"
	"github.com/swapdesk/swapdesk/internal/ui/style"
)

// PickerScreen lets the user choose a token for one side of the swap. The
// opposite side's currency is excluded from the candidate list, so the two
// sides can never reference the same token.
type PickerScreen struct {
	side ui.PickerSide
	list *component.TokenList

	width   int
	height  int
	keyMap  ui.KeyMap
	helpBar *component.HelpBar

	titleStyle     lipgloss.Style
	containerStyle lipgloss.Style
}

// NewPickerScreen creates a token picker for the given side of the form.
func NewPickerScreen(side ui.PickerSide, tokens []token.Token, exclude string) *PickerScreen {
	palette := style.DefaultPalette()
	keyMap := ui.DefaultKeyMap()

	helpBar := component.NewHelpBar().
		SetKeyBindings(keyMap.ContextualHelp(ui.RouteTokenPicker))

	return &PickerScreen{
		side:    side,
		list:    component.NewTokenList(tokens, exclude),
		keyMap:  keyMap,
		helpBar: helpBar,

		titleStyle: lipgloss.NewStyle().
			Foreground(palette.Primary).
			Bold(true).
			Margin(1, 0),

		containerStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.Primary).
			Padding(1, 2),
	}
}

// Init initializes the picker
func (s *PickerScreen) Init() tea.Cmd {
	return nil
}

// Update handles picker input
func (s *PickerScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, s.keyMap.Quit):
			return s, tea.Quit

		case key.Matches(keyMsg, s.keyMap.Back):
			return s, func() tea.Msg { return ui.PickerCancelledMsg{} }

		case key.Matches(keyMsg, s.keyMap.Enter):
			if tok, ok := s.list.Selected(); ok {
				side := s.side
				return s, func() tea.Msg {
					return ui.TokenPickedMsg{Side: side, Token: tok}
				}
			}
			return s, nil
		}
	}

	var cmd tea.Cmd
	s.list, cmd = s.list.Update(msg)
	return s, cmd
}

// View renders the picker
func (s *PickerScreen) View() string {
	title := s.titleStyle.Render("Select " + s.side.String() + " Token")
	body := s.containerStyle.Render(s.list.View())
	help := s.helpBar.SetWidth(s.width).View()

	content := lipgloss.JoinVertical(lipgloss.Left, title, body, help)
	if s.width == 0 || s.height == 0 {
		return content
	}
	return lipgloss.Place(s.width, s.height, lipgloss.Center, lipgloss.Center, content)
}

// SetSize sets the screen dimensions
func (s *PickerScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
}

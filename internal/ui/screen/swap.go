package screen

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/swapdesk/swapdesk/internal/form"
	"github.com/swapdesk/swapdesk/internal/pricefeed"
	"github.com/swapdesk/swapdesk/internal/swap"
	"github.com/swapdesk/swapdesk/internal/token"
	"github.com/swapdesk/swapdesk/internal/ui"
	"github.com/swapdesk/swapdesk/internal/ui/component"
	"github.com/swapdesk/swapdesk/internal/ui/router"
	"github.com/swapdesk/swapdesk/internal/ui/style"
)

// focusField is the keyboard focus position on the form
type focusField int

const (
	focusFromToken focusField = iota
	focusAmount
	focusToToken
	focusSubmit
	focusFieldCount
)

// noticeDuration matches the display window of the outcome banner.
const noticeDuration = 5 * time.Second

// SwapScreen is the main swap form: token selection, amount entry, derived
// values, validation, and submission.
type SwapScreen struct {
	controller *form.Controller
	cache      *pricefeed.Cache
	service    *swap.Service
	logger     *zap.Logger

	tokens   []token.Token
	loading  bool
	fetchErr error

	focus       focusField
	amountInput textinput.Model
	pending     spinner.Model

	width   int
	height  int
	keyMap  ui.KeyMap
	helpBar *component.HelpBar

	// Styling
	titleStyle     lipgloss.Style
	cardStyle      lipgloss.Style
	sectionStyle   lipgloss.Style
	focusedSection lipgloss.Style
	labelStyle     lipgloss.Style
	tokenStyle     lipgloss.Style
	mutedStyle     lipgloss.Style
	errorStyle     lipgloss.Style
	successStyle   lipgloss.Style
	rateStyle      lipgloss.Style
	submitStyle    lipgloss.Style
	submitFocused  lipgloss.Style
	submitDisabled lipgloss.Style
}

// NewSwapScreen creates the swap form screen.
func NewSwapScreen(controller *form.Controller, cache *pricefeed.Cache, service *swap.Service, logger *zap.Logger) *SwapScreen {
	palette := style.DefaultPalette()
	keyMap := ui.DefaultKeyMap()

	amountInput := textinput.New()
	amountInput.Placeholder = "0.00"
	amountInput.Prompt = ""
	amountInput.Width = 24

	pending := spinner.New()
	pending.Spinner = spinner.Dot
	pending.Style = lipgloss.NewStyle().Foreground(palette.Primary)

	helpBar := component.NewHelpBar().
		SetKeyBindings(keyMap.ContextualHelp(ui.RouteSwap))

	return &SwapScreen{
		controller:  controller,
		cache:       cache,
		service:     service,
		logger:      logger.Named("swap_screen"),
		loading:     true,
		focus:       focusFromToken,
		amountInput: amountInput,
		pending:     pending,
		keyMap:      keyMap,
		helpBar:     helpBar,

		titleStyle: lipgloss.NewStyle().
			Foreground(palette.Primary).
			Bold(true).
			Margin(1, 0).
			Align(lipgloss.Center),

		cardStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.Primary).
			Padding(1, 3),

		sectionStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.TextMuted).
			Padding(0, 1).
			Margin(0, 0, 1, 0).
			Width(44),

		focusedSection: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.Primary).
			Padding(0, 1).
			Margin(0, 0, 1, 0).
			Width(44),

		labelStyle: lipgloss.NewStyle().
			Foreground(palette.TextMuted).
			Bold(true),

		tokenStyle: lipgloss.NewStyle().
			Foreground(palette.Text).
			Bold(true),

		mutedStyle: lipgloss.NewStyle().
			Foreground(palette.TextMuted),

		errorStyle: lipgloss.NewStyle().
			Foreground(palette.Error),

		successStyle: lipgloss.NewStyle().
			Foreground(palette.Success).
			Bold(true),

		rateStyle: lipgloss.NewStyle().
			Foreground(palette.Info),

		submitStyle: lipgloss.NewStyle().
			Foreground(palette.Text).
			Background(palette.BackgroundAlt).
			Padding(0, 4).
			Bold(true),

		submitFocused: lipgloss.NewStyle().
			Foreground(palette.Background).
			Background(palette.Secondary).
			Padding(0, 4).
			Bold(true),

		submitDisabled: lipgloss.NewStyle().
			Foreground(palette.TextMuted).
			Background(palette.BackgroundAlt).
			Padding(0, 4),
	}
}

// Init kicks off the initial token fetch.
func (s *SwapScreen) Init() tea.Cmd {
	return tea.Batch(s.loadTokens(false), s.pending.Tick)
}

// Update handles form input and async results.
func (s *SwapScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return s.handleKey(msg)

	case tea.FocusMsg:
		// Regaining terminal focus refetches only when the cached list has
		// aged out.
		return s, s.loadTokens(false)

	case ui.TokensLoadedMsg:
		s.loading = false
		s.fetchErr = nil
		s.tokens = msg.Tokens
		s.logger.Debug("token list ready", zap.Int("tokens", len(msg.Tokens)))
		return s, nil

	case ui.TokenFetchFailedMsg:
		s.loading = false
		s.fetchErr = msg.Err
		return s, nil

	case ui.TokenPickedMsg:
		if msg.Side == ui.SideFrom {
			s.controller.SetFromToken(msg.Token)
		} else {
			s.controller.SetToToken(msg.Token)
		}
		return s, nil

	case ui.SwapResultMsg:
		s.controller.CompleteSubmit(msg.Resp, msg.Err)
		s.syncAmountInput()
		return s, tea.Tick(noticeDuration, func(time.Time) tea.Msg {
			return ui.NoticeExpiredMsg{}
		})

	case ui.NoticeExpiredMsg:
		s.controller.DismissNotice()
		return s, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		s.pending, cmd = s.pending.Update(msg)
		return s, cmd
	}

	return s.updateAmountInput(msg)
}

func (s *SwapScreen) handleKey(msg tea.KeyMsg) (router.Screen, tea.Cmd) {
	switch {
	case key.Matches(msg, s.keyMap.Quit):
		return s, tea.Quit

	case key.Matches(msg, s.keyMap.Refresh):
		s.loading = true
		return s, s.loadTokens(true)
	}

	if s.loading {
		return s, nil
	}

	if s.fetchErr != nil {
		// Error state: Enter retries the fetch.
		if key.Matches(msg, s.keyMap.Enter) {
			s.loading = true
			return s, s.loadTokens(true)
		}
		return s, nil
	}

	switch {
	case key.Matches(msg, s.keyMap.Back):
		if s.controller.Notice() != nil {
			s.controller.DismissNotice()
		}
		return s, nil

	case key.Matches(msg, s.keyMap.Tab):
		s.setFocus((s.focus + 1) % focusFieldCount)
		return s, nil

	case key.Matches(msg, s.keyMap.ShiftTab):
		s.setFocus((s.focus + focusFieldCount - 1) % focusFieldCount)
		return s, nil

	case key.Matches(msg, s.keyMap.Flip):
		s.controller.Flip()
		s.syncAmountInput()
		return s, nil

	case key.Matches(msg, s.keyMap.Submit):
		return s, s.submit()

	case key.Matches(msg, s.keyMap.Enter):
		switch s.focus {
		case focusFromToken:
			return s, s.openPicker(ui.SideFrom)
		case focusToToken:
			return s, s.openPicker(ui.SideTo)
		case focusSubmit:
			return s, s.submit()
		}
		return s, nil
	}

	return s.updateAmountInput(msg)
}

func (s *SwapScreen) updateAmountInput(msg tea.Msg) (router.Screen, tea.Cmd) {
	if s.focus != focusAmount || s.controller.Pending() {
		return s, nil
	}

	var cmd tea.Cmd
	before := s.amountInput.Value()
	s.amountInput, cmd = s.amountInput.Update(msg)
	if s.amountInput.Value() != before {
		s.controller.SetFromAmount(s.amountInput.Value())
	}
	return s, cmd
}

func (s *SwapScreen) setFocus(f focusField) {
	s.focus = f
	if f == focusAmount {
		s.amountInput.Focus()
	} else {
		s.amountInput.Blur()
	}
}

// syncAmountInput pulls the controller's amount back into the input after
// flips and resets, which change it outside of typing.
func (s *SwapScreen) syncAmountInput() {
	s.amountInput.SetValue(s.controller.FromAmount())
}

func (s *SwapScreen) openPicker(side ui.PickerSide) tea.Cmd {
	exclude := ""
	if side == ui.SideFrom && !s.controller.ToToken().Zero() {
		exclude = s.controller.ToToken().Currency
	}
	if side == ui.SideTo && !s.controller.FromToken().Zero() {
		exclude = s.controller.FromToken().Currency
	}

	tokens := s.tokens
	return func() tea.Msg {
		return ui.OpenPickerMsg{Side: side, Tokens: tokens, Exclude: exclude}
	}
}

func (s *SwapScreen) submit() tea.Cmd {
	req, ok := s.controller.BeginSubmit()
	if !ok {
		return nil
	}

	service := s.service
	return func() tea.Msg {
		resp, err := service.Execute(context.Background(), req)
		return ui.SwapResultMsg{Resp: resp, Err: err}
	}
}

func (s *SwapScreen) loadTokens(force bool) tea.Cmd {
	cache := s.cache
	return func() tea.Msg {
		tokens, err := cache.Refresh(context.Background(), force)
		if err != nil {
			return ui.TokenFetchFailedMsg{Err: err}
		}
		return ui.TokensLoadedMsg{Tokens: tokens}
	}
}

// View renders the swap form.
func (s *SwapScreen) View() string {
	title := s.titleStyle.Render("Swap Tokens")

	var body string
	switch {
	case s.loading:
		body = s.cardStyle.Render(s.pending.View() + " Loading tokens...")
	case s.fetchErr != nil:
		body = s.cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			s.errorStyle.Render("Failed to load tokens"),
			s.mutedStyle.Render(s.fetchErr.Error()),
			"",
			s.mutedStyle.Render("Press enter to retry"),
		))
	default:
		body = s.cardStyle.Render(s.renderForm())
	}

	sections := []string{title, body}
	if notice := s.renderNotice(); notice != "" {
		sections = append(sections, notice)
	}
	sections = append(sections, s.helpBar.SetWidth(s.width).View())

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	if s.width == 0 || s.height == 0 {
		return content
	}
	return lipgloss.Place(s.width, s.height, lipgloss.Center, lipgloss.Center, content)
}

func (s *SwapScreen) renderForm() string {
	errs := s.controller.Errors()

	from := s.renderSection("From", s.controller.FromToken(),
		s.renderAmountEntry(), s.controller.FromUSD(),
		[]string{errs.FromToken, errs.FromAmount}, s.focus == focusFromToken || s.focus == focusAmount)

	flipHint := s.mutedStyle.Render("⇅ " + s.keyMap.Flip.Help().Key)

	to := s.renderSection("To", s.controller.ToToken(),
		s.renderDerivedAmount(), s.controller.ToUSD(),
		[]string{errs.ToToken}, s.focus == focusToToken)

	rate := s.renderRate()
	submit := s.renderSubmit()

	return lipgloss.JoinVertical(lipgloss.Center, from, flipHint, to, rate, "", submit)
}

func (s *SwapScreen) renderSection(label string, tok token.Token, amount, usd string, fieldErrs []string, focused bool) string {
	tokenLabel := s.mutedStyle.Render("Select token ▾")
	if !tok.Zero() {
		tokenLabel = s.tokenStyle.Render(tok.Currency) + " " +
			s.mutedStyle.Render("▾")
	}

	lines := []string{
		s.labelStyle.Render(label),
		tokenLabel,
		amount,
	}
	if usd != "" {
		lines = append(lines, s.mutedStyle.Render("≈ $"+usd+" USD"))
	} else {
		lines = append(lines, s.mutedStyle.Render("-"))
	}

	// Each violated field keeps its own error line.
	hasErr := false
	for _, fieldErr := range fieldErrs {
		if fieldErr != "" {
			lines = append(lines, s.errorStyle.Render(fieldErr))
			hasErr = true
		}
	}

	sectionStyle := s.sectionStyle
	if focused {
		sectionStyle = s.focusedSection
	}
	if hasErr {
		sectionStyle = sectionStyle.BorderForeground(style.ErrorColor)
	}

	return sectionStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (s *SwapScreen) renderAmountEntry() string {
	return s.amountInput.View()
}

func (s *SwapScreen) renderDerivedAmount() string {
	if amount := s.controller.ToAmount(); amount != "" {
		return s.tokenStyle.Render(amount)
	}
	return s.mutedStyle.Render("0.00")
}

func (s *SwapScreen) renderRate() string {
	from, to := s.controller.FromToken(), s.controller.ToToken()
	if rate := s.controller.ExchangeRate(); rate != "" {
		return s.rateStyle.Render("1 " + from.Currency + " = " + rate + " " + to.Currency)
	}
	return s.mutedStyle.Render("Exchange Rate: select tokens")
}

func (s *SwapScreen) renderSubmit() string {
	if s.controller.Pending() {
		return s.submitDisabled.Render(s.pending.View() + " Swapping...")
	}

	label := "CONFIRM SWAP"
	if s.focus == focusSubmit {
		return s.submitFocused.Render(label)
	}
	return s.submitStyle.Render(label)
}

func (s *SwapScreen) renderNotice() string {
	notice := s.controller.Notice()
	if notice == nil {
		return ""
	}

	if notice.Kind == form.NoticeSuccess {
		return s.successStyle.Render("✓ "+notice.Title) + " " +
			s.mutedStyle.Render(notice.Message)
	}
	return s.errorStyle.Render("✗ "+notice.Title) + " " +
		s.mutedStyle.Render(notice.Message+"  (esc to dismiss)")
}

// SetSize sets the screen dimensions
func (s *SwapScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
}

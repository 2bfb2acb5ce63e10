package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/swapdesk/swapdesk/internal/config"
	"github.com/swapdesk/swapdesk/internal/form"
	"github.com/swapdesk/swapdesk/internal/logger"
	"github.com/swapdesk/swapdesk/internal/pricefeed"
	"github.com/swapdesk/swapdesk/internal/swap"
	"github.com/swapdesk/swapdesk/internal/ui"
	"github.com/swapdesk/swapdesk/internal/ui/router"
	"github.com/swapdesk/swapdesk/internal/ui/screen"
)

// AppModel represents the main TUI application model
type AppModel struct {
	router *router.Router
	width  int
	height int
}

// NewAppModel creates a new application model
func NewAppModel(swapScreen *screen.SwapScreen) *AppModel {
	return &AppModel{
		router: router.New(swapScreen),
	}
}

// Init initializes the application
func (m *AppModel) Init() tea.Cmd {
	return tea.Batch(
		m.router.Init(),
		tea.EnterAltScreen,
	)
}

// Update handles application-level updates
func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.router.SetSize(msg.Width, msg.Height)
		return m, nil

	case ui.OpenPickerMsg:
		picker := screen.NewPickerScreen(msg.Side, msg.Tokens, msg.Exclude)
		return m, m.router.Push(picker)

	case ui.TokenPickedMsg:
		// Close the picker, then let the swap screen record the choice.
		m.router.Pop()
		return m.forward(msg)

	case ui.PickerCancelledMsg:
		m.router.Pop()
		return m, nil
	}

	return m.forward(msg)
}

func (m *AppModel) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	updated, cmd := m.router.Update(msg)
	m.router = updated
	return m, cmd
}

// View renders the application
func (m *AppModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}
	return m.router.View()
}

func main() {
	configPath := flag.String("config", "configs/config.yaml", "Path to config file")
	flag.Parse()

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.New(&logger.Config{
		LogFile:     cfg.LogFile,
		MaxSize:     50,
		MaxAge:      7,
		MaxBackups:  3,
		Compress:    true,
		Development: cfg.DebugLogging,
	})
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer func() {
		_ = appLogger.Sync()
	}()

	appLogger.Info("Starting swapdesk",
		zap.String("prices_url", cfg.PricesURL),
		zap.Bool("debug", cfg.DebugLogging))

	feedLogger := appLogger.WithComponent("pricefeed")
	feedClient := pricefeed.NewClient(cfg.PricesURL,
		time.Duration(cfg.FetchTimeout)*time.Millisecond, feedLogger)
	tokenCache := pricefeed.NewCache(feedClient, cfg.IconsBaseURL,
		time.Duration(cfg.CacheTTLMs)*time.Millisecond, feedLogger)

	swapLogger := appLogger.WithComponent("swap")
	simulator := swap.NewSimulator(swapLogger,
		swap.WithDelay(time.Duration(cfg.SwapDelayMs)*time.Millisecond),
		swap.WithFailureRate(cfg.FailureRate))
	swapService := swap.NewService(simulator, swapLogger)

	uiLogger := appLogger.WithComponent("ui")
	controller := form.New(uiLogger)
	swapScreen := screen.NewSwapScreen(controller, tokenCache, swapService, uiLogger)

	program := tea.NewProgram(
		NewAppModel(swapScreen),
		tea.WithAltScreen(),
		tea.WithReportFocus(),
	)

	group, ctx := errgroup.WithContext(rootCtx)

	group.Go(func() error {
		_, err := program.Run()
		stop() // the UI exited; release the signal context
		return err
	})

	group.Go(func() error {
		<-ctx.Done()
		program.Quit()
		return nil
	})

	if err := group.Wait(); err != nil {
		appLogger.LogError("TUI application failed", err)
	}

	appLogger.Info("swapdesk stopped")
}

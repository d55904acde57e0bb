// Package state holds the bubbletea model of the shop screen.
package state

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/cristianoliveira/shopcart/internal/cart"
	"github.com/cristianoliveira/shopcart/internal/cartsync"
	"github.com/cristianoliveira/shopcart/internal/catalog"
	"github.com/cristianoliveira/shopcart/internal/errors"
	"github.com/cristianoliveira/shopcart/internal/logging"
	"github.com/cristianoliveira/shopcart/internal/ui"
)

const (
	defaultViewportWidth  = 80
	defaultViewportHeight = 22
	errorClearDuration    = 5 * time.Second
)

var (
	// ErrEmptyCatalog is returned when there is nothing to show.
	ErrEmptyCatalog = stderrors.New("catalog has no products")
	// ErrMissingDeps is returned when a store or the coordinator is nil.
	ErrMissingDeps = stderrors.New("tui: cart store, ui store and coordinator are required")
)

// Deps are the collaborators the model drives.
type Deps struct {
	Catalog *catalog.Catalog
	Cart    *cart.Store
	UI      *ui.Store
	Sync    *cartsync.Coordinator
	Logger  logging.Logger
}

// Model represents the TUI model for bubbletea.
type Model struct {
	ctx     context.Context
	catalog *catalog.Catalog
	cart    *cart.Store
	ui      *ui.Store
	sync    *cartsync.Coordinator
	logger  logging.Logger

	uiState *UIState
	keys    keyMap
	help    help.Model
	spinner spinner.Model

	errorHandler      *errors.TUIHandler
	statusMessage     string
	statusMessageType errors.MessageType
	hasStatusMessage  bool
	statusID          int
}

// NewModel creates the model and records the current cart as the initial
// load, so it is not sent.
func NewModel(ctx context.Context, deps Deps) (*Model, error) {
	if deps.Catalog == nil || deps.Catalog.Len() == 0 {
		return nil, ErrEmptyCatalog
	}
	if deps.Cart == nil || deps.UI == nil || deps.Sync == nil {
		return nil, ErrMissingDeps
	}
	if deps.Logger == nil {
		deps.Logger = logging.Noop()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := &Model{
		ctx:     ctx,
		catalog: deps.Catalog,
		cart:    deps.Cart,
		ui:      deps.UI,
		sync:    deps.Sync,
		logger:  deps.Logger.With("component", "tui"),
		uiState: NewUIState(),
		keys:    defaultKeyMap(),
		help:    help.New(),
		spinner: sp,
	}
	m.errorHandler = errors.NewTUIHandler(func(msg errors.Message) {
		m.statusMessage = msg.Text
		m.statusMessageType = msg.Type
		m.hasStatusMessage = msg.Text != ""
	})

	m.sync.Observe(m.cart.Snapshot())
	return m, nil
}

// Init starts the spinner.
func (m *Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case tea.WindowSizeMsg:
		m.uiState.SetWidth(msg.Width)
		m.uiState.SetHeight(msg.Height)
		m.help.Width = msg.Width
		return m, nil
	case sendResultMsg:
		m.sync.Complete(msg.result)
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case errorMsg:
		if msg.id == m.statusID {
			m.statusMessage = ""
			m.statusMessageType = errors.MessageTypeError
			m.hasStatusMessage = false
		}
		return m, nil
	}
	return m, nil
}

// syncCmd hands snap to the coordinator. Pending is set before this returns;
// the send itself runs in the returned command.
func (m *Model) syncCmd(snap cart.Snapshot) tea.Cmd {
	send, ok := m.sync.Observe(snap)
	if !ok {
		return nil
	}
	ctx := m.ctx
	return func() tea.Msg {
		return sendResultMsg{result: m.sync.Run(ctx, send)}
	}
}

// status shows text on the status line and schedules its removal.
func (m *Model) status(report func(string), text string) tea.Cmd {
	m.statusID++
	report(text)
	return errorMsgAfter(m.statusID, errorClearDuration)
}

func (m *Model) statusStyle() lipgloss.Style {
	switch m.statusMessageType {
	case errors.MessageTypeSuccess:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case errors.MessageTypeInfo:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	case errors.MessageTypeWarning:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	}
}

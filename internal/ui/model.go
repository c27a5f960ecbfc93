package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"shelfwise/internal/domain"
	"shelfwise/internal/eventbus"
	"shelfwise/internal/paging"
	"shelfwise/internal/prefs"
	"shelfwise/internal/ui/services/navigation"
	"shelfwise/internal/ui/state"
	"shelfwise/internal/ui/views"
)

// statusTimeout is how long transient status messages stay up
const statusTimeout = 3 * time.Second

// Options configures the search screen
type Options struct {
	Resource   domain.Resource
	WindowSize int
	Prefs      *prefs.Store
	Logger     logrus.FieldLogger
}

// Model represents the UI state
type Model struct {
	state    *state.AppState
	factory  SearchFactory
	searches map[domain.Resource]Search
	prefs    *prefs.Store
	log      logrus.FieldLogger

	windowSize int

	input    textinput.Model
	spinner  spinner.Model
	help     help.Model
	keys     keyMap
	nav      *navigation.Service
	renderer *views.Renderer
	pager    *Pager
}

// NewModel creates the search screen and starts the search for opts.Resource
func NewModel(factory SearchFactory, opts Options) (*Model, error) {
	if opts.Prefs == nil {
		opts.Prefs = prefs.NewStore(nil)
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	if opts.WindowSize < 0 {
		opts.WindowSize = paging.DefaultWindowSize
	}

	input := textinput.New()
	input.Prompt = "search › "
	input.Placeholder = "title, author, name, accession number…"
	input.Focus()

	m := &Model{
		state:      state.NewAppState(opts.Resource),
		factory:    factory,
		searches:   make(map[domain.Resource]Search),
		prefs:      opts.Prefs,
		log:        opts.Logger.WithField("component", "ui"),
		windowSize: opts.WindowSize,
		input:      input,
		spinner:    spinner.New(spinner.WithSpinner(spinner.Dot)),
		help:       help.New(),
		keys:       newKeyMap(),
		nav:        navigation.NewService(),
		renderer:   views.NewRenderer(),
		pager:      NewPager(),
	}
	m.nav.SetCountFunction(func() int {
		if s := m.active(); s != nil {
			return len(s.Snapshot().Rows)
		}
		return 0
	})

	if err := m.activate(m.state.Resource); err != nil {
		return nil, err
	}
	return m, nil
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.pager.SetTerminal(p)
}

// Resource returns the collection being browsed
func (m *Model) Resource() domain.Resource {
	return m.state.Resource
}

// Close stops every search the screen started
func (m *Model) Close() {
	for _, s := range m.searches {
		s.Close()
	}
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.state.SetSize(msg.Width, msg.Height)
		m.help.Width = msg.Width
		m.input.Width = msg.Width / 2
		m.nav.SetWindowHeight(msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case EventMsg:
		m.handleEvent(msg.Event)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case pagerMsg:
		m.state.InPagerMode = false
		if msg.err != nil {
			// Pager failed, log and fall back to popup
			m.log.WithError(msg.err).Warn("pager failed, showing popup")
			m.state.ShowPopup(msg.content)
			return m, m.flash(fmt.Sprintf("Pager failed: %v", msg.err))
		}
		return m, nil

	case clearStatusMsg:
		m.state.ClearStatus()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.state.HasPopup() {
		return m.handlePopupKey(msg)
	}
	active := m.active()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.nav.Navigate(navigation.DirectionUp)
	case key.Matches(msg, m.keys.Down):
		m.nav.Navigate(navigation.DirectionDown)

	case key.Matches(msg, m.keys.PrevPage):
		m.changePage(active, active.Snapshot().CurrentPage-1)
	case key.Matches(msg, m.keys.NextPage):
		m.changePage(active, active.Snapshot().CurrentPage+1)
	case key.Matches(msg, m.keys.FirstPage):
		m.changePage(active, 0)
	case key.Matches(msg, m.keys.LastPage):
		m.changePage(active, active.Snapshot().TotalPages-1)

	case key.Matches(msg, m.keys.Refresh):
		active.Refresh()

	case key.Matches(msg, m.keys.Open):
		content, ok := active.Detail(m.nav.Cursor())
		if !ok {
			return m, nil
		}
		return m, m.showPager(content)

	case key.Matches(msg, m.keys.NextResource):
		return m, m.switchTo(m.state.Resource.Next())
	case key.Matches(msg, m.keys.PrevResource):
		return m, m.switchTo(m.state.Resource.Prev())

	case key.Matches(msg, m.keys.ToggleSidebar):
		m.prefs.Toggle()
	case key.Matches(msg, m.keys.CollapseSidebar):
		m.prefs.ToggleCollapsed()

	case key.Matches(msg, m.keys.Help):
		return m, m.showPager(RenderHelpContent(m.keys))

	default:
		before := m.input.Value()
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if after := m.input.Value(); after != before {
			active.SetQuery(after)
			m.nav.Reset()
		}
		return m, cmd
	}
	return m, nil
}

// handlePopupKey scrolls or closes the popup; other keys are swallowed
func (m *Model) handlePopupKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.state.ClosePopup()
	case key.Matches(msg, m.keys.Up):
		m.scrollPopup(-1)
	case key.Matches(msg, m.keys.Down):
		m.scrollPopup(1)
	case key.Matches(msg, m.keys.PrevPage):
		m.scrollPopup(-views.VisiblePopupLines(m.state.Height))
	case key.Matches(msg, m.keys.NextPage):
		m.scrollPopup(views.VisiblePopupLines(m.state.Height))
	}
	return m, nil
}

func (m *Model) scrollPopup(delta int) {
	m.state.PopupScroll = views.ClampPopupScroll(m.state.PopupContent, m.state.PopupScroll+delta, m.state.Height)
}

// changePage requests page if the current result set has it
func (m *Model) changePage(s Search, page int) {
	if s.ChangePage(page) {
		m.nav.Reset()
	}
}

func (m *Model) handleEvent(event eventbus.DomainEvent) {
	switch e := event.(type) {
	case eventbus.SearchAppliedEvent:
		if e.Source == string(m.state.Resource) {
			m.nav.Reset()
		}
	case eventbus.SearchClearedEvent:
		if e.Source == string(m.state.Resource) {
			m.nav.Reset()
		}
	}
}

// switchTo shows another collection, starting its search on first use
func (m *Model) switchTo(res domain.Resource) tea.Cmd {
	if err := m.activate(res); err != nil {
		m.log.WithError(err).WithField("resource", res).Error("failed to open collection")
		return m.flash(err.Error())
	}
	return nil
}

func (m *Model) activate(res domain.Resource) error {
	s, ok := m.searches[res]
	if !ok {
		var err error
		s, err = m.factory(res)
		if err != nil {
			return fmt.Errorf("failed to start %s search: %w", res, err)
		}
		m.searches[res] = s
	}

	m.state.Resource = res
	m.input.SetValue(s.Snapshot().Query)
	m.input.CursorEnd()
	m.nav.Reset()
	return nil
}

func (m *Model) active() Search {
	return m.searches[m.state.Resource]
}

// showPager hands the terminal to the pager until the user leaves it
func (m *Model) showPager(content string) tea.Cmd {
	m.state.InPagerMode = true
	pager := m.pager
	return func() tea.Msg {
		return pagerMsg{content: content, err: pager.Show(content)}
	}
}

// flash shows msg on the status line for a while
func (m *Model) flash(msg string) tea.Cmd {
	m.state.SetStatus(msg)
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg { return clearStatusMsg{} })
}

// View renders the UI
func (m *Model) View() string {
	if m.state.InPagerMode {
		return ""
	}

	snap := m.active().Snapshot()
	nav := m.nav.State()

	return m.renderer.Render(views.ViewState{
		Width:            m.state.Width,
		Height:           m.state.Height,
		Resource:         m.state.Resource,
		SidebarOpen:      m.prefs.IsOpen(),
		SidebarCollapsed: m.prefs.IsCollapsed(),
		SearchInput:      m.input.View(),
		Query:            snap.Query,
		Columns:          views.Columns(m.state.Resource),
		Rows:             snap.Rows,
		StatusColumn:     views.StatusColumn(m.state.Resource),
		Cursor:           m.nav.Cursor(),
		ViewportOffset:   nav.ViewportOffset,
		ViewportHeight:   nav.ViewportHeight,
		CurrentPage:      snap.CurrentPage,
		TotalPages:       snap.TotalPages,
		WindowSize:       m.windowSize,
		Loading:          snap.Loading,
		Spinner:          m.spinner.View(),
		Err:              snap.Err,
		StatusMessage:    m.state.StatusMessage,
		HelpView:         m.help.View(m.keys),
		Popup:            m.state.PopupContent,
		PopupScroll:      m.state.PopupScroll,
	})
}

package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/listkit/internal/collection"
	"github.com/jask/listkit/internal/config"
	"github.com/jask/listkit/internal/database/repository"
)

// prefetchDistance is how close to the last row the cursor gets before the
// next page is requested.
const prefetchDistance = 3

// Searcher builds an unstarted list controller answering query.
type Searcher func(query string, onSelect collection.SelectFunc[repository.Transaction]) (*collection.Controller[repository.Transaction], error)

type lister interface {
	Load() bool
	LoadMore() bool
	Select(collection.IndexPath) bool
}

type listView struct {
	state  collection.State[repository.Transaction]
	rows   []collection.Positioned[repository.Transaction]
	cursor int
}

func (v *listView) apply(s collection.State[repository.Transaction]) {
	v.state = s
	v.rows = s.Flatten()
	if v.cursor >= len(v.rows) {
		v.cursor = max(len(v.rows)-1, 0)
	}
}

func (v *listView) current() (collection.Positioned[repository.Transaction], bool) {
	if v.cursor < 0 || v.cursor >= len(v.rows) {
		return collection.Positioned[repository.Transaction]{}, false
	}
	return v.rows[v.cursor], true
}

// App is the root model: a month-grouped feed, a search screen and a detail
// view for the selected transaction.
type App struct {
	ctx        context.Context
	ui         config.UIConfig
	loc        *time.Location
	categories map[string]string // id -> name

	keys    keyMap
	help    help.Model
	spinner spinner.Model
	query   textinput.Model

	send func(tea.Msg)

	feed     lister
	feedView listView

	searcher   Searcher
	search     lister
	searchView listView
	searchGen  int
	stopSearch context.CancelFunc
	typing     bool

	screen screen
	back   screen
	detail *selectedMsg
	status string
	width  int
	height int
}

func New(ui config.UIConfig, searcher Searcher, categories map[string]string) *App {
	q := textinput.New()
	q.Prompt = "/ "
	q.Placeholder = "merchant or description"
	q.CharLimit = 64
	if categories == nil {
		categories = map[string]string{}
	}
	return &App{
		ctx:        context.Background(),
		ui:         ui,
		loc:        ui.Location(),
		categories: categories,
		keys:       newKeyMap(),
		help:       help.New(),
		spinner:    spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(mutedStyle)),
		query:      q,
		searcher:   searcher,
	}
}

// Attach connects the feed and starts its first load. send is usually the
// running program's Send. The feed's Run loop is owned by the caller.
func (a *App) Attach(ctx context.Context, feed *collection.Sectioned[repository.Transaction], send func(tea.Msg)) {
	a.ctx = ctx
	a.send = send
	a.feed = feed
	feed.Observe(func(s collection.State[repository.Transaction]) {
		a.emit(stateMsg{screen: screenFeed, state: s})
	})
	feed.Load()
}

// Selected is the select callback for every list the app shows.
func (a *App) Selected(tx repository.Transaction, at collection.IndexPath) {
	a.emit(selectedMsg{tx: tx, at: at})
}

func (a *App) emit(msg tea.Msg) {
	if a.send != nil {
		a.send(msg)
	}
}

func (a *App) Init() tea.Cmd {
	return a.spinner.Tick
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.help.Width = msg.Width
		return a, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	case stateMsg:
		a.applyState(msg)
		return a, nil
	case selectedMsg:
		if a.screen != screenDetail {
			a.back = a.screen
		}
		a.detail = &msg
		a.screen = screenDetail
		return a, nil
	case searchFailedMsg:
		a.status = "search " + msg.query + ": " + msg.err.Error()
		return a, nil
	case tea.KeyMsg:
		if a.typing {
			return a.updateQuery(msg)
		}
		return a.updateKeys(msg)
	}
	return a, nil
}

func (a *App) applyState(msg stateMsg) {
	switch msg.screen {
	case screenSearch:
		if msg.gen != a.searchGen {
			return
		}
		a.searchView.apply(msg.state)
	default:
		a.feedView.apply(msg.state)
	}
}

func (a *App) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, a.keys.Quit) {
		a.stopSearchList()
		return a, tea.Quit
	}
	if a.screen == screenDetail {
		if key.Matches(msg, a.keys.Back) {
			a.screen = a.back
			a.detail = nil
		}
		return a, nil
	}

	a.status = ""
	switch {
	case key.Matches(msg, a.keys.Down):
		a.move(1)
	case key.Matches(msg, a.keys.Up):
		a.move(-1)
	case key.Matches(msg, a.keys.Refresh):
		if l, _ := a.active(); l != nil {
			l.Load()
		}
	case key.Matches(msg, a.keys.Select):
		l, v := a.active()
		if p, ok := v.current(); ok && l != nil {
			l.Select(p.At)
		}
	case key.Matches(msg, a.keys.Search):
		a.screen = screenSearch
		a.typing = true
		return a, a.query.Focus()
	case key.Matches(msg, a.keys.Back):
		if a.screen == screenSearch {
			a.closeSearch()
		}
	}
	return a, nil
}

func (a *App) updateQuery(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		a.stopSearchList()
		return a, tea.Quit
	case tea.KeyEnter:
		a.typing = false
		a.query.Blur()
		return a, a.runSearch(a.query.Value())
	case tea.KeyEsc:
		a.typing = false
		a.query.Blur()
		if a.search == nil {
			a.closeSearch()
		}
		return a, nil
	}
	var cmd tea.Cmd
	a.query, cmd = a.query.Update(msg)
	return a, cmd
}

// active returns the list under the cursor. The list is nil until it exists.
func (a *App) active() (lister, *listView) {
	if a.screen == screenSearch {
		return a.search, &a.searchView
	}
	return a.feed, &a.feedView
}

func (a *App) move(delta int) {
	l, v := a.active()
	if len(v.rows) == 0 {
		return
	}
	v.cursor = min(max(v.cursor+delta, 0), len(v.rows)-1)
	if delta > 0 && l != nil && len(v.rows)-1-v.cursor <= prefetchDistance {
		l.LoadMore()
	}
}

func (a *App) runSearch(query string) tea.Cmd {
	query = strings.TrimSpace(query)
	a.stopSearchList()
	a.searchGen++
	a.searchView = listView{}
	a.search = nil
	if query == "" || a.searcher == nil {
		return nil
	}

	c, err := a.searcher(query, a.Selected)
	if err != nil {
		return func() tea.Msg { return searchFailedMsg{query: query, err: err} }
	}
	ctx, cancel := context.WithCancel(a.ctx)
	a.stopSearch = cancel
	gen := a.searchGen
	c.Observe(func(s collection.State[repository.Transaction]) {
		a.emit(stateMsg{screen: screenSearch, gen: gen, state: s})
	})
	go func() { _ = c.Run(ctx) }()
	c.Load()
	a.search = c
	return nil
}

func (a *App) stopSearchList() {
	if a.stopSearch != nil {
		a.stopSearch()
		a.stopSearch = nil
	}
}

func (a *App) closeSearch() {
	a.stopSearchList()
	a.searchGen++
	a.search = nil
	a.searchView = listView{}
	a.query.SetValue("")
	a.screen = screenFeed
}

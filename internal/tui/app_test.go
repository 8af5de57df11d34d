package tui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/jask/listkit/internal/collection"
	"github.com/jask/listkit/internal/config"
	"github.com/jask/listkit/internal/database/repository"
)

type fakeList struct {
	mu       sync.Mutex
	loads    int
	more     int
	selected []collection.IndexPath
}

func (f *fakeList) Load() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loads++
	return true
}

func (f *fakeList) LoadMore() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.more++
	return true
}

func (f *fakeList) Select(at collection.IndexPath) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.selected = append(f.selected, at)
	return true
}

var testUI = config.UIConfig{DateFormat: "02/01", CurrencySymbol: "$", Timezone: "UTC"}

func press(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func tx(id string, month time.Month, day int, cents int64, desc string) repository.Transaction {
	return repository.Transaction{
		ID:          id,
		Date:        time.Date(2026, month, day, 9, 0, 0, 0, time.UTC),
		AmountCents: cents,
		Description: desc,
		Status:      "posted",
	}
}

func feedState(txs ...repository.Transaction) collection.State[repository.Transaction] {
	var sections []collection.Section[repository.Transaction]
	for _, t := range txs {
		id := t.Date.Format("2006-01")
		if n := len(sections); n > 0 && sections[n-1].ID == id {
			sections[n-1].Items = append(sections[n-1].Items, t)
			continue
		}
		sections = append(sections, collection.Section[repository.Transaction]{ID: id, Items: []repository.Transaction{t}})
	}
	return collection.State[repository.Transaction]{
		Data:     collection.DataState{Kind: collection.DataHasData},
		Sections: sections,
	}
}

func newTestApp(t *testing.T) (*App, *fakeList) {
	t.Helper()
	groceries := "cat-groceries"
	a := New(testUI, nil, map[string]string{groceries: "Food > Groceries"})
	feed := &fakeList{}
	a.feed = feed
	return a, feed
}

func TestFeedRendersMonthSections(t *testing.T) {
	t.Parallel()

	a, _ := newTestApp(t)
	merchant := "Woolworths"
	cat := "cat-groceries"
	first := tx("a", time.March, 3, -1250, "WOOLWORTHS 1234")
	first.MerchantName = &merchant
	first.CategoryID = &cat
	a.Update(stateMsg{screen: screenFeed, state: feedState(first, tx("b", time.February, 20, 350000, "SALARY ACME"))})

	view := a.View()
	require.Contains(t, view, "March 2026")
	require.Contains(t, view, "February 2026")
	require.Contains(t, view, "Woolworths")
	require.Contains(t, view, "Food > Groceries")
	require.Contains(t, view, "-$12.50")
	require.Contains(t, view, "$3500.00")
	require.Less(t, strings.Index(view, "March 2026"), strings.Index(view, "February 2026"))
}

func TestFeedStatesRender(t *testing.T) {
	t.Parallel()

	a, _ := newTestApp(t)
	s := collection.InitialState[repository.Transaction]()
	s.Loading = true
	a.Update(stateMsg{screen: screenFeed, state: s})
	require.Contains(t, a.View(), "Loading...")

	a.Update(stateMsg{screen: screenFeed, state: collection.State[repository.Transaction]{Data: collection.DataState{Kind: collection.DataEmpty}}})
	require.Contains(t, a.View(), "No transactions yet")

	failed := feedState(tx("a", time.March, 1, -100, "X"))
	failed.Data = collection.DataState{Kind: collection.DataError, Err: errors.New("disk on fire")}
	failed.EndOfData = true
	a.Update(stateMsg{screen: screenFeed, state: failed})
	view := a.View()
	require.Contains(t, view, "Load failed: disk on fire")
	require.Contains(t, view, "end of list")
}

func TestCursorNearEndRequestsNextPage(t *testing.T) {
	t.Parallel()

	a, feed := newTestApp(t)
	var txs []repository.Transaction
	for i := 0; i < 6; i++ {
		txs = append(txs, tx(string(rune('a'+i)), time.March, 20-i, -100, "SHOP"))
	}
	a.Update(stateMsg{screen: screenFeed, state: feedState(txs...)})

	a.Update(press("j"))
	require.Equal(t, 1, a.feedView.cursor)
	require.Zero(t, feed.more)

	a.Update(press("j"))
	require.Equal(t, 2, a.feedView.cursor)
	require.Equal(t, 1, feed.more)

	a.Update(press("k"))
	require.Equal(t, 1, a.feedView.cursor)
	require.Equal(t, 1, feed.more)

	for i := 0; i < 10; i++ {
		a.Update(press("j"))
	}
	require.Equal(t, 5, a.feedView.cursor)
}

func TestRefreshAndSelect(t *testing.T) {
	t.Parallel()

	a, feed := newTestApp(t)
	a.Update(stateMsg{screen: screenFeed, state: feedState(
		tx("a", time.March, 2, -100, "ONE"),
		tx("b", time.February, 2, -200, "TWO"),
	)})

	a.Update(press("r"))
	require.Equal(t, 1, feed.loads)

	a.Update(press("j"))
	a.Update(press("enter"))
	require.Equal(t, []collection.IndexPath{{Section: 1, Row: 0}}, feed.selected)
	require.Equal(t, screenFeed, a.screen)
}

func TestSelectedShowsDetail(t *testing.T) {
	t.Parallel()

	a, _ := newTestApp(t)
	a.Update(selectedMsg{tx: tx("abc", time.March, 2, -4550, "DAN MURPHYS"), at: collection.IndexPath{Section: 0, Row: 3}})
	require.Equal(t, screenDetail, a.screen)
	view := a.View()
	require.Contains(t, view, "DAN MURPHYS")
	require.Contains(t, view, "-$45.50")
	require.Contains(t, view, "section 1, row 4")
	require.Contains(t, view, "Uncategorised")

	a.Update(press("j"))
	require.Equal(t, screenDetail, a.screen)
	a.Update(press("esc"))
	require.Equal(t, screenFeed, a.screen)
	require.Nil(t, a.detail)
}

func TestSearchRunsControllerPerQuery(t *testing.T) {
	t.Parallel()

	msgs := make(chan tea.Msg, 64)
	var queries []string
	searcher := func(query string, onSelect collection.SelectFunc[repository.Transaction]) (*collection.Controller[repository.Transaction], error) {
		queries = append(queries, query)
		return collection.New(collection.Config[repository.Transaction]{
			Name: "search",
			Loader: func(context.Context) ([]repository.Transaction, error) {
				return []repository.Transaction{tx("hit-"+query, time.March, 1, -100, strings.ToUpper(query))}, nil
			},
			OnSelect: onSelect,
			MaxCount: 10,
		})
	}
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	a := New(testUI, searcher, nil)
	a.ctx = ctx
	a.send = func(m tea.Msg) { msgs <- m }
	a.feed = &fakeList{}

	a.Update(press("/"))
	require.True(t, a.typing)
	for _, r := range "woo" {
		a.Update(press(string(r)))
	}
	a.Update(press("enter"))
	require.False(t, a.typing)
	require.Equal(t, []string{"woo"}, queries)

	// feed messages into the model until the result shows up
	deadline := time.After(2 * time.Second)
	for len(a.searchView.rows) == 0 {
		select {
		case m := <-msgs:
			a.Update(m)
		case <-deadline:
			t.Fatal("no search results")
		}
	}
	require.Equal(t, "hit-woo", a.searchView.rows[0].Item.ID)
	require.Contains(t, a.View(), "WOO")

	// a reply tagged with an older generation is ignored
	stale := feedState(tx("old", time.March, 1, -1, "OLD"))
	a.Update(stateMsg{screen: screenSearch, gen: a.searchGen - 1, state: stale})
	require.Equal(t, "hit-woo", a.searchView.rows[0].Item.ID)

	// selecting goes through the controller and comes back as a message
	a.Update(press("enter"))
	for a.screen != screenDetail {
		select {
		case m := <-msgs:
			a.Update(m)
		case <-deadline:
			t.Fatal("selection never arrived")
		}
	}
	require.Equal(t, "hit-woo", a.detail.tx.ID)

	a.Update(press("esc"))
	require.Equal(t, screenSearch, a.screen)
	a.Update(press("esc"))
	require.Equal(t, screenFeed, a.screen)
	require.Nil(t, a.search)
	require.Empty(t, a.query.Value())
}

func TestSearchEscapeWithoutQueryReturnsToFeed(t *testing.T) {
	t.Parallel()

	a, _ := newTestApp(t)
	a.Update(press("/"))
	require.Equal(t, screenSearch, a.screen)
	a.Update(press("q"))
	require.Equal(t, "q", a.query.Value())
	a.Update(press("esc"))
	require.Equal(t, screenFeed, a.screen)
}

func TestHelpers(t *testing.T) {
	t.Parallel()

	require.Equal(t, "-$0.05", formatAmount(-5, "$"))
	require.Equal(t, "€12.00", formatAmount(1200, "€"))
	require.Equal(t, "March 2026", monthTitle("2026-03"))
	require.Equal(t, "", monthTitle(""))
	require.Equal(t, "abc…", truncate("abcdef", 4))
	require.Equal(t, []string{"c", "d", "e"}, window([]string{"a", "b", "c", "d", "e"}, 4, 3))
	require.Equal(t, []string{"a", "b"}, window([]string{"a", "b"}, 1, 0))
}

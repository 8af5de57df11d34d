package tui

import (
	"github.com/jask/listkit/internal/collection"
	"github.com/jask/listkit/internal/database/repository"
)

type screen int

const (
	screenFeed screen = iota
	screenSearch
	screenDetail
)

// stateMsg carries a list snapshot from a controller into the program.
// gen tags search results so answers to an older query are dropped.
type stateMsg struct {
	screen screen
	gen    int
	state  collection.State[repository.Transaction]
}

type selectedMsg struct {
	tx repository.Transaction
	at collection.IndexPath
}

type searchFailedMsg struct {
	query string
	err   error
}

package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/listkit/internal/config"
	"github.com/jask/listkit/internal/database"
	"github.com/jask/listkit/internal/database/repository"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func txCount(t *testing.T, path string) int {
	t.Helper()
	db, err := database.Open(path)
	require.NoError(t, err)
	defer db.Close()
	n, err := repository.NewTransactionRepo(db).Count(context.Background(), repository.TransactionFilters{})
	require.NoError(t, err)
	return n
}

func TestSeedAndReset(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("LISTKIT_CONFIG", filepath.Join(dir, "missing.toml"))
	dbPath := filepath.Join(dir, "data", "listkit.db")

	out, err := execute(t, "seed", "--db", dbPath, "--count", "12")
	require.NoError(t, err)
	require.Contains(t, out, "seeded 12 transactions (12 total)")
	require.Equal(t, 12, txCount(t, dbPath))

	out, err = execute(t, "seed", "--db", dbPath, "--count", "3")
	require.NoError(t, err)
	require.Contains(t, out, "seeded 3 transactions (15 total)")

	_, err = execute(t, "reset", "--db", dbPath)
	require.ErrorContains(t, err, "--yes")
	require.Equal(t, 15, txCount(t, dbPath))

	out, err = execute(t, "reset", "--db", dbPath, "--yes")
	require.NoError(t, err)
	require.Contains(t, out, "database reset")
	require.Zero(t, txCount(t, dbPath))
}

func TestSeedRejectsBadCount(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("LISTKIT_CONFIG", filepath.Join(dir, "missing.toml"))

	_, err := execute(t, "seed", "--db", filepath.Join(dir, "x.db"), "--count", "0")
	require.ErrorContains(t, err, "--count")
}

func TestShow(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("LISTKIT_CONFIG", filepath.Join(dir, "missing.toml"))
	dbPath := filepath.Join(dir, "listkit.db")

	_, err := execute(t, "seed", "--db", dbPath, "--count", "4")
	require.NoError(t, err)

	db, err := database.Open(dbPath)
	require.NoError(t, err)
	txs, err := repository.NewTransactionRepo(db).Page(context.Background(), repository.TransactionFilters{}, 0, 1)
	require.NoError(t, err)
	require.NoError(t, db.Close())
	require.Len(t, txs, 1)

	out, err := execute(t, "show", "--db", dbPath, txs[0].ID)
	require.NoError(t, err)
	require.Contains(t, out, txs[0].ID)
	require.Contains(t, out, txs[0].Label())
	require.Contains(t, out, txs[0].Status)

	_, err = execute(t, "show", "--db", dbPath, "nope")
	require.ErrorContains(t, err, "not found")
}

func TestConfigSave(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	path := filepath.Join(dir, "conf", "config.toml")
	t.Setenv("LISTKIT_CONFIG", path)
	dbPath := filepath.Join(dir, "elsewhere.db")

	out, err := execute(t, "config", "--db", dbPath)
	require.NoError(t, err)
	require.Contains(t, out, dbPath)
	_, err = os.Stat(path)
	require.ErrorIs(t, err, os.ErrNotExist)

	out, err = execute(t, "config", "--db", dbPath, "--save")
	require.NoError(t, err)
	require.Contains(t, out, "wrote "+path)

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, dbPath, cfg.Database.Path)
	require.Equal(t, 5*time.Minute, cfg.Cache.TTL)
}

func TestFeedFilters(t *testing.T) {
	t.Parallel()

	f, err := (&RootOptions{}).feedFilters()
	require.NoError(t, err)
	require.Equal(t, repository.TransactionFilters{}, f)

	f, err = (&RootOptions{Status: "pending", Month: "2026-02"}).feedFilters()
	require.NoError(t, err)
	require.Equal(t, "pending", f.Status)
	require.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), f.Month)

	_, err = (&RootOptions{Status: "void"}).feedFilters()
	require.ErrorContains(t, err, "--status")

	_, err = (&RootOptions{Month: "Feb 2026"}).feedFilters()
	require.ErrorContains(t, err, "--month")
}

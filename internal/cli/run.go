package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/listkit/internal/cache"
	"github.com/jask/listkit/internal/collection"
	"github.com/jask/listkit/internal/database/repository"
	"github.com/jask/listkit/internal/service"
	"github.com/jask/listkit/internal/tui"
	"github.com/jask/listkit/internal/workers"
)

const feedCacheKey = "feed"

func runTUI(ctx context.Context, opts *RootOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	filters, err := opts.feedFilters()
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// the terminal owns stdout and stderr while the program runs
	if err := os.MkdirAll(filepath.Dir(opts.cfg.Log.Path), 0o755); err != nil {
		return fmt.Errorf("mkdir log dir: %w", err)
	}
	logFile, err := tea.LogToFile(opts.cfg.Log.Path, "listkit")
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer logFile.Close()
	slog.SetDefault(slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: opts.logLevel()})))

	db, err := opts.openDatabase(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	cfg := opts.cfg
	txRepo := repository.NewTransactionRepo(db)
	names, err := repository.NewCategoryRepo(db).Names(ctx)
	if err != nil {
		return fmt.Errorf("load categories: %w", err)
	}

	pool := workers.New(workers.DefaultLimit)
	feedSvc := &service.FeedService{Transactions: txRepo, Filters: filters, PageSize: cfg.Feed.PageSize}
	searchSvc := &service.SearchService{Transactions: txRepo}

	searcher := func(query string, onSelect collection.SelectFunc[repository.Transaction]) (*collection.Controller[repository.Transaction], error) {
		return collection.New(collection.Config[repository.Transaction]{
			Name:     "search",
			Loader:   searchSvc.Loader(query),
			OnSelect: onSelect,
			MaxCount: cfg.Feed.SearchLimit,
			Pool:     pool,
		})
	}
	app := tui.New(cfg.UI, searcher, names)

	feedCfg := collection.Config[repository.Transaction]{
		Name:            feedCacheKey,
		Loader:          feedSvc.Load,
		PageLoader:      feedSvc.LoadPage,
		OnSelect:        app.Selected,
		// pages are flat table offsets, months only group them
		Offset:          collection.TotalOffset[repository.Transaction],
		MaxCount:        cfg.Feed.MaxCount,
		Pool:            pool,
		RevalidateDelay: cfg.Cache.RevalidateDelay,
	}
	// the snapshot holds the unfiltered feed
	if cfg.Cache.Enabled && filters == (repository.TransactionFilters{}) {
		snapshots, err := cache.New[repository.Transaction](repository.NewSnapshotRepo(db), feedCacheKey, cfg.Cache.TTL)
		if err != nil {
			return err
		}
		feedCfg.Cache = snapshots
	}
	feed, err := collection.NewSectioned(feedCfg, service.GroupByMonth(cfg.UI.Location()))
	if err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = feed.Run(runCtx)
	}()

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	app.Attach(runCtx, feed, p.Send)
	slog.Info("listkit started", "db", cfg.Database.Path, "cache", feedCfg.Cache != nil, "status", filters.Status, "month", opts.Month)

	_, runErr := p.Run()
	cancel()
	<-done
	pool.Wait()
	if runErr != nil && ctx.Err() == nil {
		return fmt.Errorf("tui: %w", runErr)
	}
	return nil
}

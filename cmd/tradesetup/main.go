package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dreamakashk/TradeSetup/internal/config"
	"github.com/dreamakashk/TradeSetup/internal/notifier"
	"github.com/dreamakashk/TradeSetup/internal/scheduler"
	"github.com/dreamakashk/TradeSetup/internal/source"
	"github.com/dreamakashk/TradeSetup/internal/state"
	"github.com/dreamakashk/TradeSetup/internal/store"
	"github.com/dreamakashk/TradeSetup/internal/syncer"
	"github.com/dreamakashk/TradeSetup/internal/universe"
)

const defaultConfigPath = "configs/config.yaml"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	os.Exit(run())
}

func run() int {
	mode := flag.String("mode", "update-all", "update-all | single | recalculate-all | serve")
	symbol := flag.String("symbol", "", "stock symbol for single mode (e.g. RELIANCE.NS)")
	cfgPath := flag.String("config", defaultConfigPath, "configuration file path")
	flag.Parse()

	log.Println("[INFO] TradeSetup indicators pipeline starting...")

	path := *cfgPath
	if path == defaultConfigPath {
		if v := os.Getenv("CONFIG_PATH"); v != "" {
			path = v
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		log.Printf("[FATAL] load config: %v", err)
		return 1
	}
	if err := cfg.Validate(); err != nil {
		log.Printf("[FATAL] config validation: %v", err)
		return 1
	}

	// Price source
	var src source.PriceSource
	switch cfg.DataSource.Provider {
	case "csv":
		src = source.NewCSVSource(cfg.DataSource.DataDir)
	case "mock":
		src = &source.MockSource{}
	default:
		src = source.NewYahooSource(cfg.Proxy)
	}
	log.Printf("[INFO] price source: %s", src.Name())

	// Result sink
	var st store.Store
	if cfg.Sync.DryRun {
		log.Println("[INFO] dry run: indicators will be computed but not persisted")
		st = store.NewNoopStore()
	} else {
		sq, err := store.NewSQLiteStore(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[FATAL] open store: %v", err)
			return 1
		}
		st = sq
	}
	defer st.Close()

	runner := syncer.NewRunner(syncer.NewController(src, st), cfg.Sync.Workers)

	sm, err := state.NewManager(cfg.StateFile)
	if err != nil {
		log.Printf("[FATAL] init run state: %v", err)
		return 1
	}

	var n notifier.Notifier = notifier.NewNoopNotifier()
	if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != "" {
		n = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
	}

	// Graceful shutdown: stop scheduling new symbols, let in-flight symbol
	// transactions finish or roll back.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch *mode {
	case "single":
		if *symbol == "" {
			log.Println("[FATAL] -symbol is required for single mode")
			return 1
		}
		return runBatch(ctx, runner, sm, n, []string{*symbol}, syncer.ModeIncremental)

	case "update-all", "recalculate-all":
		symbols, err := loadUniverse(cfg)
		if err != nil {
			log.Printf("[FATAL] %v", err)
			return 1
		}
		m := syncer.ModeIncremental
		if *mode == "recalculate-all" {
			m = syncer.ModeFullRecalculate
		}
		return runBatch(ctx, runner, sm, n, symbols, m)

	case "serve":
		symbols, err := loadUniverse(cfg)
		if err != nil {
			log.Printf("[FATAL] %v", err)
			return 1
		}
		sched := scheduler.NewScheduler(ctx, runner, symbols, sm, n)
		if err := sched.Register(cfg.Schedule.DailyCron); err != nil {
			log.Printf("[FATAL] register cron task: %v", err)
			return 1
		}
		sched.Start()
		defer sched.Stop()

		if tg, ok := n.(*notifier.TelegramNotifier); ok {
			go tg.StartPolling(ctx, sched.HandleCommand)
			log.Println("[INFO] Telegram polling started")
		}
		if os.Getenv("RUN_ON_START") == "true" {
			log.Println("[INFO] RUN_ON_START enabled, executing incremental sync now")
			go sched.RunBatch(syncer.ModeIncremental)
		}

		log.Println("[INFO] TradeSetup is running. Press Ctrl+C to stop.")
		<-ctx.Done()
		log.Println("[INFO] shutdown signal received, stopping...")
		return 0

	default:
		log.Printf("[FATAL] unknown mode %q", *mode)
		return 1
	}
}

func runBatch(ctx context.Context, runner *syncer.Runner, sm *state.Manager, n notifier.Notifier, symbols []string, mode syncer.Mode) int {
	rep := runner.Run(ctx, symbols, mode)
	if err := sm.RecordRun(&rep); err != nil {
		log.Printf("[ERROR] record run state: %v", err)
	}
	if err := n.Send(notifier.FormatRunReport(&rep)); err != nil {
		log.Printf("[ERROR] send run report: %v", err)
	}
	if rep.Failed > 0 {
		return 1
	}
	return 0
}

func loadUniverse(cfg *config.Config) ([]string, error) {
	symbols, err := universe.Load(cfg.DataSource.SymbolFile)
	if err != nil {
		return nil, err
	}
	log.Printf("[INFO] loaded %d symbols from %s", len(symbols), cfg.DataSource.SymbolFile)
	return universe.ApplySuffix(symbols, cfg.DataSource.SymbolSuffix), nil
}

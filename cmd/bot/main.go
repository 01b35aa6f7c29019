package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/rizkyfauzi/alpha-airdrop-bot/internal/config"
	"github.com/rizkyfauzi/alpha-airdrop-bot/internal/fetcher"
	"github.com/rizkyfauzi/alpha-airdrop-bot/internal/ledger"
	"github.com/rizkyfauzi/alpha-airdrop-bot/internal/notifier"
	"github.com/rizkyfauzi/alpha-airdrop-bot/internal/poller"
)

func main() {
	godotenv.Load()
	slog.Info("Starting Binance Alpha airdrop monitor...")

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Critical error loading configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, cleanup, err := openStore(ctx, cfg)
	if err != nil {
		slog.Error("Critical error initializing ledger store", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	book := ledger.Open(ctx, store)

	fetch, err := fetcher.NewNitter(cfg.NitterBaseURL, cfg.ExtraSearch)
	if err != nil {
		slog.Error("Critical error initializing fetcher", "error", err)
		os.Exit(1)
	}

	notify, err := notifier.NewTelegram(cfg.TelegramBotToken, cfg.TelegramChannelID, cfg.TelegramEnabled)
	if err != nil {
		// The monitor keeps running without the sink; ledger entries still
		// accumulate so nothing is replayed once Telegram comes back.
		slog.Warn("Continuing without Telegram integration", "error", err)
		notify, _ = notifier.NewTelegram("", "", false)
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
		sig := <-sigCh
		slog.Info("Received signal, shutting down...", "signal", sig)
		cancel()
	}()

	poller.New(fetch, notify, book, cfg).Run(ctx)
	slog.Info("Monitor stopped.")
}

// openStore selects the ledger backend: Firestore when a project is
// configured, local JSON file otherwise.
func openStore(ctx context.Context, cfg *config.Config) (ledger.Store, func(), error) {
	if cfg.ProjectID != "" {
		fs, err := ledger.NewFirestoreStore(ctx, cfg.ProjectID)
		if err != nil {
			return nil, nil, err
		}
		slog.Info("Ledger backend: Firestore", "project", cfg.ProjectID)
		return fs, func() { fs.Close() }, nil
	}

	file, err := ledger.NewFileStore(cfg.LedgerFile)
	if err != nil {
		return nil, nil, err
	}
	slog.Info("Ledger backend: JSON file", "path", cfg.LedgerFile)
	return file, func() {}, nil
}

package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"
)

type Config struct {
	MonitorUsername  string
	PollInterval     time.Duration
	MaxTweetsToCheck int
	ExtraSearch      string

	TelegramBotToken  string
	TelegramChannelID string
	TelegramEnabled   bool

	LedgerFile string
	ProjectID  string // non-empty selects the Firestore ledger backend

	NitterBaseURL string

	TargetTZOffset int
	TargetTZLabel  string
}

func Load() (*Config, error) {
	username := os.Getenv("MONITOR_USERNAME")
	if username == "" {
		username = "BinanceWallet"
	}

	pollIntervalStr := os.Getenv("POLL_INTERVAL")
	if pollIntervalStr == "" {
		pollIntervalStr = "5m"
	}
	pollInterval, err := time.ParseDuration(pollIntervalStr)
	if err != nil {
		return nil, fmt.Errorf("invalid POLL_INTERVAL %q: %w", pollIntervalStr, err)
	}

	maxTweets := 10
	if v := os.Getenv("MAX_TWEETS_TO_CHECK"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			return nil, fmt.Errorf("invalid MAX_TWEETS_TO_CHECK %q", v)
		}
		maxTweets = parsed
	}

	extraSearch := os.Getenv("EXTRA_SEARCH")
	if extraSearch == "" {
		extraSearch = "Binance Alpha Points"
	}

	botToken := os.Getenv("TELEGRAM_BOT_TOKEN")
	channelID := os.Getenv("TELEGRAM_CHANNEL_ID")

	telegramEnabled := true
	if v := os.Getenv("TELEGRAM_ENABLED"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_ENABLED %q: %w", v, err)
		}
		telegramEnabled = parsed
	}
	if telegramEnabled && (botToken == "" || channelID == "") {
		slog.Warn("TELEGRAM_BOT_TOKEN or TELEGRAM_CHANNEL_ID not set, Telegram posting disabled")
		telegramEnabled = false
	}

	ledgerFile := os.Getenv("LEDGER_FILE")
	if ledgerFile == "" {
		ledgerFile = "airdrop_tweets.json"
	}

	nitterBaseURL := os.Getenv("NITTER_BASE_URL")
	if nitterBaseURL == "" {
		nitterBaseURL = "https://nitter.net"
	}

	tzOffset := 7
	if v := os.Getenv("TARGET_TZ_OFFSET"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid TARGET_TZ_OFFSET %q: %w", v, err)
		}
		tzOffset = parsed
	}
	tzLabel := os.Getenv("TARGET_TZ_LABEL")
	if tzLabel == "" {
		tzLabel = "WIB"
	}

	return &Config{
		MonitorUsername:   username,
		PollInterval:      pollInterval,
		MaxTweetsToCheck:  maxTweets,
		ExtraSearch:       extraSearch,
		TelegramBotToken:  botToken,
		TelegramChannelID: channelID,
		TelegramEnabled:   telegramEnabled,
		LedgerFile:        ledgerFile,
		ProjectID:         os.Getenv("GOOGLE_CLOUD_PROJECT"),
		NitterBaseURL:     nitterBaseURL,
		TargetTZOffset:    tzOffset,
		TargetTZLabel:     tzLabel,
	}, nil
}

package env

import (
	"digit_slot/internal/config"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	walletModeEnvName     = "WALLET_MODE"
	walletBaseURLEnvName  = "WALLET_BASE_URL"
	walletTimeoutEnvName  = "WALLET_TIMEOUT"
	reportPoolSizeEnvName = "REPORT_POOL_SIZE"
	initialBalanceEnvName = "WALLET_INITIAL_BALANCE"

	defaultWalletTimeout  = 5 * time.Second
	defaultReportPoolSize = 64
	defaultInitialBalance = 1000
)

type walletConfig struct {
	mode           string
	baseURL        string
	timeout        time.Duration
	poolSize       int
	initialBalance int
}

// NewWalletConfig Режим кошелька: local (Postgres) или remote (REST бэкенд)
func NewWalletConfig() (config.WalletConfig, error) {
	mode := os.Getenv(walletModeEnvName)
	if len(mode) == 0 {
		mode = config.WalletModeLocal
	}
	if mode != config.WalletModeLocal && mode != config.WalletModeRemote {
		return nil, fmt.Errorf("unknown wallet mode %q", mode)
	}

	baseURL := os.Getenv(walletBaseURLEnvName)
	if mode == config.WalletModeRemote && len(baseURL) == 0 {
		return nil, errors.New("wallet base url not found")
	}

	timeout := defaultWalletTimeout
	if raw := os.Getenv(walletTimeoutEnvName); len(raw) != 0 {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid wallet timeout: %w", err)
		}
		timeout = d
	}

	poolSize := defaultReportPoolSize
	if raw := os.Getenv(reportPoolSizeEnvName); len(raw) != 0 {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid report pool size %q", raw)
		}
		poolSize = n
	}

	initialBalance := defaultInitialBalance
	if raw := os.Getenv(initialBalanceEnvName); len(raw) != 0 {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid initial balance %q", raw)
		}
		initialBalance = n
	}

	return &walletConfig{
		mode:           mode,
		baseURL:        baseURL,
		timeout:        timeout,
		poolSize:       poolSize,
		initialBalance: initialBalance,
	}, nil
}

func (cfg *walletConfig) Mode() string {
	return cfg.mode
}

func (cfg *walletConfig) BaseURL() string {
	return cfg.baseURL
}

func (cfg *walletConfig) Timeout() time.Duration {
	return cfg.timeout
}

func (cfg *walletConfig) ReportPoolSize() int {
	return cfg.poolSize
}

func (cfg *walletConfig) InitialBalance() int {
	return cfg.initialBalance
}

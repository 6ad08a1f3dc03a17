package config

import (
	"time"

	"github.com/joho/godotenv"
)

func Load(path string) error {
	err := godotenv.Load(path)
	if err != nil {
		return err
	}
	return nil
}

// SlotConfig Таблица выплат и параметры регулировки RTP
type SlotConfig interface {
	PayoutExactDigit() int
	PayoutDigit5() int
	PayoutSmallBig() int
	PayoutOddEven() int

	RTPTarget() float64
	RTPWindow() float64
	SteerProbability() float64
	RTPWindowSize() int

	HistorySize() int
	StreakThreshold() int
	DefaultBet() int
	// BetDenominations пустой список - разрешена любая сумма
	BetDenominations() []int
}

// RoundConfig Длительности фаз раунда
type RoundConfig interface {
	PreGameSeconds() int
	BettingSeconds() int
	DisplayHold() time.Duration
	TickInterval() time.Duration
}

type JackpotConfig interface {
	Amount() int
	// Schedule cron-выражение времени розыгрыша джекпота
	Schedule() string
}

type WalletConfig interface {
	Mode() string
	BaseURL() string
	Timeout() time.Duration
	ReportPoolSize() int
	// InitialBalance стартовый баланс нового игрока в локальном кошельке
	InitialBalance() int
}

type HTTPConfig interface {
	Address() string
}

type PGConfig interface {
	DSN() string
}

type JWTConfig interface {
	AccessTokenSecretKey() []byte
	AccessTokenDuration() time.Duration
}

const (
	WalletModeLocal  = "local"
	WalletModeRemote = "remote"
)

package env

import (
	"digit_slot/internal/config"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Значения по умолчанию, если ключ в config.yaml не задан
const (
	defaultPayoutExactDigit = 10
	defaultPayoutDigit5     = 15
	defaultPayoutSmallBig   = 2
	defaultPayoutOddEven    = 2

	defaultRTPTarget        = 96.5
	defaultRTPWindow        = 3.0
	defaultSteerProbability = 0.10
	defaultRTPWindowSize    = 500

	defaultHistorySize     = 5
	defaultStreakThreshold = 2
	defaultBet             = 10

	defaultPreGameSeconds = 5
	defaultBettingSeconds = 10
	defaultDisplayHold    = 2000 * time.Millisecond
	defaultTickInterval   = time.Second

	defaultJackpotAmount   = 5000
	defaultJackpotSchedule = "0 10,13,21 * * *"
)

type gameFile struct {
	Slot struct {
		Payouts struct {
			ExactDigit *int `yaml:"exact_digit"`
			Digit5     *int `yaml:"digit_5"`
			SmallBig   *int `yaml:"small_big"`
			OddEven    *int `yaml:"odd_even"`
		} `yaml:"payouts"`
		RTP struct {
			Target           *float64 `yaml:"target"`
			Window           *float64 `yaml:"window"`
			SteerProbability *float64 `yaml:"steer_probability"`
			WindowSize       *int     `yaml:"window_size"`
		} `yaml:"rtp"`
		HistorySize      *int  `yaml:"history_size"`
		StreakThreshold  *int  `yaml:"streak_threshold"`
		DefaultBet       *int  `yaml:"default_bet"`
		BetDenominations []int `yaml:"bet_denominations"`
	} `yaml:"slot"`

	Round struct {
		PreGameSeconds *int   `yaml:"pre_game_seconds"`
		BettingSeconds *int   `yaml:"betting_seconds"`
		DisplayHold    string `yaml:"display_hold"`
		Tick           string `yaml:"tick"`
	} `yaml:"round"`

	Jackpot struct {
		Amount   *int   `yaml:"amount"`
		Schedule string `yaml:"schedule"`
	} `yaml:"jackpot"`
}

// readGameFile читает config.yaml. Отсутствующий файл - все значения по умолчанию
func readGameFile(path string) (gameFile, error) {
	var f gameFile
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return f, nil
		}
		return f, err
	}
	if err := yaml.Unmarshal(b, &f); err != nil {
		return f, fmt.Errorf("parse %s: %w", path, err)
	}
	return f, nil
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

func floatOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func durationOr(raw string, def time.Duration) (time.Duration, error) {
	if raw == "" {
		return def, nil
	}
	return time.ParseDuration(raw)
}

type slotConfig struct {
	payoutExactDigit int
	payoutDigit5     int
	payoutSmallBig   int
	payoutOddEven    int

	rtpTarget        float64
	rtpWindow        float64
	steerProbability float64
	rtpWindowSize    int

	historySize      int
	streakThreshold  int
	defaultBet       int
	betDenominations []int
}

// NewSlotConfigFromYAML Таблица выплат и регулировка RTP из секции slot
func NewSlotConfigFromYAML(path string) (config.SlotConfig, error) {
	f, err := readGameFile(path)
	if err != nil {
		return nil, err
	}
	s := f.Slot

	cfg := &slotConfig{
		payoutExactDigit: intOr(s.Payouts.ExactDigit, defaultPayoutExactDigit),
		payoutDigit5:     intOr(s.Payouts.Digit5, defaultPayoutDigit5),
		payoutSmallBig:   intOr(s.Payouts.SmallBig, defaultPayoutSmallBig),
		payoutOddEven:    intOr(s.Payouts.OddEven, defaultPayoutOddEven),

		rtpTarget:        floatOr(s.RTP.Target, defaultRTPTarget),
		rtpWindow:        floatOr(s.RTP.Window, defaultRTPWindow),
		steerProbability: floatOr(s.RTP.SteerProbability, defaultSteerProbability),
		rtpWindowSize:    intOr(s.RTP.WindowSize, defaultRTPWindowSize),

		historySize:      intOr(s.HistorySize, defaultHistorySize),
		streakThreshold:  intOr(s.StreakThreshold, defaultStreakThreshold),
		defaultBet:       intOr(s.DefaultBet, defaultBet),
		betDenominations: append([]int(nil), s.BetDenominations...),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *slotConfig) validate() error {
	if cfg.payoutExactDigit <= 0 || cfg.payoutDigit5 <= 0 || cfg.payoutSmallBig <= 0 || cfg.payoutOddEven <= 0 {
		return errors.New("payout multipliers must be positive")
	}
	if cfg.rtpTarget <= 0 {
		return errors.New("rtp target must be positive")
	}
	if cfg.rtpWindow < 0 {
		return errors.New("rtp window must not be negative")
	}
	if cfg.steerProbability < 0 || cfg.steerProbability > 1 {
		return errors.New("steer probability must be in 0..1")
	}
	if cfg.rtpWindowSize <= 0 {
		return errors.New("rtp window size must be positive")
	}
	if cfg.historySize <= 0 {
		return errors.New("history size must be positive")
	}
	if cfg.streakThreshold <= 0 {
		return errors.New("streak threshold must be positive")
	}
	if cfg.defaultBet <= 0 {
		return errors.New("default bet must be positive")
	}

	if len(cfg.betDenominations) > 0 {
		found := false
		for _, d := range cfg.betDenominations {
			if d <= 0 {
				return fmt.Errorf("bet denomination %d must be positive", d)
			}
			if d == cfg.defaultBet {
				found = true
			}
		}
		// Ставка по умолчанию должна быть из списка номиналов
		if !found {
			cfg.defaultBet = cfg.betDenominations[0]
		}
	}
	return nil
}

func (cfg *slotConfig) PayoutExactDigit() int { return cfg.payoutExactDigit }

func (cfg *slotConfig) PayoutDigit5() int { return cfg.payoutDigit5 }

func (cfg *slotConfig) PayoutSmallBig() int { return cfg.payoutSmallBig }

func (cfg *slotConfig) PayoutOddEven() int { return cfg.payoutOddEven }

func (cfg *slotConfig) RTPTarget() float64 { return cfg.rtpTarget }

func (cfg *slotConfig) RTPWindow() float64 { return cfg.rtpWindow }

func (cfg *slotConfig) SteerProbability() float64 { return cfg.steerProbability }

func (cfg *slotConfig) RTPWindowSize() int { return cfg.rtpWindowSize }

func (cfg *slotConfig) HistorySize() int { return cfg.historySize }

func (cfg *slotConfig) StreakThreshold() int { return cfg.streakThreshold }

func (cfg *slotConfig) DefaultBet() int { return cfg.defaultBet }

func (cfg *slotConfig) BetDenominations() []int {
	return append([]int(nil), cfg.betDenominations...)
}

type roundConfig struct {
	preGameSeconds int
	bettingSeconds int
	displayHold    time.Duration
	tickInterval   time.Duration
}

// NewRoundConfigFromYAML Длительности фаз раунда из секции round
func NewRoundConfigFromYAML(path string) (config.RoundConfig, error) {
	f, err := readGameFile(path)
	if err != nil {
		return nil, err
	}

	hold, err := durationOr(f.Round.DisplayHold, defaultDisplayHold)
	if err != nil {
		return nil, fmt.Errorf("invalid display hold: %w", err)
	}
	tick, err := durationOr(f.Round.Tick, defaultTickInterval)
	if err != nil {
		return nil, fmt.Errorf("invalid tick: %w", err)
	}

	cfg := &roundConfig{
		preGameSeconds: intOr(f.Round.PreGameSeconds, defaultPreGameSeconds),
		bettingSeconds: intOr(f.Round.BettingSeconds, defaultBettingSeconds),
		displayHold:    hold,
		tickInterval:   tick,
	}

	if cfg.preGameSeconds <= 0 || cfg.bettingSeconds <= 0 {
		return nil, errors.New("phase durations must be positive")
	}
	if cfg.displayHold < 0 {
		return nil, errors.New("display hold must not be negative")
	}
	if cfg.tickInterval <= 0 {
		return nil, errors.New("tick must be positive")
	}
	return cfg, nil
}

func (cfg *roundConfig) PreGameSeconds() int { return cfg.preGameSeconds }

func (cfg *roundConfig) BettingSeconds() int { return cfg.bettingSeconds }

func (cfg *roundConfig) DisplayHold() time.Duration { return cfg.displayHold }

func (cfg *roundConfig) TickInterval() time.Duration { return cfg.tickInterval }

type jackpotConfig struct {
	amount   int
	schedule string
}

// NewJackpotConfigFromYAML Джекпот из секции jackpot
func NewJackpotConfigFromYAML(path string) (config.JackpotConfig, error) {
	f, err := readGameFile(path)
	if err != nil {
		return nil, err
	}

	cfg := &jackpotConfig{
		amount:   intOr(f.Jackpot.Amount, defaultJackpotAmount),
		schedule: f.Jackpot.Schedule,
	}
	if cfg.schedule == "" {
		cfg.schedule = defaultJackpotSchedule
	}
	if cfg.amount < 0 {
		return nil, errors.New("jackpot amount must not be negative")
	}
	return cfg, nil
}

func (cfg *jackpotConfig) Amount() int { return cfg.amount }

func (cfg *jackpotConfig) Schedule() string { return cfg.schedule }

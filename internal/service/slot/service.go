package slot

import (
	"context"
	"digit_slot/internal/config"
	"digit_slot/internal/model"
	"digit_slot/internal/service"
	"digit_slot/internal/service/outcome"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

var (
	ErrTableNotFound       = errors.New("table not found, join first")
	ErrInvalidDenomination = errors.New("bet amount is not an allowed denomination")
	ErrServiceClosed       = errors.New("slot service is closed")
	ErrWalletUnavailable   = errors.New("wallet unavailable")
)

// Runner Пул для фоновых задач (отправка ставок, обновление баланса)
type Runner interface {
	Submit(task func()) error
}

type Deps struct {
	Engine      *outcome.Engine
	Wallet      service.WalletService
	Runner      Runner
	SlotConfig  config.SlotConfig
	RoundConfig config.RoundConfig
	Jackpot     *Jackpot
	// Now источник времени для отсчета до джекпота, по умолчанию time.Now
	Now func() time.Time
}

type serv struct {
	engine      *outcome.Engine
	wallet      service.WalletService
	runner      Runner
	slotConfig  config.SlotConfig
	roundConfig config.RoundConfig
	jackpot     *Jackpot
	now         func() time.Time

	// done закрывается в Close, фоновые задачи столов после этого не выполняются
	done chan struct{}
	cron *cron.Cron

	mtx    sync.Mutex
	tables map[int]*table
	closed bool
}

// NewSlotService Столы игроков поверх общего движка исходов
func NewSlotService(deps Deps) service.SlotService {
	return newServ(deps)
}

func newServ(deps Deps) *serv {
	s := &serv{
		engine:      deps.Engine,
		wallet:      deps.Wallet,
		runner:      deps.Runner,
		slotConfig:  deps.SlotConfig,
		roundConfig: deps.RoundConfig,
		jackpot:     deps.Jackpot,
		now:         deps.Now,
		done:        make(chan struct{}),
		tables:      make(map[int]*table),
	}
	if s.now == nil {
		s.now = time.Now
	}

	// Объявление джекпота всем столам по расписанию
	s.cron = cron.New()
	if _, err := s.cron.AddFunc(s.jackpot.spec, s.announceJackpot); err != nil {
		log.Printf("jackpot schedule disabled: %v", err)
	}
	s.cron.Start()

	return s
}

// Join Запускает стол игрока. Повторный вызов перезапускает раунд
func (s *serv) Join(ctx context.Context, player model.Player) (*model.TableState, error) {
	balance, err := s.wallet.Balance(ctx, player)
	if err != nil {
		log.Printf("player %d join: get balance: %v", player.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrWalletUnavailable, err)
	}

	s.mtx.Lock()
	if s.closed {
		s.mtx.Unlock()
		return nil, ErrServiceClosed
	}
	t, ok := s.tables[player.ID]
	if !ok {
		t = newTable(s, player)
		s.tables[player.ID] = t
	}
	s.mtx.Unlock()

	t.join(player, balance)

	// Leave или Close могли убрать стол, пока запускался раунд.
	// Их Stop мог пройти раньше Start, поэтому цикл останавливаем здесь
	s.mtx.Lock()
	closed := s.closed
	current := s.tables[player.ID] == t
	s.mtx.Unlock()
	if closed || !current {
		t.sched.Stop()
		if closed {
			return nil, ErrServiceClosed
		}
		return nil, ErrTableNotFound
	}

	log.Printf("player %d joined digit slot table", player.ID)

	st := t.state(s.now())
	return &st, nil
}

// Leave Останавливает стол игрока
func (s *serv) Leave(_ context.Context, playerID int) error {
	s.mtx.Lock()
	t, ok := s.tables[playerID]
	delete(s.tables, playerID)
	s.mtx.Unlock()

	if !ok {
		return ErrTableNotFound
	}
	t.sched.Stop()
	log.Printf("player %d left digit slot table", playerID)
	return nil
}

func (s *serv) State(_ context.Context, playerID int) (*model.TableState, error) {
	t, err := s.table(playerID)
	if err != nil {
		return nil, err
	}
	st := t.state(s.now())
	return &st, nil
}

func (s *serv) SetPick(_ context.Context, playerID int, pick model.Pick) (bool, error) {
	t, err := s.table(playerID)
	if err != nil {
		return false, err
	}
	return t.setPick(pick), nil
}

func (s *serv) SetBetAmount(_ context.Context, playerID int, amount int) (bool, error) {
	t, err := s.table(playerID)
	if err != nil {
		return false, err
	}
	return t.setBetAmount(amount)
}

func (s *serv) Events(_ context.Context, playerID int, after int64) ([]model.Notice, error) {
	t, err := s.table(playerID)
	if err != nil {
		return nil, err
	}
	return t.events(after), nil
}

func (s *serv) Stats() model.RTPState {
	return s.engine.Stats()
}

// Close Останавливает все столы и расписание джекпота
func (s *serv) Close() {
	s.mtx.Lock()
	if s.closed {
		s.mtx.Unlock()
		return
	}
	s.closed = true
	tables := make([]*table, 0, len(s.tables))
	for id, t := range s.tables {
		tables = append(tables, t)
		delete(s.tables, id)
	}
	s.mtx.Unlock()

	<-s.cron.Stop().Done()
	for _, t := range tables {
		t.sched.Stop()
	}
	close(s.done)
}

func (s *serv) table(playerID int) (*table, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	t, ok := s.tables[playerID]
	if !ok {
		return nil, ErrTableNotFound
	}
	return t, nil
}

func (s *serv) announceJackpot() {
	s.mtx.Lock()
	tables := make([]*table, 0, len(s.tables))
	for _, t := range s.tables {
		tables = append(tables, t)
	}
	s.mtx.Unlock()

	log.Printf("jackpot %d announced to %d tables", s.jackpot.Amount(), len(tables))
	for _, t := range tables {
		t.notify(model.NoticeJackpot, fmt.Sprintf("Jackpot time! %d is up for grabs", s.jackpot.Amount()), "")
	}
}

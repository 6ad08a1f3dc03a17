package slot

import (
	"context"
	"digit_slot/internal/converter"
	"digit_slot/internal/model"
	"digit_slot/internal/service"
	"digit_slot/internal/service/outcome"
	"digit_slot/internal/service/round"
	"errors"
	"fmt"
	"log"
	"slices"
	"sync"
	"time"
)

const (
	// maxNotices Сколько последних уведомлений хранит стол
	maxNotices = 50
	// walletTaskTimeout Предел для одного фонового обращения к кошельку
	walletTaskTimeout = 10 * time.Second
)

// table Стол одного игрока: свой раунд, ставка и отображение.
// Порядок блокировок: table.mtx, затем планировщик и движок
type table struct {
	sched   *round.Scheduler
	engine  *outcome.Engine
	wallet  service.WalletService
	runner  Runner
	jackpot *Jackpot
	done    <-chan struct{}

	historySize     int
	streakThreshold int
	denominations   []int

	mtx    sync.Mutex
	player model.Player
	bet    model.Bet

	balance int
	// balanceVer растет при каждом локальном изменении баланса.
	// Устаревшие ответы кошелька не перетирают более новый баланс
	balanceVer int64

	lastResult *int
	message    string
	history    []int
	streak     int

	notices []model.Notice
	seq     int64
}

func newTable(s *serv, player model.Player) *table {
	t := &table{
		engine:          s.engine,
		wallet:          s.wallet,
		runner:          s.runner,
		jackpot:         s.jackpot,
		done:            s.done,
		historySize:     s.slotConfig.HistorySize(),
		streakThreshold: s.slotConfig.StreakThreshold(),
		denominations:   s.slotConfig.BetDenominations(),
		player:          player,
		bet:             model.Bet{Pick: model.NoPick(), Amount: s.slotConfig.DefaultBet()},
		history:         make([]int, 0, s.slotConfig.HistorySize()),
	}
	t.sched = round.New(s.roundConfig, round.Hooks{
		OnPhase:  t.onPhase,
		OnSettle: t.onSettle,
	})
	return t
}

// join Обновляет игрока и баланс, запускает раунд заново.
// Планировщик запускается без блокировки стола: обработчики фаз берут ее сами
func (t *table) join(player model.Player, balance int) {
	t.mtx.Lock()
	t.player = player
	t.balance = balance
	t.balanceVer++
	t.mtx.Unlock()

	t.sched.Start()
}

func (t *table) onPhase(rnd model.Round) {
	if rnd.Phase != model.PhasePreGame {
		return
	}

	t.mtx.Lock()
	t.lastResult = nil
	t.message = ""
	player := t.player
	ver := t.balanceVer
	t.mtx.Unlock()

	t.refreshBalance(player, ver)
}

// refreshBalance Фоновое обновление баланса из кошелька
func (t *table) refreshBalance(player model.Player, ver int64) {
	err := t.runner.Submit(func() {
		if t.closed() {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), walletTaskTimeout)
		defer cancel()

		balance, err := t.wallet.Balance(ctx, player)
		if err != nil {
			log.Printf("refresh balance for player %d: %v", player.ID, err)
			return
		}

		t.mtx.Lock()
		defer t.mtx.Unlock()
		if t.balanceVer == ver {
			t.balance = balance
		}
	})
	if err != nil {
		log.Printf("schedule balance refresh for player %d: %v", player.ID, err)
	}
}

func (t *table) onSettle(rnd model.Round) {
	t.mtx.Lock()

	res, err := t.engine.Settle(t.bet.Pick, t.bet.Amount, t.balance)
	if err != nil {
		var verr *outcome.ValidationError
		if errors.As(err, &verr) {
			t.message = verr.Message
			t.pushNoticeLocked(model.NoticeValidation, verr.Message, string(verr.Code))
		} else {
			log.Printf("settle round %s for player %d: %v", rnd.ID, t.player.ID, err)
		}
		t.mtx.Unlock()
		return
	}
	res.RoundID = rnd.ID

	rolled := res.RolledDigit
	t.lastResult = &rolled
	t.history = append([]int{rolled}, t.history...)
	if len(t.history) > t.historySize {
		t.history = t.history[:t.historySize]
	}

	if res.Outcome == model.OutcomeWin {
		t.streak++
		t.message = fmt.Sprintf("Rolled %d. You won %d!", rolled, res.WinAmount)
		t.pushNoticeLocked(model.NoticeWin, t.message, "")
		if t.streak >= t.streakThreshold {
			t.pushNoticeLocked(model.NoticeStreak, fmt.Sprintf("%d wins in a row!", t.streak), "")
		}
	} else {
		t.streak = 0
		t.message = fmt.Sprintf("Rolled %d. You lost %d.", rolled, res.Amount)
		t.pushNoticeLocked(model.NoticeLose, t.message, "")
	}

	t.balance = res.AfterBalance
	t.balanceVer++
	ver := t.balanceVer
	player := t.player
	rec := converter.ToBetRecord(*res)

	t.mtx.Unlock()

	t.report(player, rec, ver)
}

// report Отправка итога ставки в кошелек. Раунд не ждет ответа
func (t *table) report(player model.Player, rec model.BetRecord, ver int64) {
	err := t.runner.Submit(func() {
		if t.closed() {
			log.Printf("bet %s for player %d not reported: service closed", rec.ID, player.ID)
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), walletTaskTimeout)
		defer cancel()

		result, err := t.wallet.Submit(ctx, player, rec)

		t.mtx.Lock()
		defer t.mtx.Unlock()

		if err != nil {
			log.Printf("report bet %s for player %d: %v", rec.ID, player.ID, err)
			t.pushNoticeLocked(model.NoticeReportingFailure, "Failed to save bet result", "")
			return
		}
		if result == nil || result.Balance == nil {
			return
		}
		// После этой ставки уже был новый расчет, сверит его ответ
		if t.balanceVer != ver {
			return
		}

		balance := *result.Balance
		if balance != t.balance {
			log.Printf("player %d balance reconciled %d -> %d", player.ID, t.balance, balance)
			t.pushNoticeLocked(model.NoticeBalanceUpdated, fmt.Sprintf("Balance updated to %d", balance), "")
		}
		t.balance = balance
		t.balanceVer++
	})
	if err != nil {
		log.Printf("schedule bet report for player %d: %v", player.ID, err)
		t.notify(model.NoticeReportingFailure, "Failed to save bet result", "")
	}
}

// closed закрыт ли сервис
func (t *table) closed() bool {
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}

func (t *table) setPick(pick model.Pick) bool {
	t.mtx.Lock()
	defer t.mtx.Unlock()

	if t.sched.Round().Phase != model.PhaseBetting {
		return false
	}
	t.bet.Pick = pick
	return true
}

func (t *table) setBetAmount(amount int) (bool, error) {
	t.mtx.Lock()
	defer t.mtx.Unlock()

	if t.sched.Round().Phase != model.PhaseBetting {
		return false, nil
	}
	// Со списком номиналов принимаются только они.
	// Без списка сумма сохраняется как есть и проверяется при расчете
	if len(t.denominations) > 0 && !slices.Contains(t.denominations, amount) {
		return false, ErrInvalidDenomination
	}
	t.bet.Amount = amount
	return true, nil
}

func (t *table) state(now time.Time) model.TableState {
	t.mtx.Lock()
	defer t.mtx.Unlock()

	rnd := t.sched.Round()

	var rtp *float64
	if totals := t.engine.Totals(); totals.TotalWagered > 0 {
		v := totals.CurrentRTP()
		rtp = &v
	}

	var last *int
	if t.lastResult != nil {
		v := *t.lastResult
		last = &v
	}

	return model.TableState{
		Round:         rnd,
		BetOpen:       rnd.Phase == model.PhaseBetting,
		Bet:           t.bet,
		Balance:       t.balance,
		LastResult:    last,
		Message:       t.message,
		History:       append([]int(nil), t.history...),
		RTP:           rtp,
		Streak:        t.streak,
		Multiplier:    t.engine.Rules().Multiplier(t.bet.Pick),
		Jackpot:       t.jackpot.Amount(),
		NextJackpotIn: int(t.jackpot.NextIn(now).Round(time.Second) / time.Second),
		LastNoticeSeq: t.seq,
	}
}

// events Уведомления с номером больше after
func (t *table) events(after int64) []model.Notice {
	t.mtx.Lock()
	defer t.mtx.Unlock()

	result := make([]model.Notice, 0)
	for _, n := range t.notices {
		if n.Seq > after {
			result = append(result, n)
		}
	}
	return result
}

func (t *table) notify(kind model.NoticeKind, message, code string) {
	t.mtx.Lock()
	defer t.mtx.Unlock()
	t.pushNoticeLocked(kind, message, code)
}

func (t *table) pushNoticeLocked(kind model.NoticeKind, message, code string) {
	t.seq++
	t.notices = append(t.notices, model.Notice{
		Seq:       t.seq,
		Kind:      kind,
		Message:   message,
		Code:      code,
		CreatedAt: time.Now(),
	})
	if len(t.notices) > maxNotices {
		t.notices = t.notices[len(t.notices)-maxNotices:]
	}
}

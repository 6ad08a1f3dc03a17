package rtp_state_repo

import (
	"digit_slot/internal/model"
	"log"
	"sync"
	"time"
)

// maxAdjustmentsLog Сколько последних переходов между зонами храним
const maxAdjustmentsLog = 100

// StateRepo Хранилище счетчиков RTP. Одно на процесс, сбрасывается только перезапуском
type StateRepo struct {
	mtx   sync.RWMutex
	state model.RTPState

	rtpWindow float64
	window    []roundResult
}

type roundResult struct {
	bet    int
	payout int
}

// NewRTPStateRepository Конструктор с пустыми счетчиками.
// target и window задают целевую зону RTP, windowSize - размер окна последних раундов
func NewRTPStateRepository(target, window float64, windowSize int) *StateRepo {
	if windowSize <= 0 {
		windowSize = 1
	}
	return &StateRepo{
		state: model.RTPState{
			TargetRTP:   target,
			Band:        model.RTPBandLow,
			WindowSize:  windowSize,
			Adjustments: make([]model.BandChange, 0),
		},
		rtpWindow: window,
		window:    make([]roundResult, 0, windowSize),
	}
}

// Totals Суммы ставок и выплат
func (r *StateRepo) Totals() model.RTPTotals {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	return r.state.RTPTotals
}

// State Возвращает копию состояния
func (r *StateRepo) State() model.RTPState {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	st := r.state
	st.Adjustments = append([]model.BandChange(nil), r.state.Adjustments...)
	return st
}

// UpdateState Обновление счетчиков после раунда.
// Отрицательные значения игнорируются, счетчики только растут
func (r *StateRepo) UpdateState(bet, payout int) {
	if bet < 0 {
		bet = 0
	}
	if payout < 0 {
		payout = 0
	}

	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.state.TotalRounds++
	r.state.TotalWagered += bet
	r.state.TotalPaid += payout

	// Добавляем раунд в окно
	r.window = append(r.window, roundResult{bet: bet, payout: payout})
	if len(r.window) > r.state.WindowSize {
		r.window = r.window[1:]
	}

	// Пересчитываем RTP в окне
	var windowBet, windowPayout int
	for _, res := range r.window {
		windowBet += res.bet
		windowPayout += res.payout
	}
	if windowBet > 0 {
		r.state.WindowRTP = float64(windowPayout) / float64(windowBet) * 100
	} else {
		r.state.WindowRTP = 0
	}

	r.updateBand()
}

// updateBand Фиксирует переход RTP между зонами low/normal/high
func (r *StateRepo) updateBand() {
	current := r.state.CurrentRTP()

	band := model.RTPBandNormal
	switch {
	case current > r.state.TargetRTP+r.rtpWindow:
		band = model.RTPBandHigh
	case current < r.state.TargetRTP-r.rtpWindow:
		band = model.RTPBandLow
	}
	if band == r.state.Band {
		return
	}

	change := model.BandChange{
		Timestamp:  time.Now(),
		From:       r.state.Band,
		To:         band,
		CurrentRTP: current,
		WindowRTP:  r.state.WindowRTP,
		Profit:     r.state.TotalWagered - r.state.TotalPaid,
	}
	log.Printf("rtp band %s -> %s (rtp %.2f%%, window %.2f%%, profit %d)",
		change.From, change.To, change.CurrentRTP, change.WindowRTP, change.Profit)

	r.state.Adjustments = append(r.state.Adjustments, change)
	if len(r.state.Adjustments) > maxAdjustmentsLog {
		r.state.Adjustments = r.state.Adjustments[1:]
	}
	r.state.Band = band
}

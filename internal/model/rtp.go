package model

import "time"

// RTPTotals Накопленные суммы ставок и выплат
type RTPTotals struct {
	TotalWagered int
	TotalPaid    int
}

// CurrentRTP (TotalPaid/TotalWagered)*100, 0 если ставок еще не было
func (t RTPTotals) CurrentRTP() float64 {
	if t.TotalWagered <= 0 {
		return 0
	}
	return float64(t.TotalPaid) / float64(t.TotalWagered) * 100
}

// RTPBand Положение текущего RTP относительно целевого окна
type RTPBand string

const (
	RTPBandLow    RTPBand = "low"
	RTPBandNormal RTPBand = "normal"
	RTPBandHigh   RTPBand = "high"
)

// RTPState Состояние счетчиков RTP процесса
type RTPState struct {
	RTPTotals
	TotalRounds int

	TargetRTP float64
	Band      RTPBand

	WindowRTP  float64 // RTP по последним WindowSize раундам
	WindowSize int

	Adjustments []BandChange
}

// BandChange Запись о переходе RTP между зонами
type BandChange struct {
	Timestamp  time.Time
	From       RTPBand
	To         RTPBand
	CurrentRTP float64
	WindowRTP  float64
	Profit     int // TotalWagered - TotalPaid на момент перехода
}

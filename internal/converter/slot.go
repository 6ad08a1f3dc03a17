package converter

import (
	dto "digit_slot/internal/api/dto/slot"
	"digit_slot/internal/model"
	"fmt"
)

// BetStatusSettled Статус записи о ставке, других кошелек не принимает
const BetStatusSettled = "settled"

func ToPick(req dto.PickRequest) (model.Pick, error) {
	var p model.Pick
	if len(req.Pick) == 0 {
		return model.NoPick(), nil
	}
	if err := p.UnmarshalJSON(req.Pick); err != nil {
		return model.NoPick(), err
	}
	return p, nil
}

// ToBetRecord Итог раунда в запись для кошелька
func ToBetRecord(s model.Settlement) model.BetRecord {
	var digit *int
	if d, ok := s.Pick.Digit(); ok {
		digit = &d
	}

	return model.BetRecord{
		ID:            s.ID,
		RoundID:       s.RoundID,
		BetType:       s.Pick.BetType(),
		Digit:         digit,
		BetAmount:     s.Amount,
		Multiplier:    s.Multiplier,
		RolledNumber:  s.RolledDigit,
		WinAmount:     s.WinAmount,
		Profit:        s.Profit(),
		Status:        BetStatusSettled,
		Outcome:       s.Outcome,
		BeforeBalance: s.BeforeBalance,
		AfterBalance:  s.AfterBalance,
		BetTime:       s.SettledAt,
	}
}

func ToStateResponse(st model.TableState) dto.StateResponse {
	return dto.StateResponse{
		RoundID:       st.Round.ID,
		RoundNumber:   st.Round.Number,
		Phase:         string(st.Round.Phase),
		Remaining:     st.Round.Remaining,
		BetOpen:       st.BetOpen,
		Pick:          toPickValue(st.Bet.Pick),
		Amount:        st.Bet.Amount,
		Multiplier:    st.Multiplier,
		Balance:       st.Balance,
		LastResult:    st.LastResult,
		Message:       st.Message,
		History:       append([]int{}, st.History...),
		RTP:           st.RTP,
		Streak:        st.Streak,
		Jackpot:       st.Jackpot,
		NextJackpotIn: FormatCountdown(st.NextJackpotIn),
		LastNoticeSeq: st.LastNoticeSeq,
	}
}

func toPickValue(p model.Pick) any {
	if d, ok := p.Digit(); ok {
		return d
	}
	if c, ok := p.Category(); ok {
		return string(c)
	}
	return nil
}

// FormatCountdown секунды в HH:MM:SS
func FormatCountdown(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, seconds%3600/60, seconds%60)
}

func ToEventsResponse(notices []model.Notice) dto.EventsResponse {
	result := make([]dto.NoticeResponse, len(notices))
	for i, n := range notices {
		result[i] = dto.NoticeResponse{
			Seq:       n.Seq,
			Kind:      string(n.Kind),
			Message:   n.Message,
			Code:      n.Code,
			CreatedAt: n.CreatedAt,
		}
	}
	return dto.EventsResponse{Notices: result}
}

func ToBetsResponse(bets []model.BetRecord) dto.BetsResponse {
	result := make([]dto.BetRecord, len(bets))
	for i, b := range bets {
		result[i] = dto.BetRecord{
			ID:            b.ID,
			RoundID:       b.RoundID,
			BetType:       b.BetType,
			Digit:         b.Digit,
			BetAmount:     b.BetAmount,
			Multiplier:    b.Multiplier,
			RolledNumber:  b.RolledNumber,
			WinAmount:     b.WinAmount,
			Profit:        b.Profit,
			Status:        b.Status,
			Outcome:       string(b.Outcome),
			BeforeBalance: b.BeforeBalance,
			AfterBalance:  b.AfterBalance,
			BetTime:       b.BetTime,
		}
	}
	return dto.BetsResponse{Bets: result}
}

func ToStatsResponse(st model.RTPState) dto.StatsResponse {
	return dto.StatsResponse{
		TotalRounds:  st.TotalRounds,
		TotalWagered: st.TotalWagered,
		TotalPaid:    st.TotalPaid,
		RTP:          st.CurrentRTP(),
		WindowRTP:    st.WindowRTP,
		TargetRTP:    st.TargetRTP,
		Band:         string(st.Band),
	}
}

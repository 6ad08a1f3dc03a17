package outcome

import "digit_slot/internal/model"

// Draw Выбор выпавшей цифры.
// В (1 - SteerProbability) доле раундов цифра равновероятна.
// В остальных: RTP выше окна - только проигрышные для выбора цифры,
// ниже окна - только выигрышные, внутри окна - равновероятно.
// Если подходящих цифр нет - обычный розыгрыш
func (r Rules) Draw(rng RandomSource, pick model.Pick, amount int, currentRTP float64) (int, model.Steering) {
	if rng == nil {
		rng = DefaultRNG()
	}

	u := rng.Float64()
	if u < 1-r.SteerProbability {
		return uniformDigit(rng), model.SteeringNone
	}

	switch {
	case currentRTP > r.RTPTarget+r.RTPWindow:
		if d, ok := r.restrictedDigit(rng, pick, amount, false); ok {
			return d, model.SteeringHouse
		}
	case currentRTP < r.RTPTarget-r.RTPWindow:
		if d, ok := r.restrictedDigit(rng, pick, amount, true); ok {
			return d, model.SteeringPlayer
		}
	}
	return uniformDigit(rng), model.SteeringNone
}

// Candidates Цифры с выплатой (winning=true) или без нее
func (r Rules) Candidates(pick model.Pick, amount int, winning bool) []int {
	out := make([]int, 0, model.MaxDigit+1)
	for d := model.MinDigit; d <= model.MaxDigit; d++ {
		if (r.Payout(d, pick, amount) > 0) == winning {
			out = append(out, d)
		}
	}
	return out
}

func (r Rules) restrictedDigit(rng RandomSource, pick model.Pick, amount int, winning bool) (int, bool) {
	candidates := r.Candidates(pick, amount, winning)
	if len(candidates) == 0 {
		return 0, false
	}
	return candidates[intn(rng, len(candidates))], true
}

func uniformDigit(rng RandomSource) int {
	return model.MinDigit + intn(rng, model.MaxDigit-model.MinDigit+1)
}

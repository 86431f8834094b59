package typing

import (
	"math/rand"
	"strings"
	"time"
	"unicode/utf8"
)

// minDelay нижняя граница любой вычисленной паузы.
const minDelay = 10 * time.Millisecond

// charDelay возвращает паузу после набранного символа.
// Без естественного темпа это базовая задержка с равномерным шумом.
// С естественным темпом пунктуация удваивает базу, пробельные символы
// получают паузу слова, остальные символы - гауссов шум вокруг базы.
func charDelay(rng *rand.Rand, p TimingPolicy, c rune) time.Duration {
	base := p.BaseDelay.Seconds()
	spread := p.Variability.Seconds()

	if !p.Natural {
		return clampDelay(base + uniform(rng, spread))
	}

	switch {
	case strings.ContainsRune(".,!?;:", c):
		return clampDelay(base * 2)
	case c == ' ' || c == '\n' || c == '\t':
		return clampDelay(p.WordPause.Seconds())
	default:
		return clampDelay(base + rng.NormFloat64()*spread)
	}
}

// wordDelay возвращает паузу после набранного слова.
// С естественным темпом конец предложения удваивает паузу,
// запятая и её родня растягивают её в полтора раза.
func wordDelay(rng *rand.Rand, p TimingPolicy, word string) time.Duration {
	base := p.WordPause.Seconds()
	spread := p.Variability.Seconds()

	if !p.Natural {
		return clampDelay(base + uniform(rng, spread))
	}

	last, _ := utf8.DecodeLastRuneInString(word)
	switch last {
	case '.', '!', '?':
		return clampDelay(base * 2)
	case ',', ';', ':':
		return clampDelay(base * 1.5)
	default:
		return clampDelay(base + rng.NormFloat64()*spread)
	}
}

// uniform равномерный шум в диапазоне [-spread, spread].
func uniform(rng *rand.Rand, spread float64) float64 {
	if spread <= 0 {
		return 0
	}
	return (rng.Float64()*2 - 1) * spread
}

func clampDelay(seconds float64) time.Duration {
	d := time.Duration(seconds * float64(time.Second))
	if d < minDelay {
		return minDelay
	}
	return d
}

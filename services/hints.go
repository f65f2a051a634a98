package services

import (
	"math"
	"math/rand"
	"strings"
	"sync"
	"time"
)

// hintRatios is the fraction of letters revealed per difficulty.
var hintRatios = map[string]float64{
	"easy":   0.7,
	"medium": 0.5,
	"hard":   0.3,
}

// HintGenerator produces partially-masked hints for secret words. A fresh
// hint is generated for every round, never cached.
type HintGenerator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewHintGenerator() *HintGenerator {
	return &HintGenerator{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// Generate masks the word according to difficulty: ceil(len*ratio) letters
// are revealed, the first and last always among them, the rest picked
// uniformly at random without replacement. Output is one entry per letter,
// space-joined, with "_" for hidden letters.
func (g *HintGenerator) Generate(word, difficulty string) string {
	letters := []rune(word)
	if len(letters) == 0 {
		return ""
	}

	ratio, ok := hintRatios[difficulty]
	if !ok {
		ratio = hintRatios["medium"]
	}

	target := int(math.Ceil(float64(len(letters)) * ratio))

	revealed := make(map[int]bool, target)
	revealed[0] = true
	if len(letters) > 1 {
		revealed[len(letters)-1] = true
	}

	g.mu.Lock()
	for len(revealed) < target && len(revealed) < len(letters) {
		revealed[g.rng.Intn(len(letters))] = true
	}
	g.mu.Unlock()

	parts := make([]string, len(letters))
	for i, letter := range letters {
		if revealed[i] {
			parts[i] = string(letter)
		} else {
			parts[i] = "_"
		}
	}

	return strings.Join(parts, " ")
}

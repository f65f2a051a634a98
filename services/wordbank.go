package services

import (
	"log"
	"math/rand"
	"strings"
	"sync"
	"time"

	"drawsurus/models"

	"gorm.io/gorm"
)

// FallbackWord is used when no word source can produce a word. Losing a word
// lookup degrades the round, it never fails it.
const FallbackWord = "DINOSAUR"

// WordBank supplies candidate words by category and difficulty.
type WordBank interface {
	NextWord(category, difficulty string) string
}

var wordCategories = map[string][]string{
	"animals": {"ELEPHANT", "BUTTERFLY", "DOLPHIN", "PENGUIN", "GIRAFFE", "OCTOPUS", "KANGAROO", "FLAMINGO"},
	"objects": {"GUITAR", "UMBRELLA", "TELESCOPE", "BICYCLE", "CAMERA", "LIGHTHOUSE", "WINDMILL", "CASTLE"},
	"actions": {"DANCING", "SWIMMING", "FLYING", "COOKING", "READING", "SINGING", "JUMPING", "PAINTING"},
	"food":    {"PIZZA", "HAMBURGER", "SPAGHETTI", "SUSHI", "DONUT", "TACO", "SANDWICH", "PANCAKE"},
}

// StaticWordBank serves the built-in category lists.
type StaticWordBank struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewStaticWordBank() *StaticWordBank {
	return &StaticWordBank{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (b *StaticWordBank) NextWord(category, difficulty string) string {
	words, ok := wordCategories[strings.ToLower(category)]
	if !ok {
		// "all" and unknown categories draw from every list
		for _, list := range wordCategories {
			words = append(words, list...)
		}
	}
	if len(words) == 0 {
		return FallbackWord
	}

	b.mu.Lock()
	word := words[b.rng.Intn(len(words))]
	b.mu.Unlock()

	return word
}

// DBWordBank serves words from the words table, falling back to the static
// lists when the table has nothing for the category/difficulty.
type DBWordBank struct {
	db       *gorm.DB
	fallback WordBank
}

func NewDBWordBank(db *gorm.DB) *DBWordBank {
	return &DBWordBank{db: db, fallback: NewStaticWordBank()}
}

func (b *DBWordBank) NextWord(category, difficulty string) string {
	var word models.Word
	query := b.db.Where("is_active = ?", true)
	if category != "" && strings.ToLower(category) != "all" {
		query = query.Where("category = ?", strings.ToLower(category))
	}
	if difficulty != "" {
		query = query.Where("difficulty = ?", strings.ToLower(difficulty))
	}

	if err := query.Order("RANDOM()").First(&word).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			log.Printf("Word lookup failed for category=%s difficulty=%s: %v", category, difficulty, err)
		}
		return b.fallback.NextWord(category, difficulty)
	}

	return strings.ToUpper(word.Text)
}

// chooseWord applies the room-level word policy: a non-empty custom word
// list takes precedence over the bank lookup.
func chooseWord(custom []string, bank WordBank, category, difficulty string) string {
	if len(custom) > 0 {
		return strings.ToUpper(custom[rand.Intn(len(custom))])
	}
	if bank == nil {
		return FallbackWord
	}
	word := strings.TrimSpace(bank.NextWord(category, difficulty))
	if word == "" {
		return FallbackWord
	}
	return strings.ToUpper(word)
}

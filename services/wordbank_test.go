package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type emptyWordBank struct{}

func (emptyWordBank) NextWord(category, difficulty string) string { return "  " }

func TestStaticWordBank_CategoryMembership(t *testing.T) {
	bank := NewStaticWordBank()

	for i := 0; i < 20; i++ {
		word := bank.NextWord("animals", "medium")
		assert.Contains(t, wordCategories["animals"], word)
	}
}

func TestStaticWordBank_UnknownCategoryDrawsFromAll(t *testing.T) {
	bank := NewStaticWordBank()

	var all []string
	for _, list := range wordCategories {
		all = append(all, list...)
	}

	for _, category := range []string{"all", "nonsense", ""} {
		word := bank.NextWord(category, "easy")
		assert.Contains(t, all, word)
	}
}

func TestChooseWord_CustomListTakesPrecedence(t *testing.T) {
	word := chooseWord([]string{"narwhal"}, NewStaticWordBank(), "animals", "easy")
	assert.Equal(t, "NARWHAL", word)
}

func TestChooseWord_FallbackOnBlankBankResult(t *testing.T) {
	assert.Equal(t, FallbackWord, chooseWord(nil, emptyWordBank{}, "animals", "easy"))
}

func TestChooseWord_FallbackWithoutBank(t *testing.T) {
	assert.Equal(t, FallbackWord, chooseWord(nil, nil, "animals", "easy"))
}

func TestChooseWord_Uppercases(t *testing.T) {
	word := chooseWord([]string{"zeppelin", "airship"}, nil, "", "")
	assert.Contains(t, []string{"ZEPPELIN", "AIRSHIP"}, word)
}

package practice

import (
	"math/rand"
	"strings"
	"unicode"

	"dailyvocab/internal/domain"
)

// MaskRune replaces hidden letters
const MaskRune = '_'

// MaskCount returns how many of n characters to hide: ceil(30%) clamped to [1, n-1]
func MaskCount(n int) int {
	if n < 2 {
		return 0
	}

	count := (3*n + 9) / 10
	if count < 1 {
		count = 1
	}
	if count > n-1 {
		count = n - 1
	}

	return count
}

// Mask hides MaskCount of the word's letters at random positions.
// Spaces, hyphens and apostrophes stay visible.
func Mask(word domain.Word, rng *rand.Rand) domain.PracticeWord {
	runes := []rune(word.Text)

	var letters []int
	for i, r := range runes {
		if unicode.IsLetter(r) {
			letters = append(letters, i)
		}
	}

	for _, pick := range rng.Perm(len(letters))[:MaskCount(len(letters))] {
		runes[letters[pick]] = MaskRune
	}

	return domain.PracticeWord{
		Word:   word,
		Masked: string(runes),
		Answer: word.Text,
	}
}

// CheckAnswer compares trimmed input with the answer ignoring case
func CheckAnswer(input, answer string) bool {
	return strings.ToLower(strings.TrimSpace(input)) == strings.ToLower(answer)
}

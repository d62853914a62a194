package testutil

import (
	"encoding/json"
	"time"

	"dailyvocab/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestWord creates a test word
func NewTestWord(text, translation string) domain.Word {
	return domain.Word{
		Text:               text,
		Phonetic:           "[" + text + "]",
		PartOfSpeech:       "n.",
		Example:            "This is " + text + ".",
		Translation:        translation,
		ExampleTranslation: "这是" + translation + "。",
		OtherForms:         domain.NoOtherForms,
	}
}

// NewTestWords creates one test word per text
func NewTestWords(texts ...string) []domain.Word {
	words := make([]domain.Word, 0, len(texts))
	for _, text := range texts {
		words = append(words, NewTestWord(text, text+"的释义"))
	}
	return words
}

// EncodeWords returns the stored JSON form of a word list
func EncodeWords(words []domain.Word) string {
	data, err := json.Marshal(words)
	if err != nil {
		panic(err)
	}
	return string(data)
}

// FixedClock returns a clock function always reporting t
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

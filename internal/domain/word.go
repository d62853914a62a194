package domain

import "strings"

// Placeholders for fields that older cache entries or sparse API answers lack
const (
	NoExampleTranslation = "暂无例句翻译"
	NoOtherForms         = "暂无其他词性信息"
)

// Word represents a vocabulary entry with translation and example metadata
type Word struct {
	Text               string `json:"text,omitempty"`
	Phonetic           string `json:"phonetic,omitempty"`
	PartOfSpeech       string `json:"partOfSpeech,omitempty"`
	Example            string `json:"example,omitempty"`
	Translation        string `json:"translation,omitempty"`
	ExampleTranslation string `json:"exampleTranslation,omitempty"`
	OtherForms         string `json:"otherForms,omitempty"`
}

// Key returns the word identity: its trimmed lowercase text
func (w Word) Key() string {
	return strings.ToLower(strings.TrimSpace(w.Text))
}

// WithDefaults fills the optional fields that older entries may be missing
func (w Word) WithDefaults() Word {
	if w.ExampleTranslation == "" && w.Example != "" {
		w.ExampleTranslation = NoExampleTranslation
	}
	if w.OtherForms == "" {
		w.OtherForms = NoOtherForms
	}
	return w
}

// MergeWords appends incoming words to existing ones.
// Words without text and case-insensitive duplicates are skipped, existing entries win.
func MergeWords(existing, incoming []Word) []Word {
	merged := make([]Word, 0, len(existing)+len(incoming))
	seen := make(map[string]struct{}, len(existing)+len(incoming))

	add := func(w Word) {
		key := w.Key()
		if key == "" {
			return
		}
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		merged = append(merged, w)
	}

	for _, w := range existing {
		add(w)
	}
	for _, w := range incoming {
		add(w)
	}

	return merged
}

// FindWord looks up a word by case-insensitive text
func FindWord(words []Word, text string) (Word, bool) {
	key := strings.ToLower(strings.TrimSpace(text))
	for _, w := range words {
		if w.Key() == key {
			return w, true
		}
	}
	return Word{}, false
}

// RelatedWord links a word to a synonym or otherwise associated word
type RelatedWord struct {
	Word         string `json:"word"`
	Relationship string `json:"relationship"`
	Translation  string `json:"translation"`
}

// PracticeWord is a word prepared for a fill-in-the-letters exercise
type PracticeWord struct {
	Word   Word   `json:"word"`
	Masked string `json:"masked"`
	Answer string `json:"-"`
}

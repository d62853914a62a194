package generator

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"dailyvocab/internal/domain"
)

// ErrNoJSON is returned when the completion text contains no JSON object
var ErrNoJSON = errors.New("no JSON object in response")

type wordsPayload struct {
	Words []domain.Word `json:"words"`
}

// ExtractWords decodes the {"words":[...]} object embedded in free-form completion text.
// Entries without text are dropped and missing optional fields get placeholders.
func ExtractWords(content string) ([]domain.Word, error) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return nil, ErrNoJSON
	}

	var payload wordsPayload
	if err := json.Unmarshal([]byte(content[start:end+1]), &payload); err != nil {
		return nil, fmt.Errorf("decode words payload: %w", err)
	}

	words := make([]domain.Word, 0, len(payload.Words))
	for _, w := range payload.Words {
		w.Text = strings.TrimSpace(w.Text)
		if w.Text == "" {
			continue
		}
		words = append(words, w.WithDefaults())
	}

	return words, nil
}

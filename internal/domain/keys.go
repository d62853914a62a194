package domain

// Preference keys of the per-user key-value store
const (
	KeyWordsPrefix     = "words_"
	KeyLastWordsDate   = "last_words_date"
	KeyDifficulty      = "difficulty_level"
	KeySnakeHighScore  = "snake_high_score"
	KeyTetrisHighScore = "tetris_high_score"
	KeyFavorites       = "favorite_words"
)

// WordsKey returns the cache key of the word list for a date in DateLayout
func WordsKey(date string) string {
	return KeyWordsPrefix + date
}

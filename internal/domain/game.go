package domain

// GameKind names one of the bundled arcade games
type GameKind string

const (
	GameSnake  GameKind = "snake"
	GameTetris GameKind = "tetris"
)

// HighScoreKey returns the preference key holding the best score of the game
func (g GameKind) HighScoreKey() string {
	if g == GameTetris {
		return KeyTetrisHighScore
	}
	return KeySnakeHighScore
}

// DisplayName returns the Chinese name of the game
func (g GameKind) DisplayName() string {
	if g == GameTetris {
		return "俄罗斯方块"
	}
	return "贪吃蛇"
}

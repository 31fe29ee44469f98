package bot

// Difficulty selects how many plies the search looks ahead. The values
// are the search depths themselves; odd depths end on the bot's own move.
type Difficulty int

const (
	DifficultyEasy   Difficulty = 3
	DifficultyMedium Difficulty = 5
	DifficultyHard   Difficulty = 7
	DifficultyMaster Difficulty = 9
	DifficultyUnfair Difficulty = 11
)

// ParseDifficulty maps a difficulty name to a search depth.
// Defaults to Medium if invalid or empty.
func ParseDifficulty(difficulty string) Difficulty {
	switch difficulty {
	case "easy":
		return DifficultyEasy
	case "medium":
		return DifficultyMedium
	case "hard":
		return DifficultyHard
	case "master":
		return DifficultyMaster
	case "unfair":
		return DifficultyUnfair
	default:
		return DifficultyMedium
	}
}

func (d Difficulty) String() string {
	switch d {
	case DifficultyEasy:
		return "easy"
	case DifficultyMedium:
		return "medium"
	case DifficultyHard:
		return "hard"
	case DifficultyMaster:
		return "master"
	case DifficultyUnfair:
		return "unfair"
	}
	return "unknown"
}

// Depth returns the ply budget for the negamax search.
func (d Difficulty) Depth() int {
	return int(d)
}

package domain

import (
	"fmt"
	"strings"
)

// Difficulty is one of the five question tiers. Each tier fixes the default
// time limit and point value of a question.
type Difficulty int

const (
	DifficultyEasyToGo Difficulty = iota + 1
	DifficultyMinimumThinking
	DifficultyMaximumThinking
	DifficultyCrackMyHead
	DifficultyGraniteHard
)

// TierSpec is the default (time limit, points) pair of a difficulty tier.
type TierSpec struct {
	TimeLimit int // seconds
	Points    int
}

// AllDifficulties lists the tiers from easiest to hardest.
func AllDifficulties() []Difficulty {
	return []Difficulty{
		DifficultyEasyToGo,
		DifficultyMinimumThinking,
		DifficultyMaximumThinking,
		DifficultyCrackMyHead,
		DifficultyGraniteHard,
	}
}

// Spec returns the tier defaults. The zero TierSpec is returned for an
// invalid difficulty.
func (d Difficulty) Spec() TierSpec {
	switch d {
	case DifficultyEasyToGo:
		return TierSpec{TimeLimit: 5, Points: 5}
	case DifficultyMinimumThinking:
		return TierSpec{TimeLimit: 7, Points: 10}
	case DifficultyMaximumThinking:
		return TierSpec{TimeLimit: 10, Points: 15}
	case DifficultyCrackMyHead:
		return TierSpec{TimeLimit: 15, Points: 20}
	case DifficultyGraniteHard:
		return TierSpec{TimeLimit: 20, Points: 25}
	default:
		return TierSpec{}
	}
}

func (d Difficulty) String() string {
	switch d {
	case DifficultyEasyToGo:
		return "easy-to-go"
	case DifficultyMinimumThinking:
		return "minimum-thinking"
	case DifficultyMaximumThinking:
		return "maximum-thinking"
	case DifficultyCrackMyHead:
		return "crack-my-head"
	case DifficultyGraniteHard:
		return "granite-hard"
	default:
		return fmt.Sprintf("difficulty(%d)", int(d))
	}
}

// Valid reports whether d is one of the five tiers.
func (d Difficulty) Valid() bool {
	return d >= DifficultyEasyToGo && d <= DifficultyGraniteHard
}

// ParseDifficulty converts a wire name such as "crack-my-head" to a Difficulty.
// Matching ignores case and accepts underscores in place of hyphens.
func ParseDifficulty(s string) (Difficulty, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	for _, d := range AllDifficulties() {
		if d.String() == normalized {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown difficulty %q", s)
}

// MarshalText implements encoding.TextMarshaler
func (d Difficulty) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("cannot marshal invalid difficulty %d", int(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Difficulty) UnmarshalText(text []byte) error {
	parsed, err := ParseDifficulty(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

package game

import "math/rand"

// Console carries the dialogue with the player. ReadLine blocks for
// the next command; its error ends the game (io.EOF for a closed
// input).
type Console interface {
	ReadLine() (string, error)
	Print(s string)
}

// Rand supplies the interpreter's chance rolls in [0, 1).
type Rand interface {
	Roll() float64
}

type dice struct {
	r *rand.Rand
}

func (d dice) Roll() float64 { return d.r.Float64() }

// NewDice returns a Rand drawing from math/rand seeded with seed.
func NewDice(seed int64) Rand {
	return dice{r: rand.New(rand.NewSource(seed))}
}

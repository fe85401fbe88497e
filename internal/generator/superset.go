// ABOUTME: Pairs consecutive accessory exercises into lettered supersets.
// ABOUTME: Only the fat-loss focus groups; every other focus passes through.
package generator

import (
	"github.com/mfulp2020/forgefitness/internal/heuristics"
	"github.com/mfulp2020/forgefitness/internal/models"
)

type pairState int

const (
	emptyBuffer pairState = iota
	oneBuffered
)

// GroupSupersets tags accessory pairs A, B, C... in order. A compound or
// conditioning exercise is never grouped and restarts both the pairing and
// the lettering. An unpaired accessory left at the end stays untagged.
// The input slice is not modified.
func GroupSupersets(exs []models.TemplateExercise, focus models.Focus) []models.TemplateExercise {
	out := make([]models.TemplateExercise, len(exs))
	copy(out, exs)
	if focus != models.FocusFatLoss {
		return out
	}

	state := emptyBuffer
	buffered := -1
	letter := 0
	for i := range out {
		if !heuristics.Classify(out[i].Name).Accessory() {
			state, buffered, letter = emptyBuffer, -1, 0
			continue
		}
		switch state {
		case emptyBuffer:
			state, buffered = oneBuffered, i
		case oneBuffered:
			tag := supersetTag(letter)
			for _, j := range [2]int{buffered, i} {
				out[j].SetType = models.SetTypeSuperset
				out[j].SupersetTag = tag
			}
			letter++
			state, buffered = emptyBuffer, -1
		}
	}
	return out
}

// supersetTag maps 0 to "A", 25 to "Z" and 26 to "AA".
func supersetTag(n int) string {
	if n < 26 {
		return string(rune('A' + n))
	}
	return supersetTag(n/26-1) + supersetTag(n%26)
}

package game

import "math/rand"

// ShuffleSlots draws a uniformly random bijection from the four answer
// letters onto the answer slots 1..4. Index order follows the display
// letters a, b, c, d.
func ShuffleSlots() [4]int {
	var slots [4]int
	for i, s := range rand.Perm(4) {
		slots[i] = s + 1
	}
	return slots
}

package game

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"sync"

	"github.com/lbraga/millionaire/internal/models"
)

// AidEngine computes the result of each help action for a question. The
// results are random but the caller stores them, so repeated use of the
// same help on the same question replays the stored value.
type AidEngine interface {
	FiftyFifty(gq *models.GameQuestion) []string
	AudienceVotes(gq *models.GameQuestion) map[string]int
	FriendCall(gq *models.GameQuestion) string
}

// friendNames feed the friend-call hint text.
var friendNames = []string{"Alex", "Vera", "Max", "Nina", "Oleg", "Dora"}

// friendAccuracy is the chance the phoned friend names the correct letter.
const friendAccuracy = 0.8

type randomAidEngine struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewAidEngine returns an AidEngine backed by the given source. The
// engine serializes access, so one instance can be shared.
func NewAidEngine(src rand.Source) AidEngine {
	return &randomAidEngine{rng: rand.New(src)}
}

// FiftyFifty keeps the correct letter and one random wrong letter,
// returned in display order.
func (e *randomAidEngine) FiftyFifty(gq *models.GameQuestion) []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	correct := gq.CorrectAnswerKey()
	wrong := make([]string, 0, 3)
	for _, key := range models.AnswerKeys {
		if key != correct {
			wrong = append(wrong, key)
		}
	}
	kept := []string{correct, wrong[e.rng.Intn(len(wrong))]}
	sort.Strings(kept)
	return kept
}

// AudienceVotes distributes 100 percentage points over the letters still
// on the table, weighted toward the correct one.
func (e *randomAidEngine) AudienceVotes(gq *models.GameQuestion) map[string]int {
	e.mu.Lock()
	defer e.mu.Unlock()

	keys := gq.AvailableKeys()
	correct := gq.CorrectAnswerKey()

	weights := make(map[string]int, len(keys))
	total := 0
	for _, key := range keys {
		w := 10 + e.rng.Intn(40)
		if key == correct {
			w += 50
		}
		weights[key] = w
		total += w
	}

	votes := make(map[string]int, len(keys))
	assigned := 0
	for i, key := range keys {
		if i == len(keys)-1 {
			votes[key] = 100 - assigned
			break
		}
		share := weights[key] * 100 / total
		votes[key] = share
		assigned += share
	}
	return votes
}

// FriendCall produces a hint sentence naming one letter. The friend is
// right most of the time but may guess among the letters still available.
func (e *randomAidEngine) FriendCall(gq *models.GameQuestion) string {
	e.mu.Lock()
	defer e.mu.Unlock()

	keys := gq.AvailableKeys()
	correct := gq.CorrectAnswerKey()

	pick := correct
	if e.rng.Float64() >= friendAccuracy {
		pick = keys[e.rng.Intn(len(keys))]
	}
	name := friendNames[e.rng.Intn(len(friendNames))]
	return fmt.Sprintf("%s thinks the answer is %s", name, strings.ToUpper(pick))
}

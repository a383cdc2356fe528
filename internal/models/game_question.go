package models

import "time"

// AnswerKeys are the presentation letters in display order.
var AnswerKeys = []string{"a", "b", "c", "d"}

// correctSlot is the catalog slot that always holds the correct answer.
const correctSlot = 1

// HelpHash holds the computed help results for one game question. Each
// field is written at most once; repeated help use returns the stored
// value.
type HelpHash struct {
	FiftyFifty   []string       `json:"fifty_fifty,omitempty"`
	AudienceHelp map[string]int `json:"audience_help,omitempty"`
	FriendCall   string         `json:"friend_call,omitempty"`
}

// GameQuestion binds a catalog question to one ladder level of one game.
// The letter columns hold a random permutation of the answer slots 1..4,
// fixed at creation; the letter mapped to slot 1 is the correct key. The
// mapping is never serialized to clients.
type GameQuestion struct {
	ID         int64     `json:"id"`
	GameID     int64     `json:"game_id"`
	QuestionID int64     `json:"question_id"`
	Level      int       `json:"level"`
	A          int       `json:"-"`
	B          int       `json:"-"`
	C          int       `json:"-"`
	D          int       `json:"-"`
	Help       HelpHash  `json:"help"`
	CreatedAt  time.Time `json:"created_at"`

	// Question is the joined catalog row, loaded alongside the mapping.
	Question *Question `json:"-"`
}

func (gq *GameQuestion) slot(key string) int {
	switch key {
	case "a":
		return gq.A
	case "b":
		return gq.B
	case "c":
		return gq.C
	case "d":
		return gq.D
	default:
		return 0
	}
}

// CorrectAnswerKey returns the letter mapped to the correct answer slot.
func (gq *GameQuestion) CorrectAnswerKey() string {
	for _, key := range AnswerKeys {
		if gq.slot(key) == correctSlot {
			return key
		}
	}
	return ""
}

// AnswerCorrect reports whether the given letter is the correct key.
// Anything that is not the correct key, including malformed input, is
// simply a wrong answer.
func (gq *GameQuestion) AnswerCorrect(key string) bool {
	return key != "" && key == gq.CorrectAnswerKey()
}

// Variants maps each presentation letter to its answer text.
func (gq *GameQuestion) Variants() map[string]string {
	if gq.Question == nil {
		return nil
	}
	variants := make(map[string]string, len(AnswerKeys))
	for _, key := range AnswerKeys {
		variants[key] = gq.Question.Answer(gq.slot(key))
	}
	return variants
}

// Text returns the underlying question text.
func (gq *GameQuestion) Text() string {
	if gq.Question == nil {
		return ""
	}
	return gq.Question.Text
}

// AvailableKeys returns the letters still on the table: the fifty-fifty
// pair once that help was used, all four letters otherwise.
func (gq *GameQuestion) AvailableKeys() []string {
	if len(gq.Help.FiftyFifty) > 0 {
		return gq.Help.FiftyFifty
	}
	return AnswerKeys
}

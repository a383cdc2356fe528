package models

import "time"

// Question is an immutable catalog entry. Answer1 always holds the correct
// answer; the presentation order is decided per game by the GameQuestion
// letter assignment, never by the catalog row.
type Question struct {
	ID        int64     `json:"id"`
	Level     int       `json:"level"`
	Text      string    `json:"text"`
	Answer1   string    `json:"answer1"`
	Answer2   string    `json:"answer2"`
	Answer3   string    `json:"answer3"`
	Answer4   string    `json:"answer4"`
	CreatedAt time.Time `json:"created_at"`
}

// Answer returns the answer text stored in the given slot (1..4).
func (q *Question) Answer(slot int) string {
	switch slot {
	case 1:
		return q.Answer1
	case 2:
		return q.Answer2
	case 3:
		return q.Answer3
	case 4:
		return q.Answer4
	default:
		return ""
	}
}

// QuestionFilter narrows catalog listings. Level below zero matches all
// levels.
type QuestionFilter struct {
	Level  int
	Search string
	Limit  int
	Offset int
}

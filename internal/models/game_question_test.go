package models_test

import (
	"testing"

	"github.com/lbraga/millionaire/internal/models"
	"github.com/stretchr/testify/assert"
)

func newGameQuestion() *models.GameQuestion {
	return &models.GameQuestion{
		ID:         1,
		GameID:     1,
		QuestionID: 42,
		Level:      3,
		A:          2,
		B:          1,
		C:          4,
		D:          3,
		Question: &models.Question{
			ID:      42,
			Level:   3,
			Text:    "What is the capital of Brazil?",
			Answer1: "Brasília",
			Answer2: "Rio de Janeiro",
			Answer3: "São Paulo",
			Answer4: "Salvador",
		},
	}
}

func TestGameQuestion_CorrectAnswerKey(t *testing.T) {
	gq := newGameQuestion()
	assert.Equal(t, "b", gq.CorrectAnswerKey())
}

func TestGameQuestion_Variants(t *testing.T) {
	gq := newGameQuestion()

	variants := gq.Variants()
	assert.Equal(t, map[string]string{
		"a": "Rio de Janeiro",
		"b": "Brasília",
		"c": "Salvador",
		"d": "São Paulo",
	}, variants)
}

func TestGameQuestion_Variants_NoQuestionLoaded(t *testing.T) {
	gq := newGameQuestion()
	gq.Question = nil
	assert.Nil(t, gq.Variants())
}

func TestGameQuestion_AnswerCorrect(t *testing.T) {
	gq := newGameQuestion()

	assert.True(t, gq.AnswerCorrect("b"))
	assert.False(t, gq.AnswerCorrect("a"))
	assert.False(t, gq.AnswerCorrect("c"))
	assert.False(t, gq.AnswerCorrect("d"))
}

func TestGameQuestion_AnswerCorrect_MalformedInput(t *testing.T) {
	gq := newGameQuestion()

	assert.False(t, gq.AnswerCorrect(""))
	assert.False(t, gq.AnswerCorrect("B"))
	assert.False(t, gq.AnswerCorrect("e"))
	assert.False(t, gq.AnswerCorrect("ab"))
}

func TestGameQuestion_Text(t *testing.T) {
	gq := newGameQuestion()
	assert.Equal(t, "What is the capital of Brazil?", gq.Text())

	gq.Question = nil
	assert.Equal(t, "", gq.Text())
}

func TestGameQuestion_AvailableKeys(t *testing.T) {
	gq := newGameQuestion()
	assert.Equal(t, []string{"a", "b", "c", "d"}, gq.AvailableKeys())

	gq.Help.FiftyFifty = []string{"b", "d"}
	assert.Equal(t, []string{"b", "d"}, gq.AvailableKeys())
}

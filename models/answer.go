package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// AnswerValue is the answer key of a question as it arrives in a quiz
// create or update request. Clients send it as a number or a numeric string;
// anything unparseable or negative normalizes to 0, so every stored key is a
// valid option index. Submitted answers go through SelectedOption instead.
type AnswerValue int

func (a *AnswerValue) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `""` {
		*a = 0
		return nil
	}

	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*a = AnswerValue(clampIndex(n))
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		n, err := strconv.Atoi(strings.TrimSpace(str))
		if err != nil {
			*a = 0
			return nil
		}
		*a = AnswerValue(clampIndex(n))
		return nil
	}

	// Unexpected shape (object, array, bool): normalize rather than fail.
	*a = 0
	return nil
}

func (a AnswerValue) Int() int { return int(a) }

func clampIndex(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// NoAnswer marks a question the student left unanswered.
const NoAnswer = -1

// SelectedOption is the option index a student submits for one question.
// Clients send null for questions they skipped, and the index itself may
// arrive as a number or a numeric string. Null, unparseable, and negative
// input all become NoAnswer, never 0: a skipped question must not match a
// question whose answer key is the first option.
type SelectedOption int

func (o *SelectedOption) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `""` {
		*o = NoAnswer
		return nil
	}

	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*o = normalizeSelected(n)
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		n, err := strconv.Atoi(strings.TrimSpace(str))
		if err != nil {
			*o = NoAnswer
			return nil
		}
		*o = normalizeSelected(n)
		return nil
	}

	// Unexpected shape (object, array, bool): treat as unanswered.
	*o = NoAnswer
	return nil
}

func (o SelectedOption) Int() int { return int(o) }

func normalizeSelected(n int) SelectedOption {
	if n < 0 {
		return NoAnswer
	}
	return SelectedOption(n)
}

// AnswerRecord is one evaluated answer inside a report, stored as part of the
// report's jsonb answers column. SelectedAnswer is NoAnswer for a question
// the student skipped.
type AnswerRecord struct {
	QuestionID     uint `json:"question_id"`
	SelectedAnswer int  `json:"selected_answer"`
	IsCorrect      bool `json:"is_correct"`
	TimeSpent      int  `json:"time_spent"` // seconds
}

// Package models defines server-side data models persisted in the database
// and the validation rules applied to inbound data.
package models

import "time"

// Question is a value owned by its Quiz. It is stored inside the quiz row
// and has no identity of its own.
type Question struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Correct  string   `json:"correct"`
}

// Quiz is a titled, described set of 2 to 5 questions.
type Quiz struct {
	ID          string
	Title       string
	Description string
	Questions   []Question
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// QuizInput carries the user-editable fields of a quiz for create and edit.
type QuizInput struct {
	Title       string
	Description string
	Questions   []Question
}

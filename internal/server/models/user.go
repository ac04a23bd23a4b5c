package models

import "time"

// User is a registered account. QuizIDs is the denormalized, insertion
// ordered list of quizzes the user has access to.
type User struct {
	ID           string
	UserName     string
	Email        string
	PasswordHash []byte
	QuizIDs      []string
	CreatedAt    time.Time
}

// HasQuiz reports whether quizID is already referenced by the user.
func (u *User) HasQuiz(quizID string) bool {
	for _, id := range u.QuizIDs {
		if id == quizID {
			return true
		}
	}
	return false
}

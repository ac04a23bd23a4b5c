package models

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/quizhub/internal/common"
	"github.com/google/uuid"
)

// Field limits, inclusive.
const (
	TitleMinLen       = 3
	TitleMaxLen       = 50
	DescriptionMinLen = 3
	DescriptionMaxLen = 120
	QuestionsMin      = 2
	QuestionsMax      = 5
	UserNameMinLen    = 3
	UserNameMaxLen    = 30
)

// ValidateQuizInput checks every quiz field and reports all violations at once.
func ValidateQuizInput(in QuizInput) error {
	v := &common.ValidationError{}

	checkLen(v, "title", in.Title, TitleMinLen, TitleMaxLen)
	checkLen(v, "description", in.Description, DescriptionMinLen, DescriptionMaxLen)

	if n := len(in.Questions); n < QuestionsMin || n > QuestionsMax {
		v.Add("questions", fmt.Sprintf("must contain between %d and %d questions", QuestionsMin, QuestionsMax))
	}
	for i, q := range in.Questions {
		field := fmt.Sprintf("questions[%d]", i)
		if q.Question == "" {
			v.Add(field+".question", "is required")
		}
		if len(q.Options) == 0 {
			v.Add(field+".options", "is required")
		}
		for j, opt := range q.Options {
			if opt == "" {
				v.Add(fmt.Sprintf("%s.options[%d]", field, j), "must not be empty")
			}
		}
		if q.Correct == "" {
			v.Add(field+".correct", "is required")
		}
	}

	return v.OrNil()
}

// ValidateQuizID rejects empty ids and ids that are not UUIDs.
func ValidateQuizID(id string) error {
	if id == "" {
		return common.NewValidationError("Please enter a quiz id and try again.")
	}
	if _, err := uuid.Parse(id); err != nil {
		v := common.NewValidationError("Please enter a valid quiz id and try again.")
		v.Add("id", "must be a UUID")
		return v
	}
	return nil
}

// ValidateSignup checks registration input.
func ValidateSignup(username, email, password string) error {
	v := &common.ValidationError{}

	checkLen(v, "username", username, UserNameMinLen, UserNameMaxLen)
	if password == "" {
		v.Add("password", "is required")
	}
	if !isEmail(email) {
		v.Add("email", "must be a valid email address")
	}

	return v.OrNil()
}

// ValidateLogin checks that both credentials are present.
func ValidateLogin(username, password string) error {
	v := &common.ValidationError{}
	if username == "" {
		v.Add("username", "is required")
	}
	if password == "" {
		v.Add("password", "is required")
	}
	return v.OrNil()
}

func checkLen(v *common.ValidationError, field, value string, min, max int) {
	if n := utf8.RuneCountInString(value); n < min || n > max {
		v.Add(field, fmt.Sprintf("must be between %d and %d characters", min, max))
	}
}

// isEmail accepts a bare RFC 5322 address with a dotted domain; display
// names ("Bob <bob@x.io>") are rejected.
func isEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Name != "" || addr.Address != s {
		return false
	}
	domain := s[strings.LastIndex(s, "@")+1:]
	dot := strings.Index(domain, ".")
	return dot > 0 && dot < len(domain)-1
}

package httpapi

import (
	"time"

	"github.com/dmitrijs2005/quizhub/internal/server/models"
)

type quizRequest struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Questions   []models.Question `json:"questions"`
}

func (q quizRequest) toInput() models.QuizInput {
	return models.QuizInput{Title: q.Title, Description: q.Description, Questions: q.Questions}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type quizDTO struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Questions   []models.Question `json:"questions"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

func toQuizDTO(q *models.Quiz) quizDTO {
	qs := q.Questions
	if qs == nil {
		qs = []models.Question{}
	}
	return quizDTO{
		ID:          q.ID,
		Title:       q.Title,
		Description: q.Description,
		Questions:   qs,
		CreatedAt:   q.CreatedAt,
		UpdatedAt:   q.UpdatedAt,
	}
}

func toQuizDTOs(qs []*models.Quiz) []quizDTO {
	out := make([]quizDTO, 0, len(qs))
	for _, q := range qs {
		out = append(out, toQuizDTO(q))
	}
	return out
}

type quizResponse struct {
	Quiz quizDTO `json:"quiz"`
}

type quizzesResponse struct {
	Quizzes []quizDTO `json:"quizzes"`
}

type sessionResponse struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Token  string `json:"token"`
}

type messageResponse struct {
	Message string `json:"message"`
}

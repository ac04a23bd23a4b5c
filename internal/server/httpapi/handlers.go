package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/quizhub/internal/common"
	"github.com/dmitrijs2005/quizhub/internal/server/services"
	"github.com/gorilla/mux"
)

func (s *HTTPServer) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (s *HTTPServer) routeNotSupported(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusNotFound, errorResponse{
		Status:  http.StatusNotFound,
		Message: "This route is not supported.",
	})
}

func (s *HTTPServer) listQuizzes(w http.ResponseWriter, r *http.Request) {
	quizzes, err := s.quizzes.ListAll(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, quizzesResponse{Quizzes: toQuizDTOs(quizzes)})
}

func (s *HTTPServer) listUserQuizzes(w http.ResponseWriter, r *http.Request) {
	quizzes, err := s.users.ListForUser(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, quizzesResponse{Quizzes: toQuizDTOs(quizzes)})
}

func (s *HTTPServer) getQuiz(w http.ResponseWriter, r *http.Request) {
	quiz, err := s.quizzes.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, quizResponse{Quiz: toQuizDTO(quiz)})
}

func (s *HTTPServer) createQuiz(w http.ResponseWriter, r *http.Request) {
	var req quizRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	quiz, err := s.quizzes.Create(r.Context(), req.toInput())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "quiz created", "quiz_id", quiz.ID, "user_id", userIDFromContext(r.Context()))
	s.writeJSON(w, r, http.StatusOK, quizResponse{Quiz: toQuizDTO(quiz)})
}

func (s *HTTPServer) editQuiz(w http.ResponseWriter, r *http.Request) {
	var req quizRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	quiz, err := s.quizzes.Edit(r.Context(), mux.Vars(r)["id"], req.toInput())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, quizResponse{Quiz: toQuizDTO(quiz)})
}

func (s *HTTPServer) deleteQuiz(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := s.quizzes.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "quiz deleted", "quiz_id", id, "user_id", userIDFromContext(r.Context()))
	s.writeJSON(w, r, http.StatusOK, messageResponse{Message: "Quiz deleted successfully."})
}

func (s *HTTPServer) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	sess, err := s.users.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeSession(w, r, sess)
}

func (s *HTTPServer) signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	sess, err := s.users.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "Registered", "username", req.Username, "user_id", sess.UserID)
	s.writeSession(w, r, sess)
}

func (s *HTTPServer) writeSession(w http.ResponseWriter, r *http.Request, sess *services.Session) {
	if sess == nil || sess.Token == "" {
		s.writeError(w, r, common.NewError(common.ErrorInternal, "No user token was created. Please try again later.", nil))
		return
	}
	s.writeJSON(w, r, http.StatusOK, sessionResponse{UserID: sess.UserID, Email: sess.Email, Token: sess.Token})
}

package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Handler builds the route table. CORS and access logging wrap everything,
// including unmatched routes; bearer auth guards /api/quiz only.
func (s *HTTPServer) Handler() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", s.health).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	user := api.PathPrefix("/user").Subrouter()
	user.HandleFunc("/login", s.login).Methods(http.MethodPost)
	user.HandleFunc("/signup", s.signup).Methods(http.MethodPost)

	quiz := api.PathPrefix("/quiz").Subrouter()
	quiz.Use(s.requireAuth)
	quiz.HandleFunc("", s.listQuizzes).Methods(http.MethodGet)
	quiz.HandleFunc("", s.createQuiz).Methods(http.MethodPost)
	// must precede /{id}
	quiz.HandleFunc("/user", s.listUserQuizzes).Methods(http.MethodGet)
	quiz.HandleFunc("/{id}", s.getQuiz).Methods(http.MethodGet)
	quiz.HandleFunc("/{id}", s.editQuiz).Methods(http.MethodPatch)
	quiz.HandleFunc("/{id}", s.deleteQuiz).Methods(http.MethodDelete)

	r.NotFoundHandler = http.HandlerFunc(s.routeNotSupported)
	r.MethodNotAllowedHandler = http.HandlerFunc(s.routeNotSupported)

	return s.withLogging(withCORS(r))
}

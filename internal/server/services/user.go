package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/dmitrijs2005/quizhub/internal/common"
	"github.com/dmitrijs2005/quizhub/internal/dbx"
	"github.com/dmitrijs2005/quizhub/internal/server/auth"
	"github.com/dmitrijs2005/quizhub/internal/server/config"
	"github.com/dmitrijs2005/quizhub/internal/server/models"
	"github.com/dmitrijs2005/quizhub/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/quizhub/internal/server/repositories/users"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	msgUserNotFound  = "User not found."
	msgWrongPassword = "Wrong password."
	msgEmailTaken    = "This email already exists."
	msgUserNameTaken = "The provided username was taken. Please re-enter a unique username and try again."
	msgTokenFailed   = "Something went wrong while creating user token."
)

// Session is what a successful login or signup hands back to the client.
type Session struct {
	UserID string
	Email  string
	Token  string
}

// UserService provides account operations:
// - Register: create a user that starts with every existing quiz
// - Authenticate: verify credentials and mint an access token
// - ListForUser: resolve a user's quiz list to quizzes
type UserService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	fanout                      *FanOut
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
	bcryptCost                  int
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, fanout *FanOut, cfg *config.Config) *UserService {
	return &UserService{
		db:                          db,
		repomanager:                 m,
		fanout:                      fanout,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
		bcryptCost:                  cfg.BcryptCost,
	}
}

// Authenticate checks username and password. An unknown username is reported
// as not found, a bad password as unauthorized.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*Session, error) {
	if err := models.ValidateLogin(username, password); err != nil {
		return nil, err
	}

	user, err := s.repomanager.Users(s.db).GetUserByLogin(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.NewError(common.ErrorNotFound, msgUserNotFound, nil)
		}
		return nil, storageError("Something went wrong while checking for username.", err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, common.NewError(common.ErrorUnauthorized, msgWrongPassword, nil)
		}
		return nil, common.NewError(common.ErrorInternal, "Something went wrong while checking for password.", err)
	}

	return s.newSession(user)
}

// Register creates a user whose quiz list is every quiz existing when the
// call starts. A taken email is reported before a taken username.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*Session, error) {
	if err := models.ValidateSignup(username, email, password); err != nil {
		return nil, err
	}

	repo := s.repomanager.Users(s.db)
	userNameTaken, err := exists(repo.GetUserByLogin(ctx, username))
	if err != nil {
		return nil, storageError("Something went wrong while checking for username/email.", err)
	}
	emailTaken, err := exists(repo.GetUserByEmail(ctx, email))
	if err != nil {
		return nil, storageError("Something went wrong while checking for username/email.", err)
	}
	if emailTaken {
		return nil, common.NewError(common.ErrorConflict, msgEmailTaken, nil)
	}
	if userNameTaken {
		return nil, common.NewError(common.ErrorConflict, msgUserNameTaken, nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			v := common.NewValidationError("")
			v.Add("password", "must be at most 72 bytes")
			return nil, v
		}
		return nil, common.NewError(common.ErrorInternal, "Something went wrong while saving the user password. Please try again later.", err)
	}

	quizIDs, err := s.fanout.SnapshotForNewUser(ctx, s.db)
	if err != nil {
		return nil, storageError("Something went wrong while getting the quizzes data for the user. Please try again later.", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		UserName:     username,
		Email:        email,
		PasswordHash: hash,
		QuizIDs:      quizIDs,
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		user, err = s.repomanager.Users(tx).Create(ctx, user)
		return err
	})
	switch {
	case err == nil:
	case errors.Is(err, users.ErrEmailTaken):
		return nil, common.NewError(common.ErrorConflict, msgEmailTaken, err)
	case errors.Is(err, users.ErrUserNameTaken):
		return nil, common.NewError(common.ErrorConflict, msgUserNameTaken, err)
	default:
		return nil, storageError("Something went wrong while saving userdata.", err)
	}

	return s.newSession(user)
}

// ListForUser returns the quizzes on the user's list, in list order. Ids
// whose quiz has since been deleted are skipped.
func (s *UserService) ListForUser(ctx context.Context, userID string) ([]*models.Quiz, error) {
	if userID == "" {
		return nil, common.NewValidationError("Please login and try again.")
	}

	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.NewError(common.ErrorNotFound, msgUserNotFound, nil)
		}
		return nil, storageError("Something went wrong while getting the quizzes data.", err)
	}

	found, err := s.repomanager.Quizzes(s.db).ListByIDs(ctx, user.QuizIDs)
	if err != nil {
		return nil, storageError("Something went wrong while getting the quizzes data.", err)
	}

	byID := make(map[string]*models.Quiz, len(found))
	for _, q := range found {
		byID[q.ID] = q
	}
	out := make([]*models.Quiz, 0, len(found))
	for _, id := range user.QuizIDs {
		if q, ok := byID[id]; ok {
			out = append(out, q)
			delete(byID, id)
		}
	}
	return out, nil
}

// --- helpers below ---

func (s *UserService) newSession(user *models.User) (*Session, error) {
	token, err := auth.GenerateToken(user.ID, user.Email, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.NewError(common.ErrorInternal, msgTokenFailed, err)
	}
	return &Session{UserID: user.ID, Email: user.Email, Token: token}, nil
}

// exists turns a lookup result into a presence flag; not found is not an error.
func exists(_ *models.User, err error) (bool, error) {
	if err == nil {
		return true, nil
	}
	if errors.Is(err, common.ErrorNotFound) {
		return false, nil
	}
	return false, err
}

package services

import (
	"context"
	"errors"
	"io"

	"github.com/google/uuid"
	"github.com/monkeymesh/monkeymesh/internal/logger"
	"github.com/monkeymesh/monkeymesh/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// Error variables
var (
	ErrUserAlreadyExists  = errors.New("username already exists")
	ErrUserDoesNotExist   = errors.New("username does not exist")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// SessionWriter defines write operations for live sessions.
type SessionWriter interface {
	Save(ctx context.Context, sessionID uuid.UUID, username string) error
	Delete(ctx context.Context, sessionID uuid.UUID) error
}

// TokenGenerator defines an interface for issuing signed session tokens.
type TokenGenerator interface {
	Generate(ctx context.Context, username string, sessionID uuid.UUID) (string, error)
}

// AuthService handles signup, login and logout.
type AuthService struct {
	reader      UserReader
	writer      UserWriter
	sessions    SessionWriter
	tokens      TokenGenerator
	files       FileSaver
	kafkaWriter KafkaWriter
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(
	reader UserReader,
	writer UserWriter,
	sessions SessionWriter,
	tokens TokenGenerator,
	files FileSaver,
	kafkaWriter KafkaWriter,
) *AuthService {
	return &AuthService{
		reader:      reader,
		writer:      writer,
		sessions:    sessions,
		tokens:      tokens,
		files:       files,
		kafkaWriter: kafkaWriter,
	}
}

// Register creates a new user. The avatar is optional: a missing or
// disallowed file leaves the profile picture unset, which is not an error.
// Username uniqueness is decided by the store's atomic insert, not by a
// separate existence check.
func (svc *AuthService) Register(ctx context.Context, username, password, avatarName string, avatar io.Reader) error {
	var profilePic *string
	if avatar != nil {
		ref, err := svc.files.Save(ctx, avatarName, avatar)
		if err != nil {
			logger.Log.Errorw("failed to store avatar", "username", username, "err", err)
			return err
		}
		if ref != "" {
			profilePic = &ref
		}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return err
	}

	inserted, err := svc.writer.Save(ctx, username, string(hashedPassword), profilePic)
	if err != nil {
		logger.Log.Errorw("failed to save user", "err", err)
		return err
	}
	if !inserted {
		logger.Log.Errorw("user already exists", "username", username)
		return ErrUserAlreadyExists
	}

	publishActivity(ctx, svc.kafkaWriter, newActivity(models.ActivityUserRegistered, username))

	return nil
}

// Login authenticates a user, creates a live session and returns a signed
// session token.
func (svc *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := svc.reader.GetByUsername(ctx, username)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return "", err
	}
	if user == nil {
		logger.Log.Errorw("user does not exist", "username", username)
		return "", ErrUserDoesNotExist
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.Log.Errorw("invalid credentials", "username", username)
		return "", ErrInvalidCredentials
	}

	sessionID := uuid.New()
	if err := svc.sessions.Save(ctx, sessionID, username); err != nil {
		logger.Log.Errorw("failed to create session", "username", username, "err", err)
		return "", err
	}

	token, err := svc.tokens.Generate(ctx, username, sessionID)
	if err != nil {
		logger.Log.Errorw("failed to generate session token", "err", err)
		return "", err
	}

	return token, nil
}

// Logout destroys the live session. A token for a destroyed session is
// refused by the auth gate from then on.
func (svc *AuthService) Logout(ctx context.Context, sessionID uuid.UUID) error {
	if err := svc.sessions.Delete(ctx, sessionID); err != nil {
		logger.Log.Errorw("failed to delete session", "session_id", sessionID, "err", err)
		return err
	}
	return nil
}

package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/yigit/invigilate/internal/app/models"
	"github.com/yigit/invigilate/internal/app/repositories"
	"github.com/yigit/invigilate/internal/pkg/apperrors"
	"github.com/yigit/invigilate/internal/pkg/auth"
)

// LoginResult is returned by a successful login.
type LoginResult struct {
	AccessToken string          `json:"accessToken"`
	ExpiresIn   int             `json:"expiresIn"`
	Faculty     *models.Faculty `json:"faculty"`
}

// AuthService authenticates faculty members
type AuthService interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	CurrentFaculty(ctx context.Context, actor Actor) (*models.Faculty, error)
}

type authServiceImpl struct {
	store  repositories.FacultyStore
	jwt    *auth.JWTService
	logger zerolog.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(store repositories.FacultyStore, jwt *auth.JWTService, logger zerolog.Logger) AuthService {
	return &authServiceImpl{store: store, jwt: jwt, logger: logger}
}

// Login checks the credentials and issues an access token. Unknown users and
// wrong passwords produce the same error.
func (s *authServiceImpl) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	faculty, err := s.store.GetFacultyByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			s.logger.Info().Str("username", username).Msg("Login attempt for unknown user")
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, translate(err, apperrors.ErrInvalidCredentials, "looking up faculty")
	}

	if !auth.CheckPassword(faculty.Password, password) {
		s.logger.Info().Str("username", username).Msg("Login attempt with wrong password")
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresIn, err := s.jwt.GenerateAccessToken(faculty)
	if err != nil {
		s.logger.Error().Err(err).Int64("facultyID", faculty.ID).Msg("Failed to generate access token")
		return nil, err
	}

	return &LoginResult{AccessToken: token, ExpiresIn: expiresIn, Faculty: faculty}, nil
}

func (s *authServiceImpl) CurrentFaculty(ctx context.Context, actor Actor) (*models.Faculty, error) {
	faculty, err := s.store.GetFaculty(ctx, actor.FacultyID)
	if err != nil {
		return nil, translate(err, apperrors.ErrFacultyNotFound, "retrieving current faculty")
	}
	return faculty, nil
}

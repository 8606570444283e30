package services

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/yigit/invigilate/internal/app/models"
	"github.com/yigit/invigilate/internal/app/repositories"
	"github.com/yigit/invigilate/internal/pkg/apperrors"
	"github.com/yigit/invigilate/internal/pkg/auth"
)

// PasswordHasher turns a plaintext password into its stored form.
type PasswordHasher func(password string) (string, error)

// Default faculty attributes used when a member is created implicitly.
const (
	DefaultDepartment = "CSE"
	DefaultRole       = models.RoleAssistantProfessor
)

// FacultyService defines the interface for faculty-related operations
type FacultyService interface {
	CreateFaculty(ctx context.Context, faculty *models.Faculty) (*models.Faculty, error)
	GetFaculty(ctx context.Context, id int64) (*models.Faculty, error)
	ListFaculty(ctx context.Context) ([]*models.Faculty, error)
	// EnsureAdmin creates the administrator account, or grants admin to an
	// existing account with the same username.
	EnsureAdmin(ctx context.Context, username, password string) (*models.Faculty, error)
}

// facultyServiceImpl implements the FacultyService interface
type facultyServiceImpl struct {
	store  repositories.FacultyStore
	hash   PasswordHasher
	logger zerolog.Logger
}

// NewFacultyService creates a new faculty service instance. A nil hasher
// defaults to bcrypt.
func NewFacultyService(store repositories.FacultyStore, hash PasswordHasher, logger zerolog.Logger) FacultyService {
	if hash == nil {
		hash = auth.HashPassword
	}
	return &facultyServiceImpl{
		store:  store,
		hash:   hash,
		logger: logger,
	}
}

// validateFaculty validates faculty data before it is stored
func validateFaculty(faculty *models.Faculty) error {
	if faculty == nil {
		return apperrors.NewValidationError("faculty is nil")
	}
	if strings.TrimSpace(faculty.Name) == "" {
		return apperrors.NewValidationError("name cannot be empty")
	}
	if strings.TrimSpace(faculty.Username) == "" {
		return apperrors.NewValidationError("username cannot be empty")
	}
	if strings.ContainsAny(faculty.Username, " \t\n") {
		return apperrors.NewValidationError("username cannot contain whitespace")
	}
	if faculty.Password == "" {
		return apperrors.NewValidationError("password cannot be empty")
	}
	if strings.TrimSpace(faculty.Department) == "" {
		return apperrors.NewValidationError("department cannot be empty")
	}
	if faculty.Role != "" && !faculty.Role.Valid() {
		return validationf("unknown role %q", faculty.Role)
	}
	return nil
}

// CreateFaculty hashes the plaintext password and stores the member
func (s *facultyServiceImpl) CreateFaculty(ctx context.Context, faculty *models.Faculty) (*models.Faculty, error) {
	if faculty == nil {
		return nil, apperrors.NewValidationError("faculty is nil")
	}
	row := *faculty
	row.Name = strings.TrimSpace(row.Name)
	row.Department = strings.TrimSpace(row.Department)
	if row.Department == "" {
		row.Department = DefaultDepartment
	}
	if row.Role == "" {
		row.Role = DefaultRole
	}
	if err := validateFaculty(&row); err != nil {
		return nil, err
	}

	hashed, err := s.hash(row.Password)
	if err != nil {
		return nil, err
	}
	row.Password = hashed

	created, err := s.store.CreateFaculty(ctx, &row)
	if err != nil {
		return nil, translate(err, apperrors.ErrFacultyNotFound, "creating faculty")
	}

	s.logger.Info().Int64("facultyID", created.ID).Str("username", created.Username).Msg("Faculty created")
	return created, nil
}

// GetFaculty retrieves a faculty member by ID
func (s *facultyServiceImpl) GetFaculty(ctx context.Context, id int64) (*models.Faculty, error) {
	if err := validID(id, "faculty"); err != nil {
		return nil, err
	}

	faculty, err := s.store.GetFaculty(ctx, id)
	if err != nil {
		return nil, translate(err, apperrors.ErrFacultyNotFound, "retrieving faculty")
	}
	return faculty, nil
}

// ListFaculty retrieves all faculty members
func (s *facultyServiceImpl) ListFaculty(ctx context.Context) ([]*models.Faculty, error) {
	faculty, err := s.store.ListFaculty(ctx)
	if err != nil {
		return nil, translate(err, apperrors.ErrFacultyNotFound, "retrieving faculty")
	}
	return faculty, nil
}

func (s *facultyServiceImpl) EnsureAdmin(ctx context.Context, username, password string) (*models.Faculty, error) {
	existing, err := s.store.GetFacultyByUsername(ctx, username)
	if err == nil {
		if existing.IsAdmin {
			return existing, nil
		}
		admin := true
		updated, err := s.store.UpdateFaculty(ctx, existing.ID, models.FacultyPatch{IsAdmin: &admin})
		if err != nil {
			return nil, translate(err, apperrors.ErrFacultyNotFound, "promoting admin")
		}
		s.logger.Warn().Str("username", username).Msg("Existing faculty account promoted to admin")
		return updated, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, translate(err, apperrors.ErrFacultyNotFound, "looking up admin")
	}

	return s.CreateFaculty(ctx, &models.Faculty{
		Name:       "Admin",
		Username:   username,
		Password:   password,
		Department: "Administration",
		Role:       models.RoleOther,
		IsAdmin:    true,
	})
}

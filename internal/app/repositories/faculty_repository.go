package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/yigit/invigilate/internal/app/models"
	"github.com/yigit/invigilate/internal/pkg/dberrors"
	"github.com/yigit/invigilate/internal/pkg/logger"
)

const facultyUsernameConstraint = "faculty_username_key"

var facultyColumns = []string{"id", "name", "username", "password", "department", "role", "is_admin"}

func scanFaculty(row scanner) (*models.Faculty, error) {
	f := &models.Faculty{}
	err := row.Scan(&f.ID, &f.Name, &f.Username, &f.Password, &f.Department, &f.Role, &f.IsAdmin)
	return f, err
}

// CreateFaculty inserts a faculty member. Usernames are unique.
func (s *PostgresStore) CreateFaculty(ctx context.Context, faculty *models.Faculty) (*models.Faculty, error) {
	role := faculty.Role
	if role == "" {
		role = models.RoleAssistantProfessor
	}

	b := s.sb.Insert("faculty").
		Columns("name", "username", "password", "department", "role", "is_admin").
		Values(faculty.Name, faculty.Username, faculty.Password, faculty.Department, role, faculty.IsAdmin).
		Suffix("RETURNING " + joinColumns(facultyColumns))

	created, err := queryOne(ctx, s.pg.Pool, b, "faculty", scanFaculty)
	if err != nil {
		if dberrors.IsUniqueViolation(err, facultyUsernameConstraint) {
			return nil, ErrAlreadyExists
		}
		logger.Error().Err(err).Str("username", faculty.Username).Msg("Error creating faculty")
		return nil, err
	}
	return created, nil
}

// GetFaculty retrieves a faculty member by ID
func (s *PostgresStore) GetFaculty(ctx context.Context, id int64) (*models.Faculty, error) {
	b := s.sb.Select(facultyColumns...).From("faculty").Where(squirrel.Eq{"id": id}).Limit(1)
	return queryOne(ctx, s.pg.Pool, b, "faculty", scanFaculty)
}

// GetFacultyByUsername retrieves a faculty member by login name
func (s *PostgresStore) GetFacultyByUsername(ctx context.Context, username string) (*models.Faculty, error) {
	b := s.sb.Select(facultyColumns...).From("faculty").Where(squirrel.Eq{"username": username}).Limit(1)
	return queryOne(ctx, s.pg.Pool, b, "faculty", scanFaculty)
}

// ListFaculty retrieves all faculty ordered by ID
func (s *PostgresStore) ListFaculty(ctx context.Context) ([]*models.Faculty, error) {
	b := s.sb.Select(facultyColumns...).From("faculty").OrderBy("id ASC")
	return queryAll(ctx, s.pg.Pool, b, "faculty", scanFaculty)
}

// UpdateFaculty applies the non-nil fields of patch
func (s *PostgresStore) UpdateFaculty(ctx context.Context, id int64, patch models.FacultyPatch) (*models.Faculty, error) {
	set := map[string]interface{}{}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Password != nil {
		set["password"] = *patch.Password
	}
	if patch.Department != nil {
		set["department"] = *patch.Department
	}
	if patch.Role != nil {
		set["role"] = *patch.Role
	}
	if patch.IsAdmin != nil {
		set["is_admin"] = *patch.IsAdmin
	}
	if len(set) == 0 {
		return s.GetFaculty(ctx, id)
	}

	b := s.sb.Update("faculty").
		SetMap(set).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + joinColumns(facultyColumns))

	updated, err := queryOne(ctx, s.pg.Pool, b, "faculty", scanFaculty)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		logger.Error().Err(err).Int64("facultyID", id).Msg("Error updating faculty")
		return nil, fmt.Errorf("error updating faculty: %w", err)
	}
	return updated, nil
}

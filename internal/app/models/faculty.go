package models

// FacultyRole is the academic position of a faculty member.
type FacultyRole string

const (
	RoleProfessor          FacultyRole = "Professor"
	RoleAssociateProfessor FacultyRole = "Associate Professor"
	RoleAssistantProfessor FacultyRole = "Assistant Professor"
	RoleLecturer           FacultyRole = "Lecturer"
	RoleOther              FacultyRole = "Other"
)

// Valid reports whether r is a known role.
func (r FacultyRole) Valid() bool {
	switch r {
	case RoleProfessor, RoleAssociateProfessor, RoleAssistantProfessor, RoleLecturer, RoleOther:
		return true
	}
	return false
}

// Faculty is a member of staff who can be assigned invigilation duties.
type Faculty struct {
	ID         int64       `json:"id" db:"id" example:"1"`
	Name       string      `json:"name" db:"name" example:"Dr. Asha Rao"`
	Username   string      `json:"username" db:"username" example:"drasharao"`
	Password   string      `json:"-" db:"password"` // bcrypt hash
	Department string      `json:"department" db:"department" example:"CSE"`
	Role       FacultyRole `json:"role" db:"role" example:"Assistant Professor"`
	IsAdmin    bool        `json:"isAdmin" db:"is_admin" example:"false"`
}

// FacultySummary is the trimmed view embedded in duty and request listings.
type FacultySummary struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Department string `json:"department,omitempty"`
}

// Summary returns the listing view of f.
func (f *Faculty) Summary() *FacultySummary {
	if f == nil {
		return nil
	}
	return &FacultySummary{ID: f.ID, Name: f.Name, Department: f.Department}
}

// FacultyPatch is a shallow partial update; nil fields are left untouched.
type FacultyPatch struct {
	Name       *string
	Password   *string
	Department *string
	Role       *FacultyRole
	IsAdmin    *bool
}

// Apply merges the patch into f.
func (p FacultyPatch) Apply(f *Faculty) {
	if p.Name != nil {
		f.Name = *p.Name
	}
	if p.Password != nil {
		f.Password = *p.Password
	}
	if p.Department != nil {
		f.Department = *p.Department
	}
	if p.Role != nil {
		f.Role = *p.Role
	}
	if p.IsAdmin != nil {
		f.IsAdmin = *p.IsAdmin
	}
}

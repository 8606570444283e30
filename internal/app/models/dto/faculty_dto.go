package dto

import "github.com/yigit/invigilate/internal/app/models"

// CreateFacultyRequest represents faculty creation data
type CreateFacultyRequest struct {
	Name       string `json:"name" binding:"required" example:"Dr. Asha Rao"`
	Username   string `json:"username" binding:"required,min=3,max=64" example:"drasharao"`
	Password   string `json:"password" binding:"required,min=6" example:"password123"`
	Department string `json:"department" example:"CSE"`
	Role       string `json:"role" binding:"omitempty,facultyrole" example:"Assistant Professor"`
	IsAdmin    bool   `json:"isAdmin"`
}

// ToModel converts the request into a faculty record with a plaintext password.
func (r *CreateFacultyRequest) ToModel() *models.Faculty {
	return &models.Faculty{
		Name:       r.Name,
		Username:   r.Username,
		Password:   r.Password,
		Department: r.Department,
		Role:       models.FacultyRole(r.Role),
		IsAdmin:    r.IsAdmin,
	}
}

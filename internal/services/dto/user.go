package dto

import (
	"strings"

	"mentorhub_backend/internal/models"
)

// UpdateRoleRequest - смена собственной роли.
// Разрешен переход только в MENTOR или ALUMNI.
type UpdateRoleRequest struct {
	Role              models.UserRole `json:"role" validate:"required,oneof=MENTOR ALUMNI"`
	CurrentProfession string          `json:"currentProfession"`
}

func (r *UpdateRoleRequest) Normalize() {
	r.Role = models.UserRole(strings.TrimSpace(string(r.Role)))
	r.CurrentProfession = strings.TrimSpace(r.CurrentProfession)
}

// UpdateRoleFieldsRequest - частичное обновление ролевых полей профиля.
// nil-поле означает "не трогать".
type UpdateRoleFieldsRequest struct {
	Degree            *string `json:"degree"`
	GraduationYear    *int    `json:"graduationYear"`
	CurrentProfession *string `json:"currentProfession"`
	LinkedIn          *string `json:"linkedIn"`
}

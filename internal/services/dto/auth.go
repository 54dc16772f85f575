package dto

import (
	"strings"
	"time"

	"mentorhub_backend/internal/models"
)

// RegisterRequest - запрос регистрации.
// Обязательность полей по ролям досматривает сервис: пустые после
// trim значения отклоняются, currentProfession обязателен
// только для MENTOR и ALUMNI.
type RegisterRequest struct {
	Role              models.UserRole `json:"role" validate:"required"`
	FullName          string          `json:"fullName" validate:"required"`
	Email             string          `json:"email" validate:"required,email"`
	Phone             string          `json:"phone" validate:"required"`
	Degree            string          `json:"degree" validate:"required"`
	GraduationYear    int             `json:"graduationYear" validate:"required"`
	CurrentProfession string          `json:"currentProfession"`
	LinkedIn          string          `json:"linkedIn"`
	Password          string          `json:"password" validate:"required,min=8"`
}

// Normalize приводит поля в канонический вид до валидации:
// email в нижнем регистре, текстовые поля без пробелов по краям.
// Пароль не трогаем.
func (r *RegisterRequest) Normalize() {
	r.Role = models.UserRole(strings.TrimSpace(string(r.Role)))
	r.FullName = strings.TrimSpace(r.FullName)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Phone = strings.TrimSpace(r.Phone)
	r.Degree = strings.TrimSpace(r.Degree)
	r.CurrentProfession = strings.TrimSpace(r.CurrentProfession)
	r.LinkedIn = strings.TrimSpace(r.LinkedIn)
}

// LoginRequest - запрос входа
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

// RefreshTokenRequest - запрос ротации токенов.
// Токен может прийти и в cookie, поэтому поле не обязательное.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// ChangePasswordRequest - запрос смены пароля
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

// TokenPair - пара токенов, выдаваемая при логине и ротации
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// LoginResponse - ответ на успешный вход
type LoginResponse struct {
	User         *UserResponse `json:"user"`
	AccessToken  string        `json:"accessToken"`
	RefreshToken string        `json:"refreshToken"`
}

// UserResponse - публичное представление пользователя.
// Хеш пароля и refresh-токен сюда не попадают никогда.
type UserResponse struct {
	ID                string          `json:"id"`
	Role              models.UserRole `json:"role"`
	FullName          string          `json:"fullName"`
	Email             string          `json:"email"`
	Phone             string          `json:"phone"`
	Degree            string          `json:"degree"`
	GraduationYear    int             `json:"graduationYear"`
	CurrentProfession string          `json:"currentProfession,omitempty"`
	LinkedIn          string          `json:"linkedIn,omitempty"`
	CreatedAt         time.Time       `json:"createdAt"`
}

// NewUserResponse строит DTO из модели
func NewUserResponse(user *models.User) *UserResponse {
	return &UserResponse{
		ID:                user.ID,
		Role:              user.Role,
		FullName:          user.FullName,
		Email:             user.Email,
		Phone:             user.Phone,
		Degree:            user.Degree,
		GraduationYear:    user.GraduationYear,
		CurrentProfession: user.CurrentProfession,
		LinkedIn:          user.LinkedIn,
		CreatedAt:         user.CreatedAt,
	}
}

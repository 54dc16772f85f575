package helpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"mentorhub_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// CreateUser создает пользователя в транзакции. Сырой пароль в поле
// PasswordHash хешируется на месте.
func CreateUser(t *testing.T, tx *gorm.DB, user *models.User) error {
	t.Helper()

	if user.PasswordHash != "" && !strings.HasPrefix(user.PasswordHash, "$2a$") {
		hashed, err := bcrypt.GenerateFromPassword([]byte(user.PasswordHash), bcrypt.DefaultCost)
		if err != nil {
			t.Fatalf("Не удалось хешировать пароль: %v", err)
		}
		user.PasswordHash = string(hashed)
	}

	if err := tx.Create(user).Error; err != nil {
		t.Logf("ОШИБКА: не удалось создать пользователя %s: %v", user.Email, err)
		return err
	}
	return nil
}

// CreateAndLoginUser создает пользователя и логинит его через API,
// возвращая access-токен
func CreateAndLoginUser(t *testing.T, ts *TestServer, tx *gorm.DB, fullName, email, password string, role models.UserRole) (string, *models.User) {
	t.Helper()

	user := &models.User{
		Role:           role,
		FullName:       fullName,
		Email:          email,
		Phone:          fmt.Sprintf("+7700%d", time.Now().UnixNano()%10000000),
		Degree:         "Computer Science",
		GraduationYear: 2024,
		PasswordHash:   password,
	}
	if role == models.UserRoleMentor || role == models.UserRoleAlumni {
		user.CurrentProfession = "Software Engineer"
	}
	err := CreateUser(t, tx, user)
	assert.NoError(t, err, "Создание тестового пользователя не должно вызывать ошибку")

	loginBody := map[string]interface{}{
		"email":    email,
		"password": password,
	}
	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/users/login", "", loginBody)
	assert.Equal(t, http.StatusOK, res.StatusCode, "Логин должен быть успешным. Ответ: "+bodyStr)

	var envelope struct {
		Data struct {
			AccessToken string `json:"accessToken"`
		} `json:"data"`
	}
	err = json.Unmarshal([]byte(bodyStr), &envelope)
	assert.NoError(t, err, "Не удалось распарсить JSON")
	assert.NotEmpty(t, envelope.Data.AccessToken, "Токен не должен быть пустым")

	// Восстанавливаем сырой пароль для удобства в тестах
	user.PasswordHash = password

	return envelope.Data.AccessToken, user
}

// CreateAndLoginStudent создает студента с уникальным email
func CreateAndLoginStudent(t *testing.T, ts *TestServer, tx *gorm.DB) (string, *models.User) {
	email := fmt.Sprintf("student_%d@test.com", time.Now().UnixNano())
	return CreateAndLoginUser(t, ts, tx, "Test Student", email, "password123", models.UserRoleStudent)
}

// CreateAndLoginMentor создает ментора с уникальным email
func CreateAndLoginMentor(t *testing.T, ts *TestServer, tx *gorm.DB) (string, *models.User) {
	email := fmt.Sprintf("mentor_%d@test.com", time.Now().UnixNano())
	return CreateAndLoginUser(t, ts, tx, "Test Mentor", email, "password123", models.UserRoleMentor)
}

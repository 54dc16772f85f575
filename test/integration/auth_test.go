package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mentorhub_backend/test/helpers"
)

// TestAuthFlow - регистрация, логин и доступ к собственному профилю
func TestAuthFlow(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	registerBody := map[string]interface{}{
		"role":           "STUDENT",
		"fullName":       "Данияр Студентов",
		"email":          "daniyar.flow@test.com",
		"phone":          "+77001112233",
		"degree":         "Computer Science",
		"graduationYear": 2025,
		"password":       "super_password123",
	}

	regRes, regBody := ts.SendRequest(t, tx, "POST", "/api/v1/users/register", "", registerBody)
	assert.Equal(t, http.StatusCreated, regRes.StatusCode)
	assert.Contains(t, regBody, "User registered successfully")
	// Чувствительные поля в ответ не попадают
	assert.NotContains(t, regBody, "password")
	assert.NotContains(t, regBody, "refreshToken")

	loginBody := map[string]interface{}{
		"email":    "daniyar.flow@test.com",
		"password": "super_password123",
	}
	logRes, logBody := ts.SendRequest(t, tx, "POST", "/api/v1/users/login", "", loginBody)
	assert.Equal(t, http.StatusOK, logRes.StatusCode)

	var envelope struct {
		Data struct {
			AccessToken  string `json:"accessToken"`
			RefreshToken string `json:"refreshToken"`
		} `json:"data"`
		Success bool `json:"success"`
	}
	require.NoError(t, json.Unmarshal([]byte(logBody), &envelope))
	assert.True(t, envelope.Success)
	require.NotEmpty(t, envelope.Data.AccessToken)

	curRes, curBody := ts.SendRequest(t, tx, "GET", "/api/v1/users/current-user", envelope.Data.AccessToken, nil)
	assert.Equal(t, http.StatusOK, curRes.StatusCode)
	assert.Contains(t, curBody, "daniyar.flow@test.com")
}

// TestRegister_PaddedEmail - email с пробелами по краям и в смешанном
// регистре принимается и сохраняется нормализованным
func TestRegister_PaddedEmail(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	res, body := ts.SendRequest(t, tx, "POST", "/api/v1/users/register", "", map[string]interface{}{
		"role":           "STUDENT",
		"fullName":       "Данияр Студентов",
		"email":          "  Daniyar.Padded@Test.COM  ",
		"phone":          "+77002223344",
		"degree":         "Computer Science",
		"graduationYear": 2025,
		"password":       "super_password123",
	})
	assert.Equal(t, http.StatusCreated, res.StatusCode, "Ответ: "+body)
	assert.Contains(t, body, "daniyar.padded@test.com")

	// Логин тоже терпим к пробелам вокруг email
	res, _ = ts.SendRequest(t, tx, "POST", "/api/v1/users/login", "", map[string]interface{}{
		"email":    " daniyar.padded@test.com ",
		"password": "super_password123",
	})
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

// TestLogin_UnverifiedCredentials - неизвестный email дает 404,
// неверный пароль - 401
func TestLogin_UnverifiedCredentials(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	_, user := helpers.CreateAndLoginStudent(t, ts, tx)

	res, _ := ts.SendRequest(t, tx, "POST", "/api/v1/users/login", "", map[string]interface{}{
		"email":    "ghost@test.com",
		"password": "whatever123",
	})
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	res, _ = ts.SendRequest(t, tx, "POST", "/api/v1/users/login", "", map[string]interface{}{
		"email":    user.Email,
		"password": "wrong_password",
	})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

// TestRegister_DuplicateEmail - повтор email дает 409
func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	_, user := helpers.CreateAndLoginStudent(t, ts, tx)

	res, body := ts.SendRequest(t, tx, "POST", "/api/v1/users/register", "", map[string]interface{}{
		"role":           "STUDENT",
		"fullName":       "Другой Студент",
		"email":          user.Email,
		"phone":          "+77005556677",
		"degree":         "Mathematics",
		"graduationYear": 2026,
		"password":       "super_password123",
	})
	assert.Equal(t, http.StatusConflict, res.StatusCode)
	assert.Contains(t, body, "Email already registered")
}

// TestRefreshToken_FromBody - ротация по токену из тела запроса
func TestRefreshToken_FromBody(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	_, user := helpers.CreateAndLoginStudent(t, ts, tx)

	// Логинимся повторно, чтобы получить refresh-токен из ответа
	_, logBody := ts.SendRequest(t, tx, "POST", "/api/v1/users/login", "", map[string]interface{}{
		"email":    user.Email,
		"password": "password123",
	})
	var envelope struct {
		Data struct {
			RefreshToken string `json:"refreshToken"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(logBody), &envelope))
	require.NotEmpty(t, envelope.Data.RefreshToken)

	res, body := ts.SendRequest(t, tx, "POST", "/api/v1/users/refresh-token", "", map[string]interface{}{
		"refreshToken": envelope.Data.RefreshToken,
	})
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "Tokens refreshed")
}

// TestRefreshToken_Garbage - мусорный refresh-токен дает 401
func TestRefreshToken_Garbage(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	res, _ := ts.SendRequest(t, tx, "POST", "/api/v1/users/refresh-token", "", map[string]interface{}{
		"refreshToken": "not.a.jwt",
	})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

// TestChangePassword_Flow - смена пароля: старый перестает работать
func TestChangePassword_Flow(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, user := helpers.CreateAndLoginStudent(t, ts, tx)

	res, _ := ts.SendRequest(t, tx, "POST", "/api/v1/users/change-password", token, map[string]interface{}{
		"oldPassword": "wrong_old",
		"newPassword": "new_password123",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	res, _ = ts.SendRequest(t, tx, "POST", "/api/v1/users/change-password", token, map[string]interface{}{
		"oldPassword": "password123",
		"newPassword": "new_password123",
	})
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res, _ = ts.SendRequest(t, tx, "POST", "/api/v1/users/login", "", map[string]interface{}{
		"email":    user.Email,
		"password": "password123",
	})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	res, _ = ts.SendRequest(t, tx, "POST", "/api/v1/users/login", "", map[string]interface{}{
		"email":    user.Email,
		"password": "new_password123",
	})
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

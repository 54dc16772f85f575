package apperrors

import "net/http"

/*
Предопределенные ошибки доменов auth и mentorship.
Сервисы возвращают их как есть, хендлер превращает в единый конверт ответа.
*/

// --- Аутентификация ---

var ErrInvalidCredentials = New(CodeInvalidCredentials, "auth", "Invalid email or password", http.StatusUnauthorized)

var ErrUnauthorized = New(CodeUnauthorized, "auth", "Authentication required", http.StatusUnauthorized)

var ErrInvalidToken = New(CodeInvalidToken, "auth", "Invalid or expired token", http.StatusUnauthorized)

// ErrRefreshTokenMismatch - предъявленный refresh-токен не совпадает с сохраненным.
// Так детектируется повторное использование уже ротированного токена.
var ErrRefreshTokenMismatch = New(CodeInvalidToken, "auth", "Refresh token is expired or has been used", http.StatusUnauthorized)

var ErrWrongOldPassword = New(CodeValidationFailed, "auth", "Old password is incorrect", http.StatusBadRequest)

// --- Пользователи ---

var ErrUserNotFound = New(CodeNotFound, "user", "User not found", http.StatusNotFound)

var ErrEmailAlreadyExists = New(CodeAlreadyExists, "user", "Email already registered", http.StatusConflict)

var ErrPhoneAlreadyExists = New(CodeAlreadyExists, "user", "Phone already registered", http.StatusConflict)

var ErrInvalidUserRole = New(CodeInvalidOperation, "user", "Invalid user role for this operation", http.StatusBadRequest)

// --- Менторство ---

// ErrNotAMentor - целевой пользователь существует, но не является ментором
var ErrNotAMentor = New(CodeInvalidOperation, "mentorship", "Target user is not a mentor", http.StatusBadRequest)

var ErrTooManySkillTags = New(CodeValidationFailed, "mentorship", "At most 3 skill tags are allowed", http.StatusBadRequest)

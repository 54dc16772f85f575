package middleware

import (
	"strings"

	"mentorhub_backend/internal/auth"
	"mentorhub_backend/internal/logger"
	"mentorhub_backend/internal/models"
	"mentorhub_backend/internal/repositories"
	"mentorhub_backend/pkg/apperrors"
	"mentorhub_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AccessTokenCookie - имя cookie с access-токеном
const AccessTokenCookie = "accessToken"

// AuthMiddleware - проверка access-токена на каждом запросе.
// Токен берется из cookie, затем из заголовка Authorization (cookie
// имеет приоритет). После проверки подписи пользователь загружается
// из БД и кладется в контекст без чувствительных полей.
func AuthMiddleware(tokens *auth.TokenManager, userRepo repositories.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := extractToken(c)
		if tokenStr == "" {
			apperrors.HandleError(c, apperrors.ErrUnauthorized)
			return
		}

		claims, err := tokens.ParseAccessToken(tokenStr)
		if err != nil {
			apperrors.HandleError(c, apperrors.ErrInvalidToken)
			return
		}

		db, ok := dbFromContext(c)
		if !ok {
			apperrors.HandleError(c, apperrors.InternalError(nil))
			return
		}

		user, err := userRepo.FindByID(db, claims.UserID)
		if err != nil {
			// Пользователь удален после выдачи токена - токен больше не действует
			apperrors.HandleError(c, apperrors.ErrInvalidToken)
			return
		}

		user.PasswordHash = ""
		user.RefreshToken = ""

		c.Set("userID", user.ID)
		c.Set("currentUser", user)

		ctx := logger.WithUserID(c.Request.Context(), user.ID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireRoles - middleware для проверки допустимых ролей
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	roleSet := make(map[models.UserRole]bool)
	for _, r := range roles {
		roleSet[r] = true
	}

	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			apperrors.HandleError(c, apperrors.ErrUnauthorized)
			return
		}

		if !roleSet[user.Role] {
			apperrors.HandleError(c, apperrors.NewForbiddenError("Access denied for role: "+string(user.Role)))
			return
		}

		c.Next()
	}
}

// CurrentUser извлекает аутентифицированного пользователя из контекста
func CurrentUser(c *gin.Context) (*models.User, bool) {
	val, exists := c.Get("currentUser")
	if !exists {
		return nil, false
	}
	user, ok := val.(*models.User)
	if !ok {
		return nil, false
	}
	return user, true
}

// GetUserID извлекает ID пользователя из контекста
func GetUserID(c *gin.Context) string {
	userID, exists := c.Get("userID")
	if !exists {
		return ""
	}
	id, ok := userID.(string)
	if !ok {
		return ""
	}
	return id
}

func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(AccessTokenCookie); err == nil && cookie != "" {
		return cookie
	}
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

func dbFromContext(c *gin.Context) (*gorm.DB, bool) {
	val, ok := c.Get(string(contextkeys.DBContextKey))
	if !ok {
		return nil, false
	}
	db, ok := val.(*gorm.DB)
	return db, ok
}

package handlers

import (
	"net/http"

	"mentorhub_backend/internal/auth"
	"mentorhub_backend/internal/config"
	"mentorhub_backend/internal/middleware"
	"mentorhub_backend/internal/repositories"
	"mentorhub_backend/internal/services"
	"mentorhub_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// RefreshTokenCookie - имя cookie с refresh-токеном
const RefreshTokenCookie = "refreshToken"

type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
	cfg         *config.Config
	tokens      *auth.TokenManager
	userRepo    repositories.UserRepository
}

func NewAuthHandler(
	base *BaseHandler,
	authService services.AuthService,
	cfg *config.Config,
	tokens *auth.TokenManager,
	userRepo repositories.UserRepository,
) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		authService: authService,
		cfg:         cfg,
		tokens:      tokens,
		userRepo:    userRepo,
	}
}

// RegisterRoutes регистрирует маршруты аутентификации и аккаунта
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	{
		users.POST("/register", h.Register)
		users.POST("/login", h.Login)
		users.POST("/refresh-token", h.RefreshToken)
	}

	secured := rg.Group("/users")
	secured.Use(middleware.AuthMiddleware(h.tokens, h.userRepo))
	{
		secured.POST("/logout", h.Logout)
		secured.POST("/change-password", h.ChangePassword)
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	user, err := h.authService.Register(db, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	Respond(c, http.StatusCreated, user, "User registered successfully")
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	response, err := h.authService.Login(db, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.setAuthCookies(c, response.AccessToken, response.RefreshToken)
	Respond(c, http.StatusOK, response, "User logged in successfully")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	if err := h.authService.Logout(db, userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.clearAuthCookies(c)
	Respond(c, http.StatusOK, nil, "User logged out")
}

func (h *AuthHandler) RefreshToken(c *gin.Context) {
	// cookie имеет приоритет над телом запроса
	presented, _ := c.Cookie(RefreshTokenCookie)
	if presented == "" {
		var req dto.RefreshTokenRequest
		if err := c.ShouldBindJSON(&req); err == nil {
			presented = req.RefreshToken
		}
	}

	db := h.GetDB(c)

	pair, err := h.authService.Refresh(db, presented)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.setAuthCookies(c, pair.AccessToken, pair.RefreshToken)
	Respond(c, http.StatusOK, pair, "Tokens refreshed")
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	if err := h.authService.ChangePassword(db, userID, req.OldPassword, req.NewPassword); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	Respond(c, http.StatusOK, nil, "Password changed successfully")
}

// setAuthCookies кладет оба токена в http-only cookies
func (h *AuthHandler) setAuthCookies(c *gin.Context, accessToken, refreshToken string) {
	c.SetCookie(
		middleware.AccessTokenCookie,
		accessToken,
		int(h.cfg.AccessTTL().Seconds()),
		"/",
		h.cfg.Cookie.Domain,
		h.cfg.Cookie.Secure,
		true,
	)
	c.SetCookie(
		RefreshTokenCookie,
		refreshToken,
		int(h.cfg.RefreshTTL().Seconds()),
		"/",
		h.cfg.Cookie.Domain,
		h.cfg.Cookie.Secure,
		true,
	)
}

func (h *AuthHandler) clearAuthCookies(c *gin.Context) {
	c.SetCookie(middleware.AccessTokenCookie, "", -1, "/", h.cfg.Cookie.Domain, h.cfg.Cookie.Secure, true)
	c.SetCookie(RefreshTokenCookie, "", -1, "/", h.cfg.Cookie.Domain, h.cfg.Cookie.Secure, true)
}

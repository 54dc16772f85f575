package handlers

import (
	"net/http"

	"mentorhub_backend/internal/auth"
	"mentorhub_backend/internal/middleware"
	"mentorhub_backend/internal/repositories"
	"mentorhub_backend/internal/services"
	"mentorhub_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	*BaseHandler
	userService services.UserService
	tokens      *auth.TokenManager
	userRepo    repositories.UserRepository
}

func NewUserHandler(
	base *BaseHandler,
	userService services.UserService,
	tokens *auth.TokenManager,
	userRepo repositories.UserRepository,
) *UserHandler {
	return &UserHandler{
		BaseHandler: base,
		userService: userService,
		tokens:      tokens,
		userRepo:    userRepo,
	}
}

func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	users.Use(middleware.AuthMiddleware(h.tokens, h.userRepo))
	{
		users.GET("/current-user", h.GetCurrentUser)
		users.PUT("/update-role", h.UpdateRole)
		users.PUT("/update-role-fields", h.UpdateRoleFields)
	}
}

func (h *UserHandler) GetCurrentUser(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	user, err := h.userService.GetCurrentUser(db, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	Respond(c, http.StatusOK, user, "Current user fetched")
}

func (h *UserHandler) UpdateRole(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateRoleRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	user, err := h.userService.UpdateRole(db, userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	Respond(c, http.StatusOK, user, "Role updated")
}

func (h *UserHandler) UpdateRoleFields(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateRoleFieldsRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	user, err := h.userService.UpdateRoleFields(db, userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	Respond(c, http.StatusOK, user, "Profile fields updated")
}

package handlers

import (
	"net/http"

	"mentorhub_backend/internal/auth"
	"mentorhub_backend/internal/middleware"
	"mentorhub_backend/internal/models"
	"mentorhub_backend/internal/repositories"
	"mentorhub_backend/internal/services"
	"mentorhub_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type MentorshipHandler struct {
	*BaseHandler
	mentorshipService services.MentorshipService
	tokens            *auth.TokenManager
	userRepo          repositories.UserRepository
}

func NewMentorshipHandler(
	base *BaseHandler,
	mentorshipService services.MentorshipService,
	tokens *auth.TokenManager,
	userRepo repositories.UserRepository,
) *MentorshipHandler {
	return &MentorshipHandler{
		BaseHandler:       base,
		mentorshipService: mentorshipService,
		tokens:            tokens,
		userRepo:          userRepo,
	}
}

// RegisterRoutes регистрирует маршруты связи ментор-студент.
// Каждая операция требует валидный access-токен и конкретную роль.
func (h *MentorshipHandler) RegisterRoutes(rg *gin.RouterGroup) {
	ms := rg.Group("/mentor-student")
	ms.Use(middleware.AuthMiddleware(h.tokens, h.userRepo))
	{
		ms.POST("/subscribe",
			middleware.RequireRoles(models.UserRoleStudent), h.Subscribe)
		ms.POST("/student/unsubscribe",
			middleware.RequireRoles(models.UserRoleStudent), h.UnsubscribeMentor)
		ms.POST("/mentor/unsubscribe",
			middleware.RequireRoles(models.UserRoleMentor), h.UnsubscribeStudent)
		ms.GET("/student/me/mentors/count",
			middleware.RequireRoles(models.UserRoleStudent), h.MyMentorCount)
		ms.GET("/mentor/me/students/count",
			middleware.RequireRoles(models.UserRoleMentor), h.MyStudentCount)
		ms.GET("/mentor/me",
			middleware.RequireRoles(models.UserRoleMentor), h.MyMentorProfile)
		ms.PUT("/mentor/me",
			middleware.RequireRoles(models.UserRoleMentor), h.UpdateMentorProfile)
	}
}

func (h *MentorshipHandler) Subscribe(c *gin.Context) {
	studentUserID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SubscribeRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	student, err := h.mentorshipService.Subscribe(db, studentUserID, req.MentorID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	Respond(c, http.StatusOK, student, "Mentor subscribed successfully")
}

func (h *MentorshipHandler) UnsubscribeMentor(c *gin.Context) {
	studentUserID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UnsubscribeMentorRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	if err := h.mentorshipService.UnsubscribeMentor(db, studentUserID, req.MentorID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	Respond(c, http.StatusOK, nil, "Mentor unsubscribed")
}

func (h *MentorshipHandler) UnsubscribeStudent(c *gin.Context) {
	mentorUserID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UnsubscribeStudentRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	if err := h.mentorshipService.UnsubscribeStudent(db, mentorUserID, req.StudentID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	Respond(c, http.StatusOK, nil, "Student unsubscribed")
}

func (h *MentorshipHandler) MyMentorCount(c *gin.Context) {
	studentUserID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	count, err := h.mentorshipService.MentorCount(db, studentUserID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	Respond(c, http.StatusOK, count, "Your mentor count")
}

func (h *MentorshipHandler) MyStudentCount(c *gin.Context) {
	mentorUserID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	count, err := h.mentorshipService.StudentCount(db, mentorUserID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	Respond(c, http.StatusOK, count, "Your student count")
}

func (h *MentorshipHandler) MyMentorProfile(c *gin.Context) {
	mentorUserID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	mentor, err := h.mentorshipService.MentorProfile(db, mentorUserID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	Respond(c, http.StatusOK, mentor, "Your mentor profile")
}

func (h *MentorshipHandler) UpdateMentorProfile(c *gin.Context) {
	mentorUserID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateMentorRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	mentor, err := h.mentorshipService.UpdateMentorProfile(db, mentorUserID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	Respond(c, http.StatusOK, mentor, "Mentor profile updated")
}

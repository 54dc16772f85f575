package handlers

import (
	"github.com/gin-gonic/gin"
)

// ApiResponse - единый конверт успешного ответа:
// {statusCode, data, message, success}, где success = statusCode < 400
type ApiResponse struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
}

// Respond отправляет данные в едином конверте
func Respond(c *gin.Context, statusCode int, data interface{}, message string) {
	c.JSON(statusCode, ApiResponse{
		StatusCode: statusCode,
		Data:       data,
		Message:    message,
		Success:    statusCode < 400,
	})
}

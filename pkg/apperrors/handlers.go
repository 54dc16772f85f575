package apperrors

import (
	"github.com/gin-gonic/gin"
)

// ErrorEnvelope - единый формат ответа об ошибке.
// Поле success всегда false, data всегда null; errors несет структурированные детали.
type ErrorEnvelope struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
	Errors     interface{} `json:"errors"`
}

// GinErrorHandler - обработчик ошибок для Gin
type GinErrorHandler struct {
	Debug bool
}

// HandleGinError - основная логика обработки ошибок для Gin
func (h *GinErrorHandler) HandleGinError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		// Если это не AppError, оборачиваем в InternalError
		appErr = InternalError(err)
	}

	if appErr.HTTPCode >= 500 && !h.Debug {
		// В продакшене скрываем детали системных ошибок
		appErr = New(appErr.Code, appErr.Domain, "Internal server error", appErr.HTTPCode)
	}

	errors := appErr.Details
	if errors == nil {
		errors = []interface{}{}
	}

	c.AbortWithStatusJSON(appErr.HTTPCode, ErrorEnvelope{
		StatusCode: appErr.HTTPCode,
		Data:       nil,
		Message:    appErr.Message,
		Success:    false,
		Errors:     errors,
	})
}

// HandleError - быстрая функция-помощник для Gin
func HandleError(c *gin.Context, err error) {
	handler := &GinErrorHandler{Debug: true}
	handler.HandleGinError(c, err)
}

// AsAppError - пытается преобразовать error в *AppError
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

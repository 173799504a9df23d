package handler

import (
	"errors"
	"net/http"

	"github.com/Swarup9437/pm-tool/internal/domain/shared"
	"github.com/Swarup9437/pm-tool/internal/domain/workforce"
	"github.com/Swarup9437/pm-tool/internal/infrastructure/logger"
	"github.com/Swarup9437/pm-tool/internal/interfaces/http/dto"
	"github.com/Swarup9437/pm-tool/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// genericErrorMessage is all a client learns about an unexpected failure in production
const genericErrorMessage = "internal server error"

const tooLargeMessage = "Request body exceeds maximum allowed size"

// BaseHandler provides common handler utilities for the JSON API and the
// server-rendered pages
type BaseHandler struct {
	// production hides error details from responses
	production bool
}

// NewBaseHandler creates a BaseHandler
func NewBaseHandler(production bool) BaseHandler {
	return BaseHandler{production: production}
}

// getRequestID extracts the request ID from the context
func getRequestID(c *gin.Context) string {
	if id := c.GetString(logger.RequestIDKey); id != "" {
		return id
	}
	return c.GetHeader(middleware.RequestIDHeader)
}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta sends a success response with pagination meta
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data any, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, page, pageSize))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 no content response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response with the appropriate status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string, details ...string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, getRequestID(c), details...))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// NotFound sends a 404 not found response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, message)
}

// Unauthorized sends a 401 unauthorized response
func (h *BaseHandler) Unauthorized(c *gin.Context, message string) {
	h.Error(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, message)
}

// InternalError sends a 500 response. The detail is dropped in production.
func (h *BaseHandler) InternalError(c *gin.Context, err error) {
	logger.GetGinLogger(c).Error("Request failed", zap.Error(err))
	if h.production || err == nil {
		h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, genericErrorMessage)
		return
	}
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, genericErrorMessage, err.Error())
}

// ValidationError sends a 400 validation error response with details
func (h *BaseHandler) ValidationError(c *gin.Context, err error) {
	middleware.HandleValidationError(c, err)
}

// HandleError is a generic error handler that handles both domain and standard errors
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	if isTooLarge(err) {
		h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodeRequestTooLarge, tooLargeMessage)
		return
	}

	// Check for domain error using errors.As for wrapped error support
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code := dto.NormalizeErrorCode(domainErr.Code)
		h.Error(c, dto.GetHTTPStatus(code), code, domainErr.Message)
		return
	}

	h.InternalError(c, err)
}

// Fail reports err as JSON or as an error page, whichever the client expects
func (h *BaseHandler) Fail(c *gin.Context, err error) {
	if middleware.WantsJSON(c) {
		h.HandleError(c, err)
		return
	}
	h.HandlePageError(c, err)
}

// Render executes a page template with the signed-in user added to data
func (h *BaseHandler) Render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Me"] = middleware.CurrentUser(c)
	if _, ok := data["Error"]; !ok {
		data["Error"] = ""
	}
	if _, ok := data["Title"]; !ok {
		data["Title"] = ""
	}
	c.HTML(status, name, data)
}

// RenderError shows the error page
func (h *BaseHandler) RenderError(c *gin.Context, status int, message, detail string) {
	h.Render(c, status, "error.html", gin.H{
		"Title":      http.StatusText(status),
		"Status":     status,
		"StatusText": http.StatusText(status),
		"Message":    message,
		"Detail":     detail,
		"Back":       c.Request.Referer(),
	})
}

// HandlePageError maps err onto the error page the way HandleError maps it
// onto the JSON envelope
func (h *BaseHandler) HandlePageError(c *gin.Context, err error) {
	if isTooLarge(err) {
		h.RenderError(c, http.StatusRequestEntityTooLarge, tooLargeMessage, "")
		return
	}
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		status := dto.GetHTTPStatus(dto.NormalizeErrorCode(domainErr.Code))
		h.RenderError(c, status, domainErr.Message, "")
		return
	}

	logger.GetGinLogger(c).Error("Page request failed", zap.Error(err))
	detail := ""
	if !h.production {
		detail = err.Error()
	}
	h.RenderError(c, http.StatusInternalServerError, genericErrorMessage, detail)
}

// Denied renders the forbidden page for HTML routes
func (h *BaseHandler) Denied(c *gin.Context, _ workforce.Action) {
	h.RenderError(c, http.StatusForbidden, "Your role does not allow this action", "")
}

// parseID reads a UUID path parameter and reports a 400 when it is malformed
func (h *BaseHandler) parseID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		h.Fail(c, shared.NewValidationError("invalid "+param))
		return uuid.Nil, false
	}
	return id, true
}

// bindForm binds a posted form. On a body that cannot be read it answers the
// request and returns false.
func (h *BaseHandler) bindForm(c *gin.Context, form any) bool {
	err := c.ShouldBind(form)
	if err == nil {
		return true
	}
	if !isTooLarge(err) {
		err = shared.NewValidationError("invalid form data")
	}
	h.Fail(c, err)
	return false
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

// redirect answers a successful form post
func redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusFound, location)
}

// pageOrDefault applies the API defaults to list paging
func pageOrDefault(page, pageSize int) (int, int) {
	if page < 1 {
		page = dto.DefaultPage
	}
	if pageSize < 1 {
		pageSize = dto.DefaultPageSize
	}
	if pageSize > dto.MaxPageSize {
		pageSize = dto.MaxPageSize
	}
	return page, pageSize
}

// renderFormError shows the form again with the message when the user can fix
// the input, and the error page otherwise
func (h *BaseHandler) renderFormError(c *gin.Context, err error, name string, data gin.H) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		switch domainErr.Code {
		case shared.CodeInvalidInput, shared.CodeAlreadyExists, shared.CodeInvalidState:
			data["Error"] = domainErr.Message
			h.Render(c, dto.GetHTTPStatus(dto.NormalizeErrorCode(domainErr.Code)), name, data)
			return
		}
	}
	h.HandlePageError(c, err)
}

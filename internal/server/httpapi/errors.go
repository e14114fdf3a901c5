package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/salaysay-tracker/backend/internal/common"
)

// ErrorResponse is the toast-shaped error payload: a short title and a
// user-facing description.
type ErrorResponse struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// errorHandler maps the closed set of domain error kinds onto HTTP statuses
// and toast payloads. Anything unrecognized becomes an opaque 500.
func (s *Server) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, body := s.mapError(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error(c.Request().Context(), "request failed",
			"method", c.Request().Method, "path", c.Path(), "error", err)
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}
	_ = c.JSON(status, body)
}

func (s *Server) mapError(err error) (int, ErrorResponse) {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code, ErrorResponse{
			Title:       http.StatusText(httpErr.Code),
			Description: fmt.Sprintf("%v", httpErr.Message),
		}
	}

	switch {
	case errors.Is(err, common.ErrWrongFileType):
		return http.StatusBadRequest, ErrorResponse{
			Title:       "Invalid file type",
			Description: "Please upload PDF files only.",
		}
	case errors.Is(err, common.ErrFileTooLarge):
		return http.StatusBadRequest, ErrorResponse{
			Title:       "File too large",
			Description: fmt.Sprintf("Files must be %dMB or smaller.", s.opts.MaxFileSize/(1024*1024)),
		}
	case errors.Is(err, common.ErrMissingCategory):
		return http.StatusBadRequest, ErrorResponse{
			Title:       "Missing violation type",
			Description: "Please select a violation type before uploading.",
		}
	case errors.Is(err, common.ErrUnknownCategory):
		return http.StatusBadRequest, ErrorResponse{
			Title:       "Unknown violation type",
			Description: "The selected violation type is not recognized.",
		}
	case errors.Is(err, common.ErrInvalidStatus):
		return http.StatusBadRequest, ErrorResponse{
			Title:       "Invalid status",
			Description: "Status must be pending_review, approved or rejected.",
		}
	case errors.Is(err, common.ErrWrongEmailDomain):
		return http.StatusForbidden, ErrorResponse{
			Title:       "Access denied",
			Description: fmt.Sprintf("Please sign in with your @%s email address.", s.opts.EmailDomain),
		}
	case errors.Is(err, common.ErrTokenExpired),
		errors.Is(err, common.ErrRefreshTokenExpired):
		return http.StatusUnauthorized, ErrorResponse{
			Title:       "Session expired",
			Description: "Your session has expired. Please sign in again.",
		}
	case errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrUnauthorized):
		return http.StatusUnauthorized, ErrorResponse{
			Title:       "Authentication required",
			Description: "Please sign in to continue.",
		}
	case errors.Is(err, common.ErrForbidden),
		errors.Is(err, common.ErrPermissionDenied):
		return http.StatusForbidden, ErrorResponse{
			Title:       "Permission denied",
			Description: "You do not have permission to perform this action.",
		}
	case errors.Is(err, common.ErrNotFound):
		return http.StatusNotFound, ErrorResponse{
			Title:       "Not found",
			Description: "The requested submission does not exist.",
		}
	case errors.Is(err, common.ErrIntegrity):
		return http.StatusConflict, ErrorResponse{
			Title:       "Conflict",
			Description: "Database relation error. User profile may not exist.",
		}
	case errors.Is(err, common.ErrBucketNotFound):
		return http.StatusBadGateway, ErrorResponse{
			Title:       "Storage unavailable",
			Description: "Storage bucket not found. Please contact support.",
		}
	default:
		return http.StatusInternalServerError, ErrorResponse{
			Title:       "Something went wrong",
			Description: "An unexpected error occurred. Please try again.",
		}
	}
}

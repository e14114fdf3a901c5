package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/salaysay-tracker/backend/internal/common"
	"github.com/salaysay-tracker/backend/internal/server/models"
	"github.com/salaysay-tracker/backend/internal/server/services"
)

const (
	oauthStateCookie   = "oauth_state"
	refreshTokenCookie = "refresh_token"

	uploadFormField   = "files"
	categoryFormField = "violation_type"
)

type sessionResponse struct {
	Profile      *models.Profile `json:"profile"`
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending_review approved rejected"`
}

// listItem decorates a submission with its display name so the client does
// not have to undo the storage-key prefix itself.
type listItem struct {
	*models.Submission
	FileName string `json:"file_name"`
}

func (s *Server) handleGoogleLogin(c echo.Context) error {
	state := uuid.NewString()
	c.SetCookie(&http.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     "/auth/google",
		MaxAge:   int((10 * time.Minute).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return c.Redirect(http.StatusFound, s.google.AuthCodeURL(state))
}

func (s *Server) handleGoogleCallback(c echo.Context) error {
	ctx := c.Request().Context()

	stateCookie, err := c.Cookie(oauthStateCookie)
	if err != nil || stateCookie.Value == "" || stateCookie.Value != c.QueryParam("state") {
		return common.ErrUnauthorized
	}
	if errParam := c.QueryParam("error"); errParam != "" {
		s.logger.Warn(ctx, "oauth consent denied", "error", errParam)
		return common.ErrUnauthorized
	}
	code := c.QueryParam("code")
	if code == "" {
		return common.ErrUnauthorized
	}

	info, err := s.google.Exchange(ctx, code)
	if err != nil {
		return err
	}
	profile, err := s.profiles.EnsureProfile(ctx, info)
	if err != nil {
		return err
	}
	pair, err := s.sessions.IssueTokenPair(ctx, profile.ID)
	if err != nil {
		return err
	}

	s.setSessionCookies(c, pair)
	return c.JSON(http.StatusOK, sessionResponse{
		Profile:      profile,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

func (s *Server) handleRefresh(c echo.Context) error {
	token := s.refreshTokenFrom(c)
	if token == "" {
		return common.ErrUnauthorized
	}

	pair, err := s.sessions.Refresh(c.Request().Context(), token)
	if err != nil {
		return err
	}
	s.setSessionCookies(c, pair)
	return c.JSON(http.StatusOK, sessionResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

func (s *Server) handleLogout(c echo.Context) error {
	if token := s.refreshTokenFrom(c); token != "" {
		if err := s.sessions.Logout(c.Request().Context(), token); err != nil && !errors.Is(err, common.ErrNotFound) {
			return err
		}
	}
	s.clearSessionCookies(c)
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleSession(c echo.Context) error {
	profile, err := s.profiles.Get(c.Request().Context(), userID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"profile": profile})
}

func (s *Server) handleUpload(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "expected a multipart form")
	}

	headers := form.File[uploadFormField]
	if len(headers) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "no files in request")
	}

	files := make([]services.UploadFile, 0, len(headers))
	for _, h := range headers {
		f, err := h.Open()
		if err != nil {
			return err
		}
		defer f.Close()
		files = append(files, services.UploadFile{
			Name:        h.Filename,
			Size:        h.Size,
			ContentType: h.Header.Get(echo.HeaderContentType),
			Body:        f,
		})
	}

	tasks, err := s.submissions.UploadBatch(c.Request().Context(), userID(c), c.FormValue(categoryFormField), files)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, map[string]any{"tasks": tasks})
}

func (s *Server) handleList(c echo.Context) error {
	rows, err := s.submissions.List(c.Request().Context(), userID(c), scopeFrom(c))
	if err != nil {
		return err
	}

	field := services.SortField(c.QueryParam("sort"))
	if field == "" {
		field = services.SortByDate
	}
	dir := services.SortAsc
	// Newest first is the natural default for the date column.
	if d := c.QueryParam("dir"); d == "desc" || (d == "" && field == services.SortByDate) {
		dir = services.SortDesc
	}
	services.SortSubmissions(rows, field, dir)

	items := make([]listItem, len(rows))
	for i, row := range rows {
		items[i] = listItem{Submission: row, FileName: row.FileName()}
	}
	return c.JSON(http.StatusOK, map[string]any{"submissions": items})
}

func (s *Server) handleUpdateStatus(c echo.Context) error {
	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	err := s.submissions.UpdateStatus(c.Request().Context(), userID(c), scopeFrom(c),
		c.Param("id"), models.Status(req.Status))
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleDelete(c echo.Context) error {
	if err := s.submissions.Delete(c.Request().Context(), userID(c), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleViewURL(c echo.Context) error {
	url, err := s.submissions.ViewURL(c.Request().Context(), userID(c), scopeFrom(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"url": url})
}

func scopeFrom(c echo.Context) services.Scope {
	if c.QueryParam("scope") == string(services.ScopeAll) {
		return services.ScopeAll
	}
	return services.ScopeMine
}

func (s *Server) refreshTokenFrom(c echo.Context) string {
	if cookie, err := c.Cookie(refreshTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	var req refreshRequest
	if err := c.Bind(&req); err == nil {
		return req.RefreshToken
	}
	return ""
}

func (s *Server) setSessionCookies(c echo.Context, pair *services.TokenPair) {
	c.SetCookie(&http.Cookie{
		Name:     accessTokenCookie,
		Value:    pair.AccessToken,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	c.SetCookie(&http.Cookie{
		Name:     refreshTokenCookie,
		Value:    pair.RefreshToken,
		Path:     "/api/auth",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) clearSessionCookies(c echo.Context) {
	c.SetCookie(&http.Cookie{Name: accessTokenCookie, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
	c.SetCookie(&http.Cookie{Name: refreshTokenCookie, Value: "", Path: "/api/auth", MaxAge: -1, HttpOnly: true})
}

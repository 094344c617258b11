package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/monitoring-admin-api/internal/access"
	"github.com/noah-isme/monitoring-admin-api/internal/dto"
	"github.com/noah-isme/monitoring-admin-api/internal/preference"
	"github.com/noah-isme/monitoring-admin-api/internal/service"
	"github.com/noah-isme/monitoring-admin-api/internal/validation"
	"github.com/noah-isme/monitoring-admin-api/pkg/response"
)

type userListService interface {
	List(ctx context.Context, subject access.Subject, store preference.Store, req validation.Request) (*dto.UserListView, error)
}

type userExportService interface {
	ExportUsers(ctx context.Context, subject access.Subject, store preference.Store, req validation.Request, format string) (*service.ExportResult, error)
}

// UserListHandler serves the user list page and its exports.
type UserListHandler struct {
	users    userListService
	exporter userExportService
	profiles preference.Backend
}

// NewUserListHandler constructs a UserListHandler.
func NewUserListHandler(users userListService, exporter userExportService, profiles preference.Backend) *UserListHandler {
	return &UserListHandler{users: users, exporter: exporter, profiles: profiles}
}

// List godoc
// @Summary User list
// @Description Filtered, sorted and paged user list. Sort, filter and page choices are remembered per user.
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param sort query string false "username, name, surname or role_name"
// @Param sortorder query string false "ASC or DESC"
// @Param filter_set query string false "1 to store the submitted filter"
// @Param filter_rst query string false "1 to reset the stored filter"
// @Param filter_username query string false "Username substring"
// @Param filter_name query string false "Name substring"
// @Param filter_surname query string false "Last name substring"
// @Param filter_roles query []string false "Role ids"
// @Param filter_usrgrpids query []string false "User group ids"
// @Param filter_source query string false "0 all, 1 internal, 2 LDAP, 3 SAML"
// @Param page query int false "Page number"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /users [get]
func (h *UserListHandler) List(c *gin.Context) {
	subject, store, req, err := listContext(c, h.profiles, access.UIAdministrationUsers)
	if err != nil {
		response.Error(c, err)
		return
	}

	view, err := h.users.List(c.Request.Context(), subject, store, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Page(c, service.UserListTitle, view)
}

// Export godoc
// @Summary Export user list
// @Description Render the current user list page as CSV or PDF. Saved sort, filter and page preferences are read but not changed.
// @Tags Users
// @Produce text/csv
// @Produce application/pdf
// @Security BearerAuth
// @Param format query string true "csv or pdf"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /users/export [get]
func (h *UserListHandler) Export(c *gin.Context) {
	subject, store, req, err := listContext(c, h.profiles, access.UIAdministrationUsers, "format")
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.exporter.ExportUsers(c.Request.Context(), subject, store, req, c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Attachment(c, result.Filename, result.ContentType, result.Body)
}

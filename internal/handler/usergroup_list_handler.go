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

type userGroupListService interface {
	List(ctx context.Context, subject access.Subject, store preference.Store, req validation.Request) (*dto.UserGroupListView, error)
}

// UserGroupListHandler serves the user group list page.
type UserGroupListHandler struct {
	groups   userGroupListService
	profiles preference.Backend
}

// NewUserGroupListHandler constructs a UserGroupListHandler.
func NewUserGroupListHandler(groups userGroupListService, profiles preference.Backend) *UserGroupListHandler {
	return &UserGroupListHandler{groups: groups, profiles: profiles}
}

// List godoc
// @Summary User group list
// @Tags User groups
// @Produce json
// @Security BearerAuth
// @Param sort query string false "name or user_cnt"
// @Param sortorder query string false "ASC or DESC"
// @Param filter_set query string false "1 to store the submitted filter"
// @Param filter_rst query string false "1 to reset the stored filter"
// @Param filter_name query string false "Group name substring"
// @Param filter_user_status query int false "-1 any, 0 enabled, 1 disabled"
// @Param page query int false "Page number"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /usergroups [get]
func (h *UserGroupListHandler) List(c *gin.Context) {
	subject, store, req, err := listContext(c, h.profiles, access.UIAdministrationUserGroups)
	if err != nil {
		response.Error(c, err)
		return
	}

	view, err := h.groups.List(c.Request.Context(), subject, store, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Page(c, service.UserGroupListTitle, view)
}

package dto

import (
	"github.com/noah-isme/monitoring-admin-api/internal/listpage"
	"github.com/noah-isme/monitoring-admin-api/internal/models"
)

// UserGroupListFilter is the filter of the user group list.
type UserGroupListFilter struct {
	Name       string `json:"name"`
	UserStatus string `json:"user_status"`
}

// UserGroupListView is the assembled user group list page.
type UserGroupListView struct {
	Uncheck        bool                  `json:"uncheck"`
	Sort           string                `json:"sort"`
	SortOrder      string                `json:"sortorder"`
	Filter         UserGroupListFilter   `json:"filter"`
	ProfileIdx     string                `json:"profileIdx"`
	ActiveTab      int                   `json:"active_tab"`
	Groups         []models.UserGroupRow `json:"usergroups"`
	Paging         listpage.Pager        `json:"paging"`
	AllowedUIUsers bool                  `json:"allowed_ui_users"`
	Config         ListConfig            `json:"config"`
}

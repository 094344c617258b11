package dto

import (
	"github.com/noah-isme/monitoring-admin-api/internal/listpage"
	"github.com/noah-isme/monitoring-admin-api/internal/models"
)

// UserListFilter is the filter of the user list with ids resolved to names.
type UserListFilter struct {
	Username  string            `json:"username"`
	Name      string            `json:"name"`
	Surname   string            `json:"surname"`
	Roles     []models.NamedRef `json:"roles"`
	UsrgrpIDs []models.NamedRef `json:"usrgrpids"`
	Source    string            `json:"source"`
}

// ListConfig exposes the global limits a list view needs.
type ListConfig struct {
	LoginAttempts int `json:"login_attempts,omitempty"`
	MaxInTable    int `json:"max_in_table"`
}

// UserListView is the assembled user list page.
type UserListView struct {
	Uncheck             bool             `json:"uncheck"`
	Sort                string           `json:"sort"`
	SortOrder           string           `json:"sortorder"`
	Filter              UserListFilter   `json:"filter"`
	ProfileIdx          string           `json:"profileIdx"`
	ActiveTab           int              `json:"active_tab"`
	Users               []models.UserRow `json:"users"`
	Paging              listpage.Pager   `json:"paging"`
	Sources             []string         `json:"source"`
	AllowedUIUserGroups bool             `json:"allowed_ui_user_groups"`
	Config              ListConfig       `json:"config"`
}

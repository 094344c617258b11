package models

// APIUserGroup is a user group record returned by the monitoring API.
type APIUserGroup struct {
	UsrgrpID    string           `json:"usrgrpid"`
	Name        string           `json:"name"`
	GUIAccess   string           `json:"gui_access"`
	UsersStatus string           `json:"users_status"`
	DebugMode   string           `json:"debug_mode"`
	Users       []APIGroupMember `json:"users"`
}

// APIGroupMember is a user selected together with a group.
type APIGroupMember struct {
	UserID   string `json:"userid"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Surname  string `json:"surname"`
}

// UserGroupRow is one line of the user group list.
type UserGroupRow struct {
	UsrgrpID    string           `json:"usrgrpid"`
	Name        string           `json:"name"`
	GUIAccess   int              `json:"gui_access"`
	UsersStatus int              `json:"users_status"`
	DebugMode   int              `json:"debug_mode"`
	UserCount   int              `json:"user_cnt"`
	Users       []APIGroupMember `json:"users"`
}

package models

import (
	"bytes"
	"encoding/json"
)

// Identity provider types of a user directory.
const (
	IdPTypeLDAP = "1"
	IdPTypeSAML = "2"
)

// APIUser is a user record returned by the monitoring API.
type APIUser struct {
	UserID          string         `json:"userid"`
	Username        string         `json:"username"`
	Name            string         `json:"name"`
	Surname         string         `json:"surname"`
	Autologout      string         `json:"autologout"`
	AttemptFailed   string         `json:"attempt_failed"`
	RoleID          string         `json:"roleid"`
	UserDirectoryID string         `json:"userdirectoryid"`
	GUIAccess       string         `json:"gui_access"`
	DebugMode       string         `json:"debug_mode"`
	UsersStatus     string         `json:"users_status"`
	Usrgrps         []APIUserGroup `json:"usrgrps"`
	Role            APIRoleRef     `json:"role"`
}

// APIRoleRef is the role selected together with a user. The API sends an empty
// array instead of an object when the user has no role.
type APIRoleRef struct {
	APIRole
	Present bool `json:"-"`
}

// UnmarshalJSON accepts an object, an empty array or null.
func (r *APIRoleRef) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		*r = APIRoleRef{}
		return nil
	}
	if err := json.Unmarshal(trimmed, &r.APIRole); err != nil {
		return err
	}
	r.Present = true
	return nil
}

// APIUserDirectory is an LDAP or SAML user directory.
type APIUserDirectory struct {
	UserDirectoryID string `json:"userdirectoryid"`
	Name            string `json:"name"`
	IdPType         string `json:"idp_type"`
}

// UserGroupRef is a group membership shown in the user list.
type UserGroupRef struct {
	ID          string `json:"usrgrpid"`
	Name        string `json:"name"`
	GUIAccess   int    `json:"gui_access"`
	UsersStatus int    `json:"users_status"`
}

// UserSessionInfo is the most recent session of a user. LastAccess is a unix
// timestamp; zero means the user never logged in.
type UserSessionInfo struct {
	LastAccess int64 `json:"lastaccess"`
	Status     int   `json:"status"`
}

// UserRow is one line of the user list.
type UserRow struct {
	UserID          string          `json:"userid"`
	Username        string          `json:"username"`
	Name            string          `json:"name"`
	Surname         string          `json:"surname"`
	Autologout      string          `json:"autologout"`
	AttemptFailed   int             `json:"attempt_failed"`
	RoleID          string          `json:"roleid"`
	RoleName        string          `json:"role_name"`
	UserDirectoryID string          `json:"userdirectoryid"`
	Source          string          `json:"source"`
	GUIAccess       int             `json:"gui_access"`
	DebugMode       int             `json:"debug_mode"`
	UsersStatus     int             `json:"users_status"`
	Groups          []UserGroupRef  `json:"usrgrps"`
	Session         UserSessionInfo `json:"session"`
}

// UserSession is an aggregated row of the sessions table.
type UserSession struct {
	UserID     string `db:"userid"`
	LastAccess int64  `db:"lastaccess"`
	Status     int    `db:"status"`
}

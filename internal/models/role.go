package models

// APIRole is a user role record returned by the monitoring API.
type APIRole struct {
	RoleID string        `json:"roleid"`
	Name   string        `json:"name"`
	Type   string        `json:"type"`
	Rules  *APIRoleRules `json:"rules,omitempty"`
}

// APIRoleRules carries the UI part of a role's rules.
type APIRoleRules struct {
	UI              []APIRoleRule `json:"ui"`
	UIDefaultAccess string        `json:"ui.default_access"`
}

// APIRoleRule toggles one UI element.
type APIRoleRule struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

// NamedRef is an id/name pair, used for selected filter values.
type NamedRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

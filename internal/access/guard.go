// Package access decides which UI sections an authenticated console user may open.
package access

// Capability identifies a UI section.
type Capability string

const (
	UIMonitoringDashboard      Capability = "ui.monitoring.dashboard"
	UIReportsAudit             Capability = "ui.reports.audit"
	UIAdministrationGeneral    Capability = "ui.administration.general"
	UIAdministrationUsers      Capability = "ui.administration.users"
	UIAdministrationUserGroups Capability = "ui.administration.user_groups"
	UIAdministrationUserRoles  Capability = "ui.administration.user_roles"
)

// UserType is the role type assigned to a user by the monitoring API.
type UserType int

const (
	UserTypeUser       UserType = 1
	UserTypeAdmin      UserType = 2
	UserTypeSuperAdmin UserType = 3
)

var minimumType = map[Capability]UserType{
	UIMonitoringDashboard:      UserTypeUser,
	UIReportsAudit:             UserTypeAdmin,
	UIAdministrationGeneral:    UserTypeSuperAdmin,
	UIAdministrationUsers:      UserTypeSuperAdmin,
	UIAdministrationUserGroups: UserTypeSuperAdmin,
	UIAdministrationUserRoles:  UserTypeSuperAdmin,
}

// Known reports whether c is part of the capability enumeration.
func Known(c Capability) bool {
	_, ok := minimumType[c]
	return ok
}

// Subject is the part of the authenticated user the guard looks at.
type Subject struct {
	UserType      UserType
	DefaultAccess bool
	Rules         map[Capability]bool
}

// Guard evaluates role UI rules. It holds no state.
type Guard struct{}

// NewGuard returns a Guard.
func NewGuard() *Guard {
	return &Guard{}
}

// CheckPermission reports whether subject may open capability. Unknown capabilities
// and user types below the section minimum are denied; otherwise an explicit role
// rule wins over the role default.
func (g *Guard) CheckPermission(subject Subject, capability Capability) bool {
	min, ok := minimumType[capability]
	if !ok || subject.UserType < min {
		return false
	}
	if allowed, ok := subject.Rules[capability]; ok {
		return allowed
	}
	return subject.DefaultAccess
}

package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckPermission(t *testing.T) {
	g := NewGuard()
	cases := []struct {
		name    string
		subject Subject
		cap     Capability
		want    bool
	}{
		{"super admin with default access", Subject{UserType: UserTypeSuperAdmin, DefaultAccess: true}, UIAdministrationUsers, true},
		{"admin below section minimum", Subject{UserType: UserTypeAdmin, DefaultAccess: true}, UIAdministrationUsers, false},
		{"explicit deny wins", Subject{UserType: UserTypeSuperAdmin, DefaultAccess: true, Rules: map[Capability]bool{UIAdministrationUserGroups: false}}, UIAdministrationUserGroups, false},
		{"explicit allow wins", Subject{UserType: UserTypeSuperAdmin, Rules: map[Capability]bool{UIAdministrationUsers: true}}, UIAdministrationUsers, true},
		{"no default access", Subject{UserType: UserTypeSuperAdmin}, UIAdministrationUsers, false},
		{"user on monitoring", Subject{UserType: UserTypeUser, DefaultAccess: true}, UIMonitoringDashboard, true},
		{"unknown capability", Subject{UserType: UserTypeSuperAdmin, DefaultAccess: true}, Capability("ui.unknown"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, g.CheckPermission(tc.subject, tc.cap))
		})
	}
}

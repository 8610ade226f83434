package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthorize(t *testing.T) {
	tests := []struct {
		name    string
		role    Role
		allowed []Role
		want    bool
	}{
		{"admin in admin-only list", RoleAdmin, []Role{RoleAdmin}, true},
		{"moderator not in admin-only list", RoleModerator, []Role{RoleAdmin}, false},
		{"user not in elevated list", RoleUser, []Role{RoleAdmin, RoleModerator}, false},
		{"moderator in elevated list", RoleModerator, []Role{RoleAdmin, RoleModerator}, true},
		{"user in full list", RoleUser, []Role{RoleAdmin, RoleModerator, RoleUser}, true},
		{"empty allow-list denies everyone", RoleAdmin, nil, false},
		{"unknown role denied", Role("guest"), []Role{RoleAdmin, RoleModerator, RoleUser}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Authorize(tt.role, tt.allowed))
		})
	}
}

func TestCanActOn(t *testing.T) {
	tests := []struct {
		name        string
		role        Role
		principalID uint
		ownerID     uint
		elevated    []Role
		want        bool
	}{
		{"owner may act", RoleUser, 7, 7, Elevated, true},
		{"non-owner user may not act", RoleUser, 7, 8, Elevated, false},
		{"moderator bypasses ownership", RoleModerator, 7, 8, Elevated, true},
		{"admin bypasses ownership", RoleAdmin, 7, 8, Elevated, true},
		{"moderator outside admin-only elevation must own", RoleModerator, 7, 8, []Role{RoleAdmin}, false},
		{"admin-only elevation still admits admin", RoleAdmin, 7, 8, []Role{RoleAdmin}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanActOn(tt.role, tt.principalID, tt.ownerID, tt.elevated))
		})
	}
}

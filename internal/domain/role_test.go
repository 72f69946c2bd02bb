package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveDashboard(t *testing.T) {
	tests := []struct {
		name     string
		identity Identity
		want     DashboardView
	}{
		{
			name:     "anonymous caller gets visitor",
			identity: Anonymous,
			want:     ViewVisitor,
		},
		{
			name: "unauthenticated identity with roles still gets visitor",
			identity: Identity{
				UserID: 7,
				Roles:  []Role{RoleAdmin, RoleTrainer},
			},
			want: ViewVisitor,
		},
		{
			name: "authenticated with no roles gets visitor",
			identity: Identity{
				UserID:        7,
				Authenticated: true,
			},
			want: ViewVisitor,
		},
		{
			name: "generic user role alone gets visitor",
			identity: Identity{
				UserID:        7,
				Authenticated: true,
				Roles:         []Role{RoleUser},
			},
			want: ViewVisitor,
		},
		{
			name: "admin wins over everything",
			identity: Identity{
				UserID:        7,
				Authenticated: true,
				Roles:         []Role{RoleAthlete, RoleTrainer, RoleAdmin, RoleGuardian},
			},
			want: ViewAdmin,
		},
		{
			name: "trainer wins over guardian and athlete",
			identity: Identity{
				UserID:        7,
				Authenticated: true,
				Roles:         []Role{RoleAthlete, RoleGuardian, RoleTrainer},
			},
			want: ViewTrainer,
		},
		{
			name: "guardian wins over athlete",
			identity: Identity{
				UserID:        7,
				Authenticated: true,
				Roles:         []Role{RoleAthlete, RoleGuardian},
			},
			want: ViewGuardian,
		},
		{
			name: "athlete alone gets athlete",
			identity: Identity{
				UserID:        7,
				Authenticated: true,
				Roles:         []Role{RoleAthlete, RoleUser},
			},
			want: ViewAthlete,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveDashboard(tt.identity))
		})
	}
}

func TestRoleIsValid(t *testing.T) {
	for _, role := range []Role{RoleAdmin, RoleUser, RoleTrainer, RoleAthlete, RoleGuardian, RoleVisitor} {
		assert.True(t, role.IsValid(), role)
	}

	assert.False(t, Role("superuser").IsValid())
	assert.False(t, Role("").IsValid())
}

func TestIdentityHasAnyRole(t *testing.T) {
	identity := Identity{
		UserID:        3,
		Authenticated: true,
		Roles:         []Role{RoleTrainer},
	}

	assert.True(t, identity.HasAnyRole(RoleAdmin, RoleTrainer))
	assert.False(t, identity.HasAnyRole(RoleAdmin, RoleGuardian))
	assert.False(t, Anonymous.HasAnyRole(RoleAdmin, RoleTrainer))
}

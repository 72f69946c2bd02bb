package domain

// Role mirrors the app_role enum in Postgres.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleUser     Role = "user"
	RoleTrainer  Role = "treinador"
	RoleAthlete  Role = "atleta"
	RoleGuardian Role = "encarregado"
	RoleVisitor  Role = "visitante"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleUser, RoleTrainer, RoleAthlete, RoleGuardian, RoleVisitor:
		return true
	}
	return false
}

// Identity carries the authenticated user and their resolved roles.
// It is passed explicitly into every service that makes an authorization
// decision; there is no ambient auth state.
type Identity struct {
	UserID        uint
	Authenticated bool
	Roles         []Role
}

// Anonymous is the identity of an unauthenticated caller.
var Anonymous = Identity{}

func (i Identity) HasRole(role Role) bool {
	for _, r := range i.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (i Identity) HasAnyRole(roles ...Role) bool {
	for _, r := range roles {
		if i.HasRole(r) {
			return true
		}
	}
	return false
}

func (i Identity) IsAdmin() bool    { return i.HasRole(RoleAdmin) }
func (i Identity) IsTrainer() bool  { return i.HasRole(RoleTrainer) }
func (i Identity) IsGuardian() bool { return i.HasRole(RoleGuardian) }
func (i Identity) IsAthlete() bool  { return i.HasRole(RoleAthlete) }

// DashboardView is the single view a caller's dashboard resolves to.
// Roles are never combined; the highest-priority role wins.
type DashboardView string

const (
	ViewAdmin    DashboardView = "admin"
	ViewTrainer  DashboardView = "trainer"
	ViewGuardian DashboardView = "guardian"
	ViewAthlete  DashboardView = "athlete"
	ViewVisitor  DashboardView = "visitor"
)

// dashboardPriority is the fixed resolution order. First match wins.
var dashboardPriority = []struct {
	role Role
	view DashboardView
}{
	{RoleAdmin, ViewAdmin},
	{RoleTrainer, ViewTrainer},
	{RoleGuardian, ViewGuardian},
	{RoleAthlete, ViewAthlete},
}

// ResolveDashboard maps an identity to exactly one dashboard view.
// An unauthenticated caller always gets the visitor view, regardless of
// any roles still attached to the identity value.
func ResolveDashboard(identity Identity) DashboardView {
	if !identity.Authenticated {
		return ViewVisitor
	}

	for _, p := range dashboardPriority {
		if identity.HasRole(p.role) {
			return p.view
		}
	}

	return ViewVisitor
}

package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mathewar/apty/internal/auth"
)

func TestPermissionsForRole(t *testing.T) {
	t.Parallel()

	t.Run("admin_holds_every_permission", func(t *testing.T) {
		t.Parallel()

		perms := auth.PermissionsForRole(auth.RoleAdmin)
		assert.Contains(t, perms, auth.PermFinancesWrite)
		assert.Contains(t, perms, auth.PermUsersWrite)
		assert.Contains(t, perms, auth.PermMaintenanceManage)
		assert.Contains(t, perms, auth.PermBuildingWrite)
	})

	t.Run("resident_reads_but_does_not_manage", func(t *testing.T) {
		t.Parallel()

		perms := auth.PermissionsForRole(auth.RoleResident)
		assert.Contains(t, perms, auth.PermBuildingRead)
		assert.Contains(t, perms, auth.PermAnnouncementsRead)
		assert.Contains(t, perms, auth.PermMaintenanceWrite)

		assert.NotContains(t, perms, auth.PermFinancesWrite)
		assert.NotContains(t, perms, auth.PermFinancesRead)
		assert.NotContains(t, perms, auth.PermResidentsWrite)
		assert.NotContains(t, perms, auth.PermMaintenanceManage)
		assert.NotContains(t, perms, auth.PermUsersRead)
	})

	t.Run("unknown_role_gets_nothing", func(t *testing.T) {
		t.Parallel()

		perms := auth.PermissionsForRole("superuser")
		assert.Empty(t, perms)
	})

	t.Run("stable_across_calls", func(t *testing.T) {
		t.Parallel()

		// The catalog is fixed at startup; repeated resolution must agree.
		first := auth.PermissionsForRole(auth.RoleResident)
		second := auth.PermissionsForRole(auth.RoleResident)
		assert.Equal(t, first, second)
	})
}

func TestRoles(t *testing.T) {
	t.Parallel()

	roles := auth.Roles()
	assert.ElementsMatch(t, []string{auth.RoleAdmin, auth.RoleResident}, roles)
}

func TestResolvePrincipal(t *testing.T) {
	t.Parallel()

	t.Run("nil_session_is_anonymous", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, auth.ResolvePrincipal(nil))
	})

	t.Run("permissions_follow_role", func(t *testing.T) {
		t.Parallel()

		p := auth.ResolvePrincipal(&auth.Session{Email: "board@coop.test", Role: auth.RoleAdmin})
		assert.True(t, p.HasPermission(auth.PermFinancesWrite))

		p = auth.ResolvePrincipal(&auth.Session{Email: "alice@coop.test", Role: auth.RoleResident})
		assert.False(t, p.HasPermission(auth.PermFinancesWrite))
		assert.True(t, p.HasPermission(auth.PermUnitsRead))
	})

	t.Run("unknown_role_denied_everything", func(t *testing.T) {
		t.Parallel()

		p := auth.ResolvePrincipal(&auth.Session{Email: "x@coop.test", Role: "ghost"})
		assert.False(t, p.HasPermission(auth.PermBuildingRead))
		assert.Empty(t, p.Permissions())
	})
}

package auth

// Permission is a fine-grained access-control key of the form
// "<resource>:<action>".
type Permission string

const (
	PermBuildingRead  Permission = "building:read"
	PermBuildingWrite Permission = "building:write"

	PermUnitsRead  Permission = "units:read"
	PermUnitsWrite Permission = "units:write"

	PermResidentsRead  Permission = "residents:read"
	PermResidentsWrite Permission = "residents:write"

	PermBoardRead  Permission = "board:read"
	PermBoardWrite Permission = "board:write"

	PermAnnouncementsRead  Permission = "announcements:read"
	PermAnnouncementsWrite Permission = "announcements:write"

	PermDocumentsRead  Permission = "documents:read"
	PermDocumentsWrite Permission = "documents:write"

	PermMaintenanceRead   Permission = "maintenance:read"
	PermMaintenanceWrite  Permission = "maintenance:write"  // submit a request
	PermMaintenanceManage Permission = "maintenance:manage" // update status, assign

	PermFinancesRead  Permission = "finances:read"
	PermFinancesWrite Permission = "finances:write"

	PermStaffRead  Permission = "staff:read"
	PermStaffWrite Permission = "staff:write"

	PermVendorsRead  Permission = "vendors:read"
	PermVendorsWrite Permission = "vendors:write"

	PermApplicationsRead  Permission = "applications:read"
	PermApplicationsWrite Permission = "applications:write"

	PermWaitlistsRead  Permission = "waitlists:read"
	PermWaitlistsWrite Permission = "waitlists:write"

	PermComplianceRead  Permission = "compliance:read"
	PermComplianceWrite Permission = "compliance:write"

	PermPackagesRead  Permission = "packages:read"
	PermPackagesWrite Permission = "packages:write"

	PermProvidersRead  Permission = "providers:read"
	PermProvidersWrite Permission = "providers:write"

	PermUsersRead  Permission = "users:read"
	PermUsersWrite Permission = "users:write"
)

// allPermissions lists every catalog entry. Kept in declaration order so the
// admin grant below stays total as permissions are added.
var allPermissions = []Permission{
	PermBuildingRead, PermBuildingWrite,
	PermUnitsRead, PermUnitsWrite,
	PermResidentsRead, PermResidentsWrite,
	PermBoardRead, PermBoardWrite,
	PermAnnouncementsRead, PermAnnouncementsWrite,
	PermDocumentsRead, PermDocumentsWrite,
	PermMaintenanceRead, PermMaintenanceWrite, PermMaintenanceManage,
	PermFinancesRead, PermFinancesWrite,
	PermStaffRead, PermStaffWrite,
	PermVendorsRead, PermVendorsWrite,
	PermApplicationsRead, PermApplicationsWrite,
	PermWaitlistsRead, PermWaitlistsWrite,
	PermComplianceRead, PermComplianceWrite,
	PermPackagesRead, PermPackagesWrite,
	PermProvidersRead, PermProvidersWrite,
	PermUsersRead, PermUsersWrite,
}

// Role constants. Adding a role to the catalog is all that is needed to
// introduce a custom role.
const (
	RoleAdmin    = "admin"
	RoleResident = "resident"
)

// rolePermissions is the role→permission catalog. Built once at package init
// and read-only afterwards, so concurrent reads need no synchronization.
var rolePermissions = buildCatalog()

func buildCatalog() map[string]map[Permission]struct{} {
	catalog := map[string][]Permission{
		RoleAdmin: allPermissions,
		RoleResident: {
			PermBuildingRead,
			PermUnitsRead,
			PermResidentsRead,
			PermBoardRead,
			PermAnnouncementsRead,
			PermDocumentsRead,
			PermMaintenanceRead,
			PermMaintenanceWrite,
			PermComplianceRead,
			PermPackagesRead,
			PermPackagesWrite,
			PermWaitlistsRead,
			PermWaitlistsWrite,
		},
	}

	out := make(map[string]map[Permission]struct{}, len(catalog))
	for role, perms := range catalog {
		set := make(map[Permission]struct{}, len(perms))
		for _, p := range perms {
			set[p] = struct{}{}
		}
		out[role] = set
	}
	return out
}

// PermissionsForRole returns the permission set mapped to role. A role absent
// from the catalog yields an empty set, so an unrecognized role is denied
// everything rather than treated as an error.
func PermissionsForRole(role string) map[Permission]struct{} {
	return rolePermissions[role]
}

// Roles returns the role names present in the catalog.
func Roles() []string {
	out := make([]string, 0, len(rolePermissions))
	for role := range rolePermissions {
		out = append(out, role)
	}
	return out
}

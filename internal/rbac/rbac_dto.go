package rbac

import "fleetops/internal/domain"

// EnforceRequest aliases the domain type so callers inside the package keep
// short names.
type EnforceRequest = domain.EnforceRequest

type UpdateRolePermissionsRequest struct {
	PermissionIDs []string `json:"permission_ids" binding:"required"`
}

package rbac

import (
	"net/http"

	"fleetops/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) ListRoles(c *gin.Context) {
	companyID := c.GetString("company_id")

	roles, err := h.repo.ListRoles(companyID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list roles", nil)
		return
	}

	response.Success(c, http.StatusOK, roles, nil)
}

func (h *Handler) ListPermissions(c *gin.Context) {
	perms, err := h.repo.ListPermissions()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list permissions", nil)
		return
	}

	response.Success(c, http.StatusOK, perms, nil)
}

func (h *Handler) GetRolePermissions(c *gin.Context) {
	roleID := c.Param("id")

	perms, err := h.repo.GetPermissionsByRoleID(roleID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to get role permissions", nil)
		return
	}

	response.Success(c, http.StatusOK, perms, nil)
}

func (h *Handler) UpdateRolePermissions(c *gin.Context) {
	roleID := c.Param("id")

	var req UpdateRolePermissionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	if err := h.repo.UpdateRolePermissions(roleID, req.PermissionIDs); err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update role permissions", nil)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"updated": true}, nil)
}

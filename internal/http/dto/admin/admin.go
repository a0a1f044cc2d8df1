// Package admin contiene los DTOs de los endpoints /admin.
package admin

// ChangeRoleRequest es el body de PUT /admin/users/{id}/role.
type ChangeRoleRequest struct {
	Role string `json:"role"`
}

// Package policy maps (role, capability) to allow/deny for the guarded
// areas of the site.
package policy

import (
	"errors"

	"amazonia/internal/models"
)

type Capability string

const (
	CapEnterCMS       Capability = "enter-cms"
	CapEnterAdmin     Capability = "enter-admin"
	CapUploadImage    Capability = "upload-image"
	CapChangeUserRole Capability = "change-user-role"
	CapDeleteUser     Capability = "delete-user"
)

var (
	ErrSelfRoleChange = errors.New("you cannot change your own role")
	ErrSelfDelete     = errors.New("you cannot delete your own account")
)

var grants = map[Capability]map[models.Role]bool{
	CapEnterCMS:       {models.RoleReporter: true, models.RoleEditor: true},
	CapEnterAdmin:     {models.RoleEditor: true},
	CapUploadImage:    {models.RoleReporter: true, models.RoleEditor: true},
	CapChangeUserRole: {models.RoleEditor: true},
	CapDeleteUser:     {models.RoleEditor: true},
}

// Allowed reports whether the role may exercise the capability. Unknown
// capabilities are denied.
func Allowed(role models.Role, cap Capability) bool {
	return grants[cap][role]
}

// CheckRoleChange rejects an editor changing their own role. The check
// runs before any repository call.
func CheckRoleChange(actorUID, targetUID string) error {
	if actorUID == targetUID {
		return ErrSelfRoleChange
	}
	return nil
}

// CheckUserDelete rejects an editor deleting their own account.
func CheckUserDelete(actorUID, targetUID string) error {
	if actorUID == targetUID {
		return ErrSelfDelete
	}
	return nil
}

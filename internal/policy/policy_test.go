package policy

import (
	"testing"

	"amazonia/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestAllowed(t *testing.T) {
	for _, tc := range []struct {
		role       models.Role
		capability Capability
		want       bool
	}{
		{models.RoleReporter, CapEnterCMS, true},
		{models.RoleEditor, CapEnterCMS, true},
		{models.RoleVisitor, CapEnterCMS, false},

		{models.RoleEditor, CapEnterAdmin, true},
		{models.RoleReporter, CapEnterAdmin, false},
		{models.RoleVisitor, CapEnterAdmin, false},

		{models.RoleReporter, CapUploadImage, true},
		{models.RoleEditor, CapUploadImage, true},
		{models.RoleVisitor, CapUploadImage, false},

		{models.RoleEditor, CapChangeUserRole, true},
		{models.RoleReporter, CapChangeUserRole, false},
		{models.RoleEditor, CapDeleteUser, true},
		{models.RoleReporter, CapDeleteUser, false},
	} {
		assert.Equal(t, tc.want, Allowed(tc.role, tc.capability),
			"%s / %s", tc.role, tc.capability)
	}
}

func TestUnknownCapabilityIsDenied(t *testing.T) {
	assert.False(t, Allowed(models.RoleEditor, Capability("launch-rockets")))
}

func TestSelfTargetingIsRejected(t *testing.T) {
	assert.ErrorIs(t, CheckRoleChange("e1", "e1"), ErrSelfRoleChange)
	assert.ErrorIs(t, CheckUserDelete("e1", "e1"), ErrSelfDelete)

	assert.NoError(t, CheckRoleChange("e1", "u2"))
	assert.NoError(t, CheckUserDelete("e1", "u2"))
}

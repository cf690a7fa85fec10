package access

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"store-pos/internal/model"
)

func staffPrincipal(role model.Role) *Principal {
	return &Principal{
		UserID:   uuid.New(),
		Username: string(role) + "1",
		Profile:  &model.UserProfile{Role: role},
	}
}

func TestAuthorizeAnonymous(t *testing.T) {
	d := Authorize(nil, nil)
	assert.Equal(t, Unauthenticated, d.Outcome)
	assert.Equal(t, LoginPath, d.Redirect)
	assert.NotEmpty(t, d.Notice)
}

func TestAuthorizeEmptyRoleSetAdmitsAnyAuthenticated(t *testing.T) {
	p := &Principal{UserID: uuid.New(), Username: "noprofile"}
	assert.True(t, Authorize(p, nil).Allowed())
	assert.True(t, Authorize(staffPrincipal(model.RoleClient), nil).Allowed())
}

func TestAuthorizeSuperuserBypassesRoles(t *testing.T) {
	p := &Principal{UserID: uuid.New(), Username: "root", IsSuperuser: true}
	assert.True(t, Check(p, OpCategoryDelete).Allowed())
}

func TestAuthorizeMissingProfile(t *testing.T) {
	p := &Principal{UserID: uuid.New(), Username: "ghost"}
	d := Check(p, OpProductEdit)
	assert.Equal(t, NoProfile, d.Outcome)
	assert.Equal(t, LandingPath, d.Redirect)
	assert.Equal(t, "Your account has no profile assigned. Contact the administrator.", d.Notice)
}

func TestAuthorizeNamesRequiredRoles(t *testing.T) {
	d := Check(staffPrincipal(model.RoleSeller), OpCategoryDelete)
	assert.Equal(t, Forbidden, d.Outcome)
	assert.Equal(t, "Access denied. Required role: Administrator", d.Notice)

	d = Check(staffPrincipal(model.RoleSeller), OpSaleCreate)
	assert.Equal(t, "Access denied. Required role: Manager, Administrator", d.Notice)
}

func TestPolicyTable(t *testing.T) {
	cases := []struct {
		op      Operation
		role    model.Role
		allowed bool
	}{
		{OpProductList, model.RoleSeller, true},
		{OpProductCreate, model.RoleSeller, true},
		{OpProductEdit, model.RoleSeller, false},
		{OpProductEdit, model.RoleManager, true},
		{OpProductDelete, model.RoleManager, false},
		{OpProductDelete, model.RoleAdministrator, true},
		{OpCategoryList, model.RoleSeller, true},
		{OpCategoryList, model.RoleClient, true},
		{OpCategoryCreate, model.RoleSeller, false},
		{OpCategoryDelete, model.RoleSeller, false},
		{OpCategoryDelete, model.RoleAdministrator, true},
		{OpSupplierList, model.RoleSeller, true},
		{OpSupplierList, model.RoleClient, false},
		{OpSupplierEdit, model.RoleManager, true},
		{OpClientList, model.RoleClient, true},
		{OpClientCreate, model.RoleSeller, false},
		{OpClientDelete, model.RoleManager, false},
		{OpSaleCreate, model.RoleSeller, false},
		{OpSaleCreate, model.RoleManager, true},
		{OpReportView, model.RoleSeller, true},
		{OpReportView, model.RoleClient, false},
		{OpPortalView, model.RoleClient, true},
		{OpPortalView, model.RoleManager, false},
	}
	for _, tc := range cases {
		t.Run(string(tc.op)+"/"+string(tc.role), func(t *testing.T) {
			assert.Equal(t, tc.allowed, Check(staffPrincipal(tc.role), tc.op).Allowed())
		})
	}
}

func TestUnknownOperationIsAdminOnly(t *testing.T) {
	assert.False(t, Check(staffPrincipal(model.RoleManager), Operation("unknown")).Allowed())
	assert.True(t, Check(staffPrincipal(model.RoleAdministrator), Operation("unknown")).Allowed())
}

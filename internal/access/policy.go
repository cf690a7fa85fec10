package access

import "store-pos/internal/model"

// Operation names a guarded action, e.g. "product:edit".
type Operation string

const (
	OpDashboard Operation = "dashboard:view"

	OpProductList   Operation = "product:list"
	OpProductCreate Operation = "product:create"
	OpProductEdit   Operation = "product:edit"
	OpProductDelete Operation = "product:delete"

	OpCategoryList   Operation = "category:list"
	OpCategoryCreate Operation = "category:create"
	OpCategoryEdit   Operation = "category:edit"
	OpCategoryDelete Operation = "category:delete"

	OpSupplierList   Operation = "supplier:list"
	OpSupplierCreate Operation = "supplier:create"
	OpSupplierEdit   Operation = "supplier:edit"
	OpSupplierDelete Operation = "supplier:delete"

	OpClientList   Operation = "client:list"
	OpClientCreate Operation = "client:create"
	OpClientEdit   Operation = "client:edit"
	OpClientDelete Operation = "client:delete"

	OpSaleCreate   Operation = "sale:create"
	OpReportView   Operation = "report:view"
	OpPortalView   Operation = "portal:view"
	OpRoleList     Operation = "role:list"
	OpUserManage   Operation = "user:manage"
	OpStockFeed    Operation = "stock:feed"
	OpSessionClose Operation = "session:close"
)

var (
	anyAuthenticated []model.Role
	managerAdmin     = []model.Role{model.RoleManager, model.RoleAdministrator}
	adminOnly        = []model.Role{model.RoleAdministrator}
	staff            = []model.Role{model.RoleSeller, model.RoleManager, model.RoleAdministrator}
)

var policy = map[Operation][]model.Role{
	OpDashboard: anyAuthenticated,

	OpProductList:   anyAuthenticated,
	OpProductCreate: anyAuthenticated,
	OpProductEdit:   managerAdmin,
	OpProductDelete: adminOnly,

	OpCategoryList:   {model.RoleManager, model.RoleAdministrator, model.RoleClient, model.RoleSeller},
	OpCategoryCreate: managerAdmin,
	OpCategoryEdit:   managerAdmin,
	OpCategoryDelete: adminOnly,

	OpSupplierList:   {model.RoleManager, model.RoleAdministrator, model.RoleSeller},
	OpSupplierCreate: managerAdmin,
	OpSupplierEdit:   managerAdmin,
	OpSupplierDelete: adminOnly,

	OpClientList:   anyAuthenticated,
	OpClientCreate: managerAdmin,
	OpClientEdit:   managerAdmin,
	OpClientDelete: adminOnly,

	OpSaleCreate:   managerAdmin,
	OpReportView:   staff,
	OpPortalView:   {model.RoleClient},
	OpRoleList:     anyAuthenticated,
	OpUserManage:   adminOnly,
	OpStockFeed:    staff,
	OpSessionClose: anyAuthenticated,
}

// RolesFor returns the permitted roles of op. Unknown operations are admin-only.
func RolesFor(op Operation) []model.Role {
	roles, ok := policy[op]
	if !ok {
		return adminOnly
	}
	return roles
}

package model

import "strings"

// Role governs operation-level authorization.
type Role string

const (
	RoleSeller        Role = "seller"
	RoleManager       Role = "manager"
	RoleAdministrator Role = "administrator"
	RoleClient        Role = "client"
)

// RoleInfo describes a role for the role catalogue endpoint.
type RoleInfo struct {
	Code        Role   `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

var Roles = []RoleInfo{
	{Code: RoleSeller, Name: "Seller", Description: "Sells at the counter and reads reports"},
	{Code: RoleManager, Name: "Manager", Description: "Manages the catalogue and registers sales"},
	{Code: RoleAdministrator, Name: "Administrator", Description: "Full access including deletions"},
	{Code: RoleClient, Name: "Client", Description: "Sees their own purchases"},
}

func (r Role) Valid() bool {
	for _, info := range Roles {
		if info.Code == r {
			return true
		}
	}
	return false
}

// Label is the display name, e.g. "Manager".
func (r Role) Label() string {
	for _, info := range Roles {
		if info.Code == r {
			return info.Name
		}
	}
	if r == "" {
		return ""
	}
	return strings.ToUpper(string(r[:1])) + string(r[1:])
}

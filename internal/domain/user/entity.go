package user

import "slices"

type Role string

const (
	RoleSuperAdmin   Role = "super_admin"   // Platform operator, not bound to a company
	RoleCompanyAdmin Role = "company_admin" // Manages one company and its branches
	RoleRecruiter    Role = "recruiter"     // Runs hiring and campaigns for a company
	RoleStaff        Role = "staff"         // Employee assigned to one or more branches
	RoleUser         Role = "user"          // Public job seeker
)

func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleCompanyAdmin, RoleRecruiter, RoleStaff, RoleUser:
		return true
	}
	return false
}

// Identity is the caller as resolved from a verified access token. Read-only.
type Identity struct {
	UserID     string
	Role       Role
	CompanyID  *string
	BranchIDs  []string
	Privileges []string
}

func (i Identity) IsSuperAdmin() bool {
	return i.Role == RoleSuperAdmin
}

func (i Identity) IsStaff() bool {
	return i.Role == RoleStaff
}

// HasBranch reports whether branchID is one of the caller's assigned branches.
func (i Identity) HasBranch(branchID string) bool {
	return slices.Contains(i.BranchIDs, branchID)
}

func (i Identity) HasPrivilege(privilege string) bool {
	return slices.Contains(i.Privileges, privilege)
}

// CompanyIDValue returns the company id or "" for identities without a company.
func (i Identity) CompanyIDValue() string {
	if i.CompanyID == nil {
		return ""
	}
	return *i.CompanyID
}

// SameCompany reports whether a resource owned by companyID is visible to the caller.
// Super admins see every company; resources without a company are global.
func (i Identity) SameCompany(companyID *string) bool {
	if i.IsSuperAdmin() {
		return true
	}
	if companyID == nil {
		return true
	}
	return i.CompanyID != nil && *i.CompanyID == *companyID
}

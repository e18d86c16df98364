package user

import (
	"fmt"
	"strings"
)

// Claim names carried by access tokens.
const (
	ClaimUserID     = "user_id"
	ClaimRole       = "role"
	ClaimCompanyID  = "company_id"
	ClaimBranchIDs  = "branch_ids"
	ClaimPrivileges = "privileges"
	ClaimType       = "type"

	TokenTypeAccess = "access"
)

// IdentityFromClaims builds an Identity from decoded token claims.
func IdentityFromClaims(claims map[string]interface{}) (Identity, error) {
	if tokenType, _ := claims[ClaimType].(string); tokenType != TokenTypeAccess {
		return Identity{}, fmt.Errorf("%w: token type must be %q", ErrInvalidIdentity, TokenTypeAccess)
	}

	userID, _ := claims[ClaimUserID].(string)
	if strings.TrimSpace(userID) == "" {
		return Identity{}, fmt.Errorf("%w: user_id is missing", ErrInvalidIdentity)
	}

	roleStr, _ := claims[ClaimRole].(string)
	role := Role(roleStr)
	if !role.Valid() {
		return Identity{}, fmt.Errorf("%w: %q", ErrInvalidRole, roleStr)
	}

	identity := Identity{
		UserID: userID,
		Role:   role,
	}

	if companyID, ok := claims[ClaimCompanyID].(string); ok && companyID != "" {
		identity.CompanyID = &companyID
	}

	branchIDs, err := stringSlice(claims[ClaimBranchIDs])
	if err != nil {
		return Identity{}, fmt.Errorf("%w: branch_ids: %v", ErrInvalidIdentity, err)
	}
	identity.BranchIDs = branchIDs

	privileges, err := stringSlice(claims[ClaimPrivileges])
	if err != nil {
		return Identity{}, fmt.Errorf("%w: privileges: %v", ErrInvalidIdentity, err)
	}
	identity.Privileges = privileges

	return identity, nil
}

// Claims is the inverse of IdentityFromClaims, without exp.
func (i Identity) Claims() map[string]interface{} {
	var companyID interface{}
	if i.CompanyID != nil {
		companyID = *i.CompanyID
	}

	branchIDs := i.BranchIDs
	if branchIDs == nil {
		branchIDs = []string{}
	}
	privileges := i.Privileges
	if privileges == nil {
		privileges = []string{}
	}

	return map[string]interface{}{
		ClaimUserID:     i.UserID,
		ClaimRole:       string(i.Role),
		ClaimCompanyID:  companyID,
		ClaimBranchIDs:  branchIDs,
		ClaimPrivileges: privileges,
		ClaimType:       TokenTypeAccess,
	}
}

// stringSlice accepts the shapes JSON decoding produces for string arrays.
func stringSlice(v interface{}) ([]string, error) {
	switch vals := v.(type) {
	case nil:
		return nil, nil
	case []string:
		return vals, nil
	case []interface{}:
		out := make([]string, 0, len(vals))
		for _, item := range vals {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("expected string, got %T", item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected array, got %T", v)
	}
}

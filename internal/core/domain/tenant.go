package domain

import "time"

// Tenant represents an isolated organization owning its own chart of accounts,
// asset types and journal-entry numbering sequence.
type Tenant struct {
	TenantID    string `json:"tenantID"`    // Primary Key (UUID)
	Name        string `json:"name"`        // User-defined organization name
	Description string `json:"description"` // Optional description
	IsActive    bool   `json:"isActive"`
	AuditFields
}

// UserTenantRole defines the possible roles a user can have within a tenant.
type UserTenantRole string

const (
	RoleAdmin    UserTenantRole = "ADMIN"
	RoleMember   UserTenantRole = "MEMBER"
	RoleReadOnly UserTenantRole = "READONLY"
	RoleRemoved  UserTenantRole = "REMOVED"
)

// UserTenant represents the membership of a User in a Tenant.
type UserTenant struct {
	UserID   string         `json:"userID"`
	UserName string         `json:"userName"`
	TenantID string         `json:"tenantID"`
	Role     UserTenantRole `json:"role"`
	JoinedAt time.Time      `json:"joinedAt"`
}

package domain

import "time"

// User represents an application user. The password hash never leaves the
// service layer.
type User struct {
	UserID       string `json:"userID"` // Primary Key (UUID)
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	AuthProvider string `json:"authProvider"` // "local" or "google"
	ProviderID   string `json:"-"`            // Subject claim for external providers
	AuditFields

	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`
}

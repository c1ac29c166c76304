package model

import "time"

// Roles form a closed enumeration. Every access rule in the API is a
// predicate over one of these values plus resource ownership.
const (
	RoleUser      = "user"      // books events, writes reviews
	RoleOrganizer = "organizer" // owns events, sees their bookings
	RoleAdmin     = "admin"     // approves/rejects events, sees analytics
)

// ValidRole reports whether s is one of the known role names.
func ValidRole(s string) bool {
	return s == RoleUser || s == RoleOrganizer || s == RoleAdmin
}

// Account represents a row in the `accounts` table. Preferences are stored
// denormalized as comma-joined sets; they only feed the recommended-events
// projection, never an invariant.
//
// Fields:
//
//	ID                  – primary key identifier.
//	Name                – display name.
//	Email               – unique email address.
//	PasswordHash        – bcrypt hashed password.
//	Phone               – optional contact number.
//	Role                – one of user/organizer/admin.
//	PreferredCategories – comma-joined event categories for recommendations.
//	PreferredLocations  – comma-joined locations for recommendations.
//	CreatedAt/UpdatedAt – timestamps, UTC.
type Account struct {
	ID                  uint64    // accounts.id
	Name                string    // accounts.name
	Email               string    // accounts.email
	PasswordHash        string    // accounts.password_hash
	Phone               string    // accounts.phone
	Role                string    // accounts.role
	PreferredCategories string    // accounts.preferred_categories
	PreferredLocations  string    // accounts.preferred_locations
	CreatedAt           time.Time // accounts.created_at
	UpdatedAt           time.Time // accounts.updated_at
}

// RefreshToken models an entry in the `refresh_tokens` table. Each refresh
// token belongs to an account; only the SHA-256 hash of the token value is
// stored.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	AccountID uint64     // refresh_tokens.account_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}

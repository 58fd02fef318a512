package types

// Role is the coarse role carried in an access token.
type Role string

const (
	RoleCashier Role = "cashier"
	RoleAdmin   Role = "admin"
)

// AuthContext is the caller identity resolved once per request by the auth
// middleware and handed to services explicitly. A nil *AuthContext means the
// request is unauthenticated.
type AuthContext struct {
	UserID string `json:"user_id"`
	Role   Role   `json:"role"`
}

func (a *AuthContext) IsAdmin() bool {
	return a != nil && a.Role == RoleAdmin
}

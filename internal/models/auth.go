package models

// Role is the authorization level resolved from a credential
type Role string

const (
	RoleNone  Role = "none"
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r Role) rank() int {
	switch r {
	case RoleAdmin:
		return 2
	case RoleUser:
		return 1
	default:
		return 0
	}
}

// Satisfies reports whether r grants at least the required role.
func (r Role) Satisfies(required Role) bool {
	return r.rank() >= required.rank()
}

// Login is the request body of the login endpoint
type Login struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// BearerToken is issued on successful login
type BearerToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Role        Role   `json:"role"`
}

// Principal is the resolved caller of an operation. Token doubles as the basket session key.
type Principal struct {
	Token string
	Role  Role
}

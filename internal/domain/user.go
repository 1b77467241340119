package domain

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User is one entry of the fixed login table built from environment
// configuration. Secret may be a plaintext password or a bcrypt hash; the
// session service decides how to compare.
type User struct {
	Username string
	Secret   string
	Role     string
}

// LoginRequest is the POST /login payload.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

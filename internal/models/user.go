package models

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// User is a registered account. Password is stored in clear text and must
// never be treated as a credential store.
type User struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Role     UserRole `json:"role"`
	Password string   `json:"password,omitempty"`
}

// AdminState is the per-session admin gate.
type AdminState struct {
	Admin         bool `json:"admin"`
	PromptVisible bool `json:"promptVisible"`
}

// RememberedLogin is echoed back into the login form on the next visit.
type RememberedLogin struct {
	Input    string `json:"input"`
	Password string `json:"password"`
}

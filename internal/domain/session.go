package domain

type Role string

const (
	RoleGuest Role = "guest"
	RoleAdmin Role = "admin"
)

// Session is the authenticated identity held by the running client. The zero
// value is an unauthenticated guest.
type Session struct {
	Token    string `json:"token"`
	Role     Role   `json:"role"`
	Username string `json:"username"`
}

func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin && s.Token != ""
}

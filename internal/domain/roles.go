package domain

type Role string

const (
	// User is the base role: self-service account operations only.
	RoleUser Role = "user"
	// Moderator can additionally search other users by name.
	RoleModerator Role = "moderator"
	// Admin can look up any user and gets every elevated privilege.
	RoleAdmin Role = "admin"
)

func IsValidRole(r string) bool {
	return r == string(RoleUser) || r == string(RoleModerator) || r == string(RoleAdmin)
}

// RoleRank: bigger => higher privilege
func RoleRank(r string) int {
	switch r {
	case string(RoleUser):
		return 1
	case string(RoleModerator):
		return 2
	case string(RoleAdmin):
		return 3
	default:
		return 0
	}
}

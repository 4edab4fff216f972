package entity

type UserRole string

const (
	RoleClient UserRole = "client"
	RoleAdmin  UserRole = "admin"
)

// DefaultWallet is the starting stake credited on registration.
const DefaultWallet int64 = 10000

type User struct {
	Base
	Username     string   `db:"username"`
	PasswordHash string   `db:"password_hash"`
	Role         UserRole `db:"role"`
	Wallet       int64    `db:"wallet"`
}

package user

import "time"

type User struct {
	ID           int
	Username     string
	Email        string
	Password     string // bcrypt hash
	Role         Role
	SecondFactor bool // one-time-code challenge on login
	CreatedAt    time.Time
}

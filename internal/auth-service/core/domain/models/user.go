package models

import "time"

type User struct {
	UserId       string
	Name         string
	Email        string
	PasswordHash []byte
	CreatedAt    time.Time
}

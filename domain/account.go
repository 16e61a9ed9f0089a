// Package domain contains the core records of the message board.
// This file defines the Account entity and credential bounds.
// No transport, storage, or UI logic should be added here.
package domain

// MinPasswordLength is the smallest accepted password, measured after trimming.
const MinPasswordLength = 4

// Account is a registered user. The ID is assigned by the store on insert and
// never changes afterwards. Passwords are held as given; comparison goes
// through auth.ComparePassword so a hashed form can be introduced later.
type Account struct {
	ID       int64  `json:"account_id"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// Credentials is the login payload shape shared by register and login.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

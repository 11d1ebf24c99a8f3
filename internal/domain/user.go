package domain

import (
	"strings"
	"time"
)

type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	CreatedAt time.Time `json:"created_at"`
}

// FullName joins first and last name, trimming when either is empty.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// DisplayName is the full name when set, otherwise the username.
func (u *User) DisplayName() string {
	if name := u.FullName(); name != "" {
		return name
	}
	return u.Username
}

// Profile holds the shipping details kept alongside a user account.
type Profile struct {
	UserID     int64     `json:"user_id"`
	Phone      string    `json:"phone"`
	Address    string    `json:"address"`
	City       string    `json:"city"`
	State      string    `json:"state"`
	PostalCode string    `json:"postal_code"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// SavedAddress renders the profile as a single shipping address block,
// or "" when no address line has been saved yet.
func (p *Profile) SavedAddress() string {
	if strings.TrimSpace(p.Address) == "" {
		return ""
	}
	locality := strings.TrimSpace(strings.Join(nonEmpty(p.City, p.State, p.PostalCode), " "))
	if locality == "" {
		return p.Address
	}
	return p.Address + "\n" + locality
}

func nonEmpty(parts ...string) []string {
	out := parts[:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}

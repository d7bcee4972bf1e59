package domain

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	RoleCustomer      UserRole = "CUSTOMER"
	RoleBusinessOwner UserRole = "BUSINESS_OWNER"
)

type User struct {
	ID            uuid.UUID `json:"id"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone,omitempty"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName,omitempty"`
	FullName      string    `json:"fullName,omitempty"`
	Role          UserRole  `json:"role"`
	EmailVerified bool      `json:"emailVerified"`
	PhoneVerified bool      `json:"phoneVerified"`
	AvatarURL     string    `json:"avatarUrl,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// TokenPair is the access/refresh credential pair issued on login and
// register. The two are persisted together or not at all.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

func (p TokenPair) Empty() bool {
	return p.AccessToken == "" && p.RefreshToken == ""
}

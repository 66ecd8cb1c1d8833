package model

import (
	"errors"
	"time"
)

// User represents a registered user. Identity is an opaque api_key compared
// by equality; there is no password material in this system.
type User struct {
	ID         int64     `db:"id" json:"id"`
	FirstName  string    `db:"first_name" json:"-"`
	Surname    string    `db:"surname" json:"-"`
	MiddleName *string   `db:"middle_name" json:"-"`
	APIKey     string    `db:"api_key" json:"-"` // never exposed in profile output
	CreatedAt  time.Time `db:"created_at" json:"-"`
}

// Name is the display name used on the wire: "<first_name> <surname>".
func (u *User) Name() string {
	return u.FirstName + " " + u.Surname
}

// Summary converts the user to its short wire representation.
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name()}
}

// UserSummary is the short user shape embedded in tweets and follow lists.
type UserSummary struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// Profile is the full user shape returned by /users/me and /users/{id}.
type Profile struct {
	ID        int64         `json:"id"`
	Name      string        `json:"name"`
	Followers []UserSummary `json:"followers"`
	Following []UserSummary `json:"following"`
}

// ProfileResponse wraps a profile in the standard result envelope.
type ProfileResponse struct {
	Result bool    `json:"result"`
	User   Profile `json:"user"`
}

// RegisterRequest is the request body for creating a user.
type RegisterRequest struct {
	FirstName  string  `json:"first_name"`
	MiddleName *string `json:"middle_name,omitempty"`
	Surname    string  `json:"surname"`
}

// RegisterResponse returns the new user's id and generated credential.
type RegisterResponse struct {
	Result bool   `json:"result"`
	ID     int64  `json:"id"`
	APIKey string `json:"api_key"`
}

// ResultResponse is the bare success envelope used by mutating endpoints.
type ResultResponse struct {
	Result bool `json:"result"`
}

var (
	// ErrUserNotFound is returned when a user cannot be found by id or api key.
	ErrUserNotFound = errors.New("user not found")

	// ErrNameRequired is returned when first_name or surname is blank.
	ErrNameRequired = errors.New("first_name and surname are required")
)

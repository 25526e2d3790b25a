/*
Package user contains the user account model and its persistence layer.

The User struct is the credential-free public view of an account; the password
hash never leaves this package's store methods.
*/
package user

import "time"

// User represents the public identity of an account. Fields use the JSON
// names expected by clients in both REST responses and WebSocket events.
type User struct {
	// ID is the account identifier (UUID), assigned by the store.
	ID string `json:"id"`

	// FullName is the display name chosen at signup.
	FullName string `json:"fullName"`

	// Email is the login identifier.
	Email string `json:"email"`

	// ProfilePic is the URL of the stored avatar, empty when none was set.
	ProfilePic string `json:"profilePic,omitempty"`

	// CreatedAt is the account creation time.
	CreatedAt time.Time `json:"createdAt"`
}

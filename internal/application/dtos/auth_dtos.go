// Package dtos defines the Data Transfer Objects passed between the HTTP
// layer and the services. Domain entities never cross the API boundary,
// so password hashes and other internals stay inside.
//
// Write operations are Commands, read operations are Queries, results are
// DTOs. JSON uses camelCase to match the error body schema.
package dtos

// LoginCommand authenticates an existing account.
type LoginCommand struct {
	Email        string `json:"email" binding:"required"`
	Password     string `json:"password" binding:"required"`
	StayLoggedIn bool   `json:"stayLoggedIn"`
}

// RegisterCommand creates an account and logs it in. The minted token
// always uses the standard expiry.
type RegisterCommand struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ChangePasswordCommand replaces the caller's password.
type ChangePasswordCommand struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

// AuthResultDTO is the login/register response.
type AuthResultDTO struct {
	AccessToken string  `json:"accessToken"`
	User        UserDTO `json:"user"`
}

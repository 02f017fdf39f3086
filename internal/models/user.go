package models

// User is a row in the credential store. Password holds the bcrypt hash,
// never the plaintext. RefreshToken mirrors the live refresh JWT so a
// rotated or revoked token can be rejected by mismatch; nil when logged out.
type User struct {
	ID           int64   `json:"id"`
	Username     string  `json:"username"`
	Password     string  `json:"-"`
	RefreshToken *string `json:"-"`
}

type CredentialsRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

package auth

import "time"

// OAuthIdentity is the Google account returned by a code exchange, together
// with the tokens granted for it.
type OAuthIdentity struct {
	GoogleID  string
	Email     string
	Name      string
	AvatarURL *string
	Tokens    OAuthTokens
}

// OAuthTokens is the token set from Google's token endpoint. RefreshToken is
// empty when Google did not issue a new one.
type OAuthTokens struct {
	AccessToken  string
	RefreshToken string
	Expiry       time.Time
}

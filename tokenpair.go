package jwt

// TokenPair represents a standard OAuth2 token response containing
// both access and refresh tokens.
//
// The "access_token" and "refresh_token" field names follow OAuth2
// conventions. Either token may be empty, it is then left out.
//
// Example JSON output:
//
//	{
//	  "access_token": "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9...",
//	  "refresh_token": "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."
//	}
type TokenPair struct {
	AccessToken  string `json:"access_token,omitempty" yaml:"access_token,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty" yaml:"refresh_token,omitempty"`
}

// NewTokenPair creates a TokenPair from an access and a refresh token.
//
// Example:
//
//	now := time.Now()
//	accessToken, _ := jwt.Encode(jwt.HS256, key, accessClaims, jwt.MaxAge(now, 15*time.Minute))
//	refreshToken, _ := jwt.Encode(jwt.HS256, key, refreshClaims, jwt.MaxAge(now, 7*24*time.Hour))
//
//	pair := jwt.NewTokenPair(accessToken, refreshToken)
//	json.NewEncoder(w).Encode(pair)
func NewTokenPair(accessToken, refreshToken string) TokenPair {
	return TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}
}

package jwt

import "time"

// Policy describes what a verifier expects from a token.
//
// The zero Policy pins the algorithm family to the verification key type,
// uses no leeway and checks only the temporal claims.
type Policy struct {
	// Algorithms, when not empty, is the exact list of accepted "alg" values.
	Algorithms []AlgorithmID
	// Families, when not empty and Algorithms is empty, is the list of
	// accepted algorithm families. When both are empty the families are
	// derived from the verification key type.
	Families []Family

	// Leeway is the clock skew tolerated on "exp" and "nbf".
	Leeway time.Duration

	// Issuer, when set, must equal the "iss" claim.
	Issuer string
	// Subject, when set, must equal the "sub" claim.
	Subject string
	// Audience, when set, must be one of the "aud" values.
	Audience string

	// RequireIssuedAt makes the "iat" claim mandatory.
	RequireIssuedAt bool
	// Required lists further claim names, registered or not,
	// which must be present.
	Required []string

	// Now returns the current time. Defaults to Clock.
	Now func() time.Time
}

func (p Policy) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return Clock()
}

// Validate checks the claims of an authentic token against "now" and the
// policy. The checks run in a fixed order and the first failure is
// returned, as a *ClaimError:
//
//  1. exp: ErrExpired when now-leeway >= exp
//  2. nbf: ErrNotYetValid when now+leeway < nbf
//  3. required claims: ErrMissingClaim
//  4. iss, sub, aud: ErrClaimMismatch
func Validate(claims Claims, now time.Time, policy Policy) error {
	if err := validateTime(claims, now, policy.Leeway); err != nil {
		return err
	}

	if err := validateRequired(claims, policy); err != nil {
		return err
	}

	return validateExpected(claims, policy)
}

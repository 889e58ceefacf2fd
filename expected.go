package jwt

import "strings"

// validateExpected compares the identity claims with the values the policy
// expects, stopping on the first mismatch: iss, sub, then aud.
func validateExpected(claims Claims, policy Policy) error {
	if v := policy.Issuer; v != "" && v != claims.Issuer {
		return newClaimError(ClaimIssuer, ErrClaimMismatch, v, claims.Issuer)
	}

	if v := policy.Subject; v != "" && v != claims.Subject {
		return newClaimError(ClaimSubject, ErrClaimMismatch, v, claims.Subject)
	}

	if v := policy.Audience; v != "" && !claims.Audience.Contains(v) {
		return newClaimError(ClaimAudience, ErrClaimMismatch, v, strings.Join(claims.Audience, ","))
	}

	return nil
}

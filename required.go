package jwt

// validateRequired reports the first missing claim among "iat"
// (when the policy requires it) and the policy's Required names.
func validateRequired(claims Claims, policy Policy) error {
	if policy.RequireIssuedAt && !claims.Has(ClaimIssuedAt) {
		return newClaimError(ClaimIssuedAt, ErrMissingClaim, "", "")
	}

	for _, name := range policy.Required {
		if _, ok := claims.Get(name); !ok {
			return newClaimError(name, ErrMissingClaim, "", "")
		}
	}

	return nil
}

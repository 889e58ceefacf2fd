package jwt

import "time"

// validateTime checks "exp" and "nbf" at second precision.
//
// "exp" is mandatory: a token is expired at the very second of its "exp".
// The leeway widens both windows, a negative leeway counts as zero.
func validateTime(claims Claims, now time.Time, leeway time.Duration) error {
	if leeway < 0 {
		leeway = 0
	}

	if !claims.Has(ClaimExpiry) {
		return newClaimError(ClaimExpiry, ErrMissingClaim, "", "")
	}

	if now.Add(-leeway).Unix() >= claims.Expiry {
		return newClaimError(ClaimExpiry, ErrExpired, "", "")
	}

	if claims.NotBefore != 0 && now.Add(leeway).Unix() < claims.NotBefore {
		return newClaimError(ClaimNotBefore, ErrNotYetValid, "", "")
	}

	return nil
}

package jwt

// Enrich re-issues an existing token with additional claims.
//
// It is not possible to modify just the payload of a token: the signature
// covers header and payload, so a completely new token is signed. The
// original token is verified with "key" first, which therefore has to serve
// both directions: the HMAC secret, or the RSA/ECDSA private key (its
// public half verifies). The new token keeps the algorithm and the "kid"
// of the original.
//
// Claim Merging Behavior:
//   - Original claims are preserved
//   - Extra claims replace existing extra claims of the same name
//   - Registered claims are changed through options only, e.g. MaxAge;
//     an extra claim named after one fails with ErrInvalidClaims
//
// The temporal claims of the original are not validated, call Check first
// when an expired token must not be refreshed.
//
// Example usage:
//
//	extra := jwt.MapOf(map[string]jwt.Value{
//	    "role":        jwt.String("admin"),
//	    "permissions": jwt.Array(jwt.String("read"), jwt.String("write")),
//	})
//	enriched, err := jwt.Enrich(token, secret, extra, jwt.MaxAge(time.Now(), 2*time.Hour))
func Enrich(token string, key PrivateKey, extra *Map, opts ...EncodeOption) (string, error) {
	t, err := Decode(token, key)
	if err != nil {
		return "", err
	}

	claims := t.Claims
	if extra.Len() > 0 {
		merged := NewMap()
		for _, m := range []*Map{claims.Extra, extra} {
			m.Range(func(k string, v Value) bool {
				merged.Set(k, v)
				return true
			})
		}
		claims.Extra = merged
	}

	if kid := t.Header.KeyID; kid != "" {
		opts = append([]EncodeOption{WithKeyID(kid)}, opts...)
	}

	return Encode(t.Algorithm(), key, claims, opts...)
}

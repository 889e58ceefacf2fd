package jwt

// Check verifies and decodes the token and validates its claims against the
// policy, returning the token only when every check passes.
//
// **Verification Process**:
//  1. Structure, algorithm pin and signature, see Decode.
//     The pin is policy.Algorithms, else policy.Families, else the key type.
//  2. Claims, see Validate: exp, nbf, required claims, iss, sub, aud.
//
// Every failure wraps one of the package error values, use errors.Is or
// KindOf to classify it. Failures of the second step are *ClaimError.
//
// Example usage:
//
//	token, err := jwt.Check(raw, publicKey, jwt.Policy{
//	    Algorithms: []jwt.AlgorithmID{jwt.RS256},
//	    Issuer:     "auth.example.com",
//	    Leeway:     30 * time.Second,
//	})
//	if err != nil {
//	    if errors.Is(err, jwt.ErrExpired) {
//	        // ask for a new token
//	    }
//	    return err
//	}
//	fmt.Println(token.Claims.Subject)
func Check(token string, key PublicKey, policy Policy) (*Token, error) {
	t, err := decodeToken(token, key, policy.Algorithms, policy.Families)
	if err != nil {
		return nil, err
	}

	if err = Validate(t.Claims, policy.now(), policy); err != nil {
		return nil, err
	}

	return t, nil
}

// Verify reports whether the token is authentic and valid under the policy.
// It is Check without the details.
func Verify(token string, key PublicKey, policy Policy) bool {
	_, err := Check(token, key, policy)
	return err == nil
}

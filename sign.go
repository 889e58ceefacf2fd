package jwt

import (
	"time"

	"github.com/google/uuid"
)

// Encode signs the claims with the algorithm and key and returns the compact
// token "header.payload.signature".
//
// The header is always derived from the algorithm: {"alg":...,"typ":"JWT"},
// plus "kid" when WithKeyID is given. The payload is the canonical JSON form
// of the claims (see Claims.MarshalJSON), so the same inputs always produce
// the same token for the deterministic families (HMAC, RSA).
//
// Note that the payload is not encrypted,
// therefore it should NOT contain any private information.
// The key is never written to the token.
//
// **Errors**:
//   - ErrMissingClaim: "exp" is absent; checked before any signing happens
//   - ErrUnsupportedAlgorithm: the identifier is not in the registry
//   - ErrInvalidKey: the key does not fit the algorithm family
//   - ErrInvalidClaims: the claims cannot be serialized
//
// Example Code:
//
//	now := time.Now()
//	claims := jwt.Claims{Subject: "alice", Expiry: now.Add(15 * time.Minute).Unix()}
//	claims.Set("role", jwt.String("admin"))
//	token, err := jwt.Encode(jwt.HS256, []byte("secret"), claims, jwt.WithIssuedAt(now))
func Encode(id AlgorithmID, key PrivateKey, claims Claims, opts ...EncodeOption) (string, error) {
	enc := encoding{claims: &claims}
	for _, opt := range opts {
		opt(&enc)
	}

	if !claims.Has(ClaimExpiry) {
		return "", newClaimError(ClaimExpiry, ErrMissingClaim, "", "")
	}

	alg, err := Resolve(id)
	if err != nil {
		return "", err
	}

	header := Header{Algorithm: alg.ID(), Type: TypeJWT, KeyID: enc.keyID}

	headerSegment, err := encodeSegment(header)
	if err != nil {
		return "", err
	}

	payloadSegment, err := encodeSegment(claims)
	if err != nil {
		return "", err
	}

	signingInput := joinParts(headerSegment, payloadSegment)
	signature, err := alg.Sign(key, []byte(signingInput))
	if err != nil {
		return "", err
	}

	return joinParts(signingInput, Base64Encode(signature)), nil
}

// EncodeOption is a helper which fills claims or header fields at the
// Encode function.
type EncodeOption func(*encoding)

type encoding struct {
	claims *Claims
	keyID  string
}

// WithKeyID sets the "kid" header member. The verifier does not use it to
// select a key, it is only a hint for the caller.
func WithKeyID(kid string) EncodeOption {
	return func(e *encoding) {
		e.keyID = kid
	}
}

// WithTokenID sets a random UUID as the "jti" claim, unless one is present.
func WithTokenID() EncodeOption {
	return func(e *encoding) {
		if e.claims.ID == "" {
			e.claims.ID = uuid.NewString()
		}
	}
}

// WithIssuedAt sets the "iat" claim to "now".
func WithIssuedAt(now time.Time) EncodeOption {
	return func(e *encoding) {
		e.claims.IssuedAt = now.Unix()
	}
}

// MaxAge is an EncodeOption which sets "exp" to now+maxAge and "iat" to now.
// Durations below one second are ignored.
func MaxAge(now time.Time, maxAge time.Duration) EncodeOption {
	return func(e *encoding) {
		if maxAge < time.Second {
			return
		}
		e.claims.Expiry = now.Add(maxAge).Unix()
		e.claims.IssuedAt = now.Unix()
	}
}

package jwt

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedToken indicates that the token is not a well-formed compact JWS:
	// wrong number of segments, an empty segment, invalid base64url
	// (including any padding) or a segment that is not a strict JSON object.
	ErrMalformedToken = errors.New("jwt: malformed token")

	// ErrUnsupportedAlgorithm indicates that an algorithm identifier is not part of
	// the closed set this package implements, or that it is outside the
	// algorithms or families pinned by the verification policy.
	//
	// Unknown identifiers are never mapped to a default algorithm.
	ErrUnsupportedAlgorithm = errors.New("jwt: unsupported algorithm")

	// ErrInvalidKey indicates that the key material is absent or of the wrong
	// type or size for the selected algorithm family.
	//
	// **Key Types by Family**:
	//   - HMAC (HS256/384/512): []byte, non-empty
	//   - ECDSA (ES256/384): *ecdsa.PrivateKey (sign), *ecdsa.PublicKey (verify) on the matching curve
	//   - RSA, RSA-PSS (RS*, PS*): *rsa.PrivateKey (sign), *rsa.PublicKey (verify), at least MinRSAKeyBits
	ErrInvalidKey = errors.New("jwt: invalid key")

	// ErrInvalidSignature indicates that JWT signature verification has failed.
	//
	// It deliberately carries no detail: a wrong key, a tampered payload and a
	// signature produced by another algorithm all look the same to the caller.
	ErrInvalidSignature = errors.New("jwt: invalid token signature")

	// ErrMissingClaim indicates that a required claim is absent:
	// "exp" at encode and decode time, "iat" when the policy requires it.
	ErrMissingClaim = errors.New("jwt: missing required claim")

	// ErrInvalidClaims indicates that the claims given to Encode cannot be
	// represented, e.g. an extra claim that shadows a registered claim name.
	ErrInvalidClaims = errors.New("jwt: invalid claims")

	// ErrExpired indicates that the token is used at or after the "exp" instant.
	ErrExpired = errors.New("jwt: token expired")
	// ErrNotYetValid indicates that the token is used before the "nbf" instant.
	ErrNotYetValid = errors.New("jwt: token not valid yet")
	// ErrClaimMismatch indicates that "iss", "sub" or "aud" does not match
	// the value expected by the policy.
	ErrClaimMismatch = errors.New("jwt: claim mismatch")
)

// ClaimError is returned by the claims validator. The token is already known
// to be authentic when a ClaimError is produced, so it is safe to expose the
// offending claim for diagnostics.
//
// Use errors.Is against ErrExpired, ErrNotYetValid, ErrMissingClaim or
// ErrClaimMismatch to classify it.
type ClaimError struct {
	// Claim is the registered claim name, e.g. "exp" or "aud".
	Claim string
	// Want is the value the policy expected (empty for temporal checks).
	Want string
	// Got is the value carried by the token.
	Got string

	err error
}

func newClaimError(claim string, err error, want, got string) *ClaimError {
	return &ClaimError{Claim: claim, Want: want, Got: got, err: err}
}

func (e *ClaimError) Error() string {
	if e.Want != "" {
		return fmt.Sprintf("%v: %s: got %q, want %q", e.err, e.Claim, e.Got, e.Want)
	}

	return fmt.Sprintf("%v: %s", e.err, e.Claim)
}

func (e *ClaimError) Unwrap() error {
	return e.err
}

// ErrorKind classifies an error returned by this package.
type ErrorKind uint8

const (
	// KindNone is the kind of a nil error.
	KindNone ErrorKind = iota
	KindMalformedToken
	KindUnsupportedAlgorithm
	KindInvalidKey
	KindInvalidSignature
	KindMissingClaim
	KindInvalidClaims
	KindExpired
	KindNotYetValid
	KindClaimMismatch
	// KindUnknown is reported for errors that did not originate here.
	KindUnknown
)

var errorKindNames = [...]string{
	KindNone:                 "none",
	KindMalformedToken:       "malformed_token",
	KindUnsupportedAlgorithm: "unsupported_algorithm",
	KindInvalidKey:           "invalid_key",
	KindInvalidSignature:     "invalid_signature",
	KindMissingClaim:         "missing_claim",
	KindInvalidClaims:        "invalid_claims",
	KindExpired:              "expired",
	KindNotYetValid:          "not_yet_valid",
	KindClaimMismatch:        "claim_mismatch",
	KindUnknown:              "unknown",
}

func (k ErrorKind) String() string {
	if int(k) < len(errorKindNames) {
		return errorKindNames[k]
	}

	return errorKindNames[KindUnknown]
}

// KindOf reports the kind of "err". It is meant for diagnostic callers,
// metric labels and exit codes; use errors.Is for control flow.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrMalformedToken):
		return KindMalformedToken
	case errors.Is(err, ErrUnsupportedAlgorithm):
		return KindUnsupportedAlgorithm
	case errors.Is(err, ErrInvalidKey):
		return KindInvalidKey
	case errors.Is(err, ErrInvalidSignature):
		return KindInvalidSignature
	case errors.Is(err, ErrMissingClaim):
		return KindMissingClaim
	case errors.Is(err, ErrInvalidClaims):
		return KindInvalidClaims
	case errors.Is(err, ErrExpired):
		return KindExpired
	case errors.Is(err, ErrNotYetValid):
		return KindNotYetValid
	case errors.Is(err, ErrClaimMismatch):
		return KindClaimMismatch
	default:
		return KindUnknown
	}
}

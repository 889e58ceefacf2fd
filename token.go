package jwt

import (
	"errors"
	"fmt"
	"time"
)

// Token is a decoded token whose signature has been verified.
//
// The temporal and identity claims are NOT checked by Decode,
// see Check and Validate.
type Token struct {
	// Raw is the compact form the token was decoded from.
	Raw string
	// Header is the decoded JOSE header.
	Header Header
	// Claims is the decoded payload.
	Claims Claims
	// Signature is the raw, base64url-decoded signature.
	Signature []byte
}

// Algorithm returns the algorithm the token was verified with.
func (t *Token) Algorithm() AlgorithmID {
	return t.Header.Algorithm
}

// Timeleft returns the time until expiration relative to "now".
func (t *Token) Timeleft(now time.Time) time.Duration {
	return t.Claims.Timeleft(now)
}

// Decode verifies the token signature and decodes its claims.
//
// The algorithm named by the header is accepted only when it belongs to one
// of the given families or, when none is given, to the family the key type
// implies: []byte for HMAC, ECDSA keys for ES*, RSA keys for RS* and PS*.
// That closes the classic confusion attacks, e.g. an RSA public key used as
// an HMAC secret.
//
// **Decoding Process**:
//  1. Split into three non-empty segments (ErrMalformedToken)
//  2. Decode and parse the header strictly (ErrMalformedToken)
//  3. Resolve and pin the algorithm (ErrUnsupportedAlgorithm)
//  4. Verify the signature over the original segments
//     (ErrInvalidSignature, ErrInvalidKey)
//  5. Decode and parse the payload strictly (ErrMalformedToken)
//  6. Require "exp" (ErrMissingClaim)
//
// The payload is never parsed before the signature is known to be good.
func Decode(token string, key PublicKey, families ...Family) (*Token, error) {
	return decodeToken(token, key, nil, families)
}

func decodeToken(token string, key PublicKey, algorithms []AlgorithmID, families []Family) (*Token, error) {
	headerSegment, payloadSegment, signatureSegment, err := splitToken(token)
	if err != nil {
		return nil, err
	}

	header, err := decodeHeader(headerSegment)
	if err != nil {
		return nil, err
	}

	alg, err := resolveAllowed(header.Algorithm, key, algorithms, families)
	if err != nil {
		return nil, err
	}

	signature, err := decodeSegment(signatureSegment)
	if err != nil {
		return nil, err
	}

	// The signing input is the received text, not a re-encoding of it.
	signingInput := token[:len(headerSegment)+len(sep)+len(payloadSegment)]
	ok, err := alg.Verify(key, []byte(signingInput), signature)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidSignature
	}

	payload, err := decodeSegment(payloadSegment)
	if err != nil {
		return nil, err
	}

	claims, err := parseClaims(payload)
	if err != nil {
		return nil, malformed(err)
	}

	if !claims.Has(ClaimExpiry) {
		return nil, newClaimError(ClaimExpiry, ErrMissingClaim, "", "")
	}

	return &Token{
		Raw:       token,
		Header:    header,
		Claims:    claims,
		Signature: signature,
	}, nil
}

// ParseUnverified decodes the header of a token WITHOUT verifying anything
// else. It is meant for diagnostics and for callers which pick a key by
// "kid"; the result must never be used as an authorization decision.
func ParseUnverified(token string) (Header, error) {
	headerSegment, _, _, err := splitToken(token)
	if err != nil {
		return Header{}, err
	}

	return decodeHeader(headerSegment)
}

func decodeHeader(segment string) (Header, error) {
	data, err := decodeSegment(segment)
	if err != nil {
		return Header{}, err
	}

	header, err := parseHeader(data)
	if err != nil {
		return Header{}, malformed(err)
	}

	return header, nil
}

// malformed maps a JSON parse failure to ErrMalformedToken.
func malformed(err error) error {
	if errors.Is(err, ErrMalformedToken) {
		return err
	}

	return fmt.Errorf("%w: %v", ErrMalformedToken, err)
}

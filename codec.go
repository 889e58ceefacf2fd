package jwt

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
)

const sep = "."

// b64 is unpadded base64url. Strict mode also refuses encodings whose unused
// trailing bits are not zero, so every segment has exactly one spelling.
var b64 = base64.RawURLEncoding.Strict()

// Base64Encode encodes "src" to the JWT base64url form (no trailing '=').
func Base64Encode(src []byte) string {
	return b64.EncodeToString(src)
}

// Base64Decode decodes a JWT base64url segment. Padding characters,
// characters outside A-Z a-z 0-9 '-' '_' and non-canonical trailing bits
// are rejected.
func Base64Decode(src string) ([]byte, error) {
	return b64.DecodeString(src)
}

// encodeSegment serializes "v" to its canonical compact JSON form and
// base64url-encodes it.
func encodeSegment(v json.Marshaler) (string, error) {
	b, err := v.MarshalJSON()
	if err != nil {
		return "", err
	}

	return Base64Encode(b), nil
}

// decodeSegment base64url-decodes a segment. The JSON parsing is left to the
// caller, which knows the expected shape.
func decodeSegment(segment string) ([]byte, error) {
	b, err := Base64Decode(segment)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	return b, nil
}

// splitToken splits a compact token into its three segments.
// Exactly two separators and three non-empty segments are required.
func splitToken(token string) (header, claims, signature string, err error) {
	if strings.Count(token, sep) != 2 {
		return "", "", "", fmt.Errorf("%w: expected 3 segments", ErrMalformedToken)
	}

	header, rest, _ := strings.Cut(token, sep)
	claims, signature, _ = strings.Cut(rest, sep)
	if header == "" || claims == "" || signature == "" {
		return "", "", "", fmt.Errorf("%w: empty segment", ErrMalformedToken)
	}

	return header, claims, signature, nil
}

// joinParts joins segments with the separator.
func joinParts(parts ...string) string {
	return strings.Join(parts, sep)
}

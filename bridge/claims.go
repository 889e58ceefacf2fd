// Package bridge is the plain-data boundary in front of the jwt engine, for
// callers which think in flat claim records and string secrets rather than
// in Claims, Policy and typed keys. It is the shape a language binding or an
// RPC handler would call.
//
// Every operation takes a context and runs on a bounded worker slot,
// see Service.
package bridge

import (
	"github.com/kataras/jwtengine"
)

// DefaultAlgorithm is used by Encode when ClaimsInput.Algorithm is empty.
const DefaultAlgorithm = jwt.HS256

// ClaimsInput is the flat record accepted by Service.Encode.
// Zero values mean "absent".
type ClaimsInput struct {
	// Secret is the HMAC secret. It is used when Key is nil and is never
	// written to the token.
	Secret string `json:"-" yaml:"-"`
	// Key is the signing key for the asymmetric families.
	Key jwt.PrivateKey `json:"-" yaml:"-"`
	// Algorithm defaults to HS256.
	Algorithm jwt.AlgorithmID `json:"algorithm,omitempty" yaml:"algorithm,omitempty"`

	// Exp is required.
	Exp int64    `json:"exp" yaml:"exp"`
	Aud []string `json:"aud,omitempty" yaml:"aud,omitempty"`
	Iat int64    `json:"iat,omitempty" yaml:"iat,omitempty"`
	Iss string   `json:"iss,omitempty" yaml:"iss,omitempty"`
	Nbf int64    `json:"nbf,omitempty" yaml:"nbf,omitempty"`
	Sub string   `json:"sub,omitempty" yaml:"sub,omitempty"`
	Jti string   `json:"jti,omitempty" yaml:"jti,omitempty"`
	// KeyID, when set, is written as the "kid" header member.
	KeyID string `json:"kid,omitempty" yaml:"kid,omitempty"`

	// Extra holds the custom claims.
	Extra *jwt.Map `json:"extra,omitempty" yaml:"-"`
}

func (in ClaimsInput) algorithm() jwt.AlgorithmID {
	if in.Algorithm == "" {
		return DefaultAlgorithm
	}
	return in.Algorithm
}

func (in ClaimsInput) key() jwt.PrivateKey {
	if in.Key != nil {
		return normalizeKey(in.Key)
	}
	return []byte(in.Secret)
}

func (in ClaimsInput) claims() jwt.Claims {
	return jwt.Claims{
		Issuer:    in.Iss,
		Subject:   in.Sub,
		Audience:  in.Aud,
		Expiry:    in.Exp,
		NotBefore: in.Nbf,
		IssuedAt:  in.Iat,
		ID:        in.Jti,
		Extra:     in.Extra,
	}
}

// DecodedData is the flat record returned by Service.Decode. Optional claims
// which the token does not carry are nil, so they serialize as null.
// The secret is never part of it.
type DecodedData struct {
	Algorithm jwt.AlgorithmID `json:"algorithm" yaml:"algorithm" text:"algorithm"`
	KeyID     *string         `json:"kid" yaml:"kid" text:"kid"`

	Exp int64    `json:"exp" yaml:"exp" text:"exp"`
	Aud []string `json:"aud" yaml:"aud" text:"aud"`
	Iat *int64   `json:"iat" yaml:"iat" text:"iat"`
	Iss *string  `json:"iss" yaml:"iss" text:"iss"`
	Nbf *int64   `json:"nbf" yaml:"nbf" text:"nbf"`
	Sub *string  `json:"sub" yaml:"sub" text:"sub"`
	Jti *string  `json:"jti" yaml:"jti" text:"jti"`

	// Extra holds every custom claim, nested values as plain Go values.
	Extra map[string]any `json:"extra" yaml:"extra" text:"extra"`
}

func newDecodedData(t *jwt.Token) *DecodedData {
	c := t.Claims
	data := &DecodedData{
		Algorithm: t.Header.Algorithm,
		KeyID:     optionalString(t.Header.KeyID),
		Exp:       c.Expiry,
		Iat:       optionalInt(c.IssuedAt),
		Iss:       optionalString(c.Issuer),
		Nbf:       optionalInt(c.NotBefore),
		Sub:       optionalString(c.Subject),
		Jti:       optionalString(c.ID),
		Extra:     c.Extra.Interface(),
	}
	if len(c.Audience) > 0 {
		data.Aud = c.Audience
	}
	return data
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func optionalInt(n int64) *int64 {
	if n == 0 {
		return nil
	}
	return &n
}

// normalizeKey accepts a string wherever the engine expects an HMAC secret.
func normalizeKey(key any) any {
	if s, ok := key.(string); ok {
		return []byte(s)
	}
	return key
}

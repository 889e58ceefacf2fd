package jwt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"time"
)

// Registered claim names, in the order Encode writes them.
const (
	ClaimIssuer    = "iss"
	ClaimSubject   = "sub"
	ClaimAudience  = "aud"
	ClaimExpiry    = "exp"
	ClaimNotBefore = "nbf"
	ClaimIssuedAt  = "iat"
	ClaimID        = "jti"
)

var registeredClaims = []string{
	ClaimIssuer,
	ClaimSubject,
	ClaimAudience,
	ClaimExpiry,
	ClaimNotBefore,
	ClaimIssuedAt,
	ClaimID,
}

// IsRegisteredClaim reports whether "name" is one of the registered claims
// this package models as a Claims field.
func IsRegisteredClaim(name string) bool {
	return slices.Contains(registeredClaims, name)
}

// Claims holds the payload of a token: the registered claims plus any
// caller-defined claims in Extra.
//
// Dates are NumericDate values, seconds since the Unix epoch.
// A zero field means the claim is absent, unless it was decoded from a
// token which carries it with a zero value, e.g. "iss":"" or "exp":0.
type Claims struct {
	// Issuer ("iss") identifies the principal that issued the token.
	Issuer string
	// Subject ("sub") identifies the principal the token is about.
	Subject string
	// Audience ("aud") lists the intended recipients. A single audience is
	// written as a JSON string, several as an array.
	Audience Audience
	// Expiry ("exp") is required. The token is invalid at and after this instant.
	Expiry int64
	// NotBefore ("nbf") makes the token invalid before this instant.
	NotBefore int64
	// IssuedAt ("iat") is informational unless the policy requires it.
	IssuedAt int64
	// ID ("jti") is a unique token identifier, see WithTokenID.
	ID string

	// Extra holds every other claim, preserved verbatim through
	// encode and decode. It must not contain registered claim names.
	Extra *Map

	// zero marks the registered claims present with a zero value,
	// one bit per registeredClaims index.
	zero uint8
}

func (c Claims) zeroPresent(name string) bool {
	i := slices.Index(registeredClaims, name)
	return i >= 0 && c.zero&(1<<i) != 0
}

// Set stores a caller-defined claim in Extra.
func (c *Claims) Set(name string, value Value) {
	if c.Extra == nil {
		c.Extra = NewMap()
	}
	c.Extra.Set(name, value)
}

// Get returns any claim by name, registered claims included.
func (c Claims) Get(name string) (Value, bool) {
	switch name {
	case ClaimIssuer:
		return String(c.Issuer), c.Issuer != "" || c.zeroPresent(name)
	case ClaimSubject:
		return String(c.Subject), c.Subject != "" || c.zeroPresent(name)
	case ClaimAudience:
		return c.Audience.value(), len(c.Audience) > 0 || c.zeroPresent(name)
	case ClaimExpiry:
		return Int(c.Expiry), c.Expiry != 0 || c.zeroPresent(name)
	case ClaimNotBefore:
		return Int(c.NotBefore), c.NotBefore != 0 || c.zeroPresent(name)
	case ClaimIssuedAt:
		return Int(c.IssuedAt), c.IssuedAt != 0 || c.zeroPresent(name)
	case ClaimID:
		return String(c.ID), c.ID != "" || c.zeroPresent(name)
	default:
		return c.Extra.Get(name)
	}
}

// ExpiresAt returns the "exp" claim as a time value.
func (c Claims) ExpiresAt() time.Time {
	return time.Unix(c.Expiry, 0)
}

// Timeleft returns the time until expiration relative to "now".
func (c Claims) Timeleft(now time.Time) time.Duration {
	return c.ExpiresAt().Sub(now)
}

// Has reports whether the claim is present.
func (c Claims) Has(name string) bool {
	_, ok := c.Get(name)
	return ok
}

// MarshalJSON writes the canonical payload: registered claims in a fixed
// order followed by the extra claims sorted by name.
func (c Claims) MarshalJSON() ([]byte, error) {
	if c.Expiry < 0 || c.NotBefore < 0 || c.IssuedAt < 0 {
		return nil, fmt.Errorf("%w: negative date", ErrInvalidClaims)
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	n := 0
	write := func(name string, v Value) error {
		if n > 0 {
			buf.WriteByte(',')
		}
		n++
		return writeMember(&buf, name, v)
	}

	for _, name := range registeredClaims {
		v, ok := c.Get(name)
		if !ok {
			continue
		}
		if err := write(name, v); err != nil {
			return nil, err
		}
	}

	var err error
	c.Extra.Range(func(k string, v Value) bool {
		if IsRegisteredClaim(k) {
			err = fmt.Errorf("%w: extra claim %q shadows a registered claim", ErrInvalidClaims, k)
			return false
		}
		err = write(k, v)
		return err == nil
	})
	if err != nil {
		return nil, err
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

var _ json.Marshaler = Claims{}

// parseClaims parses the decoded payload segment. Registered claims must
// have their registered types; a null registered claim counts as absent.
// A registered claim with a zero value stays present.
func parseClaims(data []byte) (Claims, error) {
	m, err := parseObject(data)
	if err != nil {
		return Claims{}, err
	}

	var c Claims
	for i, name := range registeredClaims {
		v, ok := m.Get(name)
		if !ok {
			continue
		}
		m.Delete(name)
		if v.Kind() == KindNull {
			continue
		}

		switch name {
		case ClaimIssuer:
			c.Issuer, ok = v.Str()
		case ClaimSubject:
			c.Subject, ok = v.Str()
		case ClaimID:
			c.ID, ok = v.Str()
		case ClaimAudience:
			c.Audience, ok = audienceOf(v)
		case ClaimExpiry:
			c.Expiry, ok = v.Int64()
		case ClaimNotBefore:
			c.NotBefore, ok = v.Int64()
		case ClaimIssuedAt:
			c.IssuedAt, ok = v.Int64()
		}

		if !ok {
			return Claims{}, fmt.Errorf("%w: %s has type %s", errJSON, name, v.Kind())
		}

		if !c.Has(name) {
			c.zero |= 1 << i
		}
	}

	if m.Len() > 0 {
		c.Extra = m
	}

	return c, nil
}

// Audience is the "aud" claim.
type Audience []string

// Contains reports whether "aud" is one of the audiences.
func (a Audience) Contains(aud string) bool {
	return slices.Contains(a, aud)
}

func (a Audience) value() Value {
	if len(a) == 1 {
		return String(a[0])
	}

	items := make([]Value, len(a))
	for i, aud := range a {
		items[i] = String(aud)
	}
	return Array(items...)
}

func audienceOf(v Value) (Audience, bool) {
	if s, ok := v.Str(); ok {
		return Audience{s}, true
	}

	items := v.Array()
	if v.Kind() != KindArray {
		return nil, false
	}

	aud := make(Audience, 0, len(items))
	for _, item := range items {
		s, ok := item.Str()
		if !ok {
			return nil, false
		}
		aud = append(aud, s)
	}
	return aud, true
}

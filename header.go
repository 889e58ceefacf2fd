package jwt

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// TypeJWT is the "typ" header value written by Encode.
const TypeJWT = "JWT"

// Header is the JOSE header of a token.
//
// At encode time it is always derived from the requested algorithm.
// At decode time it is parsed verbatim, but nothing except Algorithm is
// trusted, and Algorithm only within the caller's pin.
type Header struct {
	Algorithm AlgorithmID
	Type      string
	// KeyID is the optional "kid" member. It is informational only:
	// key selection belongs to the caller.
	KeyID string
	// Extra holds any other header members of a decoded token.
	Extra *Map
}

// MarshalJSON writes the canonical header: "alg", "typ" and, when set, "kid".
// Extra members are not written; the header of a new token carries only
// what this package produces.
func (h Header) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	if err := writeMember(&buf, "alg", String(string(h.Algorithm))); err != nil {
		return nil, err
	}

	typ := h.Type
	if typ == "" {
		typ = TypeJWT
	}
	buf.WriteByte(',')
	if err := writeMember(&buf, "typ", String(typ)); err != nil {
		return nil, err
	}

	if h.KeyID != "" {
		buf.WriteByte(',')
		if err := writeMember(&buf, "kid", String(h.KeyID)); err != nil {
			return nil, err
		}
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

var _ json.Marshaler = Header{}

// parseHeader parses the decoded header segment. The "alg" member must be a
// string. A "crit" member is refused: no header extension is understood here,
// and RFC 7515 section 4.1.11 forbids ignoring one.
func parseHeader(data []byte) (Header, error) {
	m, err := parseObject(data)
	if err != nil {
		return Header{}, err
	}

	var h Header
	alg, ok := m.Get("alg")
	if !ok {
		return Header{}, fmt.Errorf("%w: alg", errJSON)
	}

	id, ok := alg.Str()
	if !ok {
		return Header{}, fmt.Errorf("%w: alg is not a string", errJSON)
	}
	h.Algorithm = AlgorithmID(id)
	m.Delete("alg")

	if typ, ok := m.Get("typ"); ok {
		if h.Type, ok = typ.Str(); !ok {
			return Header{}, fmt.Errorf("%w: typ is not a string", errJSON)
		}
		m.Delete("typ")
	}

	if kid, ok := m.Get("kid"); ok {
		if h.KeyID, ok = kid.Str(); !ok {
			return Header{}, fmt.Errorf("%w: kid is not a string", errJSON)
		}
		m.Delete("kid")
	}

	if _, ok := m.Get("crit"); ok {
		return Header{}, fmt.Errorf("%w: crit extensions are not supported", errJSON)
	}

	if m.Len() > 0 {
		h.Extra = m
	}

	return h, nil
}

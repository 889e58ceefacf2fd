package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBase64(t *testing.T) {
	assert.Equal(t, "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9", Base64Encode([]byte(`{"alg":"HS256","typ":"JWT"}`)))
	assert.Equal(t, "-_8", Base64Encode([]byte{0xfb, 0xff}))

	b, err := Base64Decode("eQ")
	require.NoError(t, err)
	assert.Equal(t, "y", string(b))

	for _, invalid := range []string{
		"eQ==",  // padding.
		"eQ=",   // partial padding.
		"+/8",   // standard alphabet.
		"eR",    // non-zero trailing bits.
		"e",     // impossible length.
		"ey J9", // whitespace.
	} {
		_, err := Base64Decode(invalid)
		assert.Error(t, err, invalid)
	}

	_, err = decodeSegment("eQ==")
	assert.ErrorIs(t, err, ErrMalformedToken)
}

func TestSplitToken(t *testing.T) {
	h, p, s, err := splitToken("a.b.c")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, []string{h, p, s})

	for _, invalid := range []string{"", "a", "a.b", "a.b.c.d", ".b.c", "a..c", "a.b.", "..", "a.b.c."} {
		_, _, _, err := splitToken(invalid)
		assert.ErrorIs(t, err, ErrMalformedToken, invalid)
	}

	assert.Equal(t, "a.b.c", joinParts("a", "b", "c"))
}

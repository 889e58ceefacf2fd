package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderMarshal(t *testing.T) {
	b, err := Header{Algorithm: HS256}.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"alg":"HS256","typ":"JWT"}`, string(b))

	b, err = Header{Algorithm: ES384, Type: TypeJWT, KeyID: "2024-01", Extra: MapOf(map[string]Value{"x5t": String("ignored")})}.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"alg":"ES384","typ":"JWT","kid":"2024-01"}`, string(b))
}

func TestParseHeader(t *testing.T) {
	h, err := parseHeader([]byte(`{"kid":"k1","typ":"JWT","alg":"PS256","cty":"JWT"}`))
	require.NoError(t, err)
	assert.Equal(t, PS256, h.Algorithm)
	assert.Equal(t, "JWT", h.Type)
	assert.Equal(t, "k1", h.KeyID)
	assert.Equal(t, []string{"cty"}, h.Extra.Keys())

	h, err = parseHeader([]byte(`{"alg":"HS256"}`))
	require.NoError(t, err)
	assert.Empty(t, h.Type)
	assert.Nil(t, h.Extra)

	// Unknown identifiers are left to the registry.
	h, err = parseHeader([]byte(`{"alg":"none"}`))
	require.NoError(t, err)
	assert.Equal(t, AlgorithmID("none"), h.Algorithm)

	for _, invalid := range []string{
		`{}`,
		`{"typ":"JWT"}`,
		`{"alg":null}`,
		`{"alg":["HS256"]}`,
		`{"alg":"HS256","typ":1}`,
		`{"alg":"HS256","kid":{}}`,
		`{"alg":"HS256","crit":["b64"],"b64":false}`,
		`{"alg":"HS256","alg":"RS256"}`,
	} {
		_, err := parseHeader([]byte(invalid))
		assert.ErrorIs(t, err, errJSON, invalid)
	}
}

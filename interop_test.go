package jwt

import (
	"testing"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Tokens must be exchangeable with other RFC 7515 implementations in both
// directions.
func TestInteroperability(t *testing.T) {
	keys := testKeys(t)
	now := func() time.Time { return T }

	for _, id := range Algorithms() {
		pair := keys[id]
		method := jwtv5.GetSigningMethod(string(id))
		require.NotNil(t, method, id)

		t.Run(string(id)+"/Encode", func(t *testing.T) {
			claims := Claims{Subject: "alice", Audience: Audience{"api"}, Expiry: T.Unix() + 3600, IssuedAt: T.Unix()}
			claims.Set("role", String("admin"))
			token, err := Encode(id, pair.private, claims)
			require.NoError(t, err)

			parsed, err := jwtv5.Parse(token, func(*jwtv5.Token) (any, error) { return pair.public, nil },
				jwtv5.WithValidMethods([]string{string(id)}),
				jwtv5.WithTimeFunc(now),
				jwtv5.WithAudience("api"),
			)
			require.NoError(t, err)
			assert.True(t, parsed.Valid)

			mapClaims := parsed.Claims.(jwtv5.MapClaims)
			assert.Equal(t, "alice", mapClaims["sub"])
			assert.Equal(t, "admin", mapClaims["role"])
		})

		t.Run(string(id)+"/Decode", func(t *testing.T) {
			token, err := jwtv5.NewWithClaims(method, jwtv5.MapClaims{
				"sub":   "bob",
				"aud":   []string{"api", "web"},
				"exp":   T.Unix() + 3600,
				"nbf":   T.Unix(),
				"level": 3,
			}).SignedString(pair.private)
			require.NoError(t, err)

			decoded, err := Check(token, pair.public, Policy{Algorithms: []AlgorithmID{id}, Audience: "web", Now: now})
			require.NoError(t, err)
			assert.Equal(t, "bob", decoded.Claims.Subject)
			assert.Equal(t, Audience{"api", "web"}, decoded.Claims.Audience)

			level, ok := decoded.Claims.Get("level")
			require.True(t, ok)
			assert.Equal(t, Int(3), level)
		})
	}
}

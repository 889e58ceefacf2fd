package benchmarks

import (
	"testing"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	jwt "github.com/kataras/jwtengine"
)

func createTestToken(b *testing.B) string {
	b.Helper()

	claims := jwt.Claims{Subject: "alice", Issuer: "auth"}
	claims.Set("foo", jwt.String("bar"))
	token, err := jwt.Encode(jwt.HS256, testSecret, claims, jwt.MaxAge(time.Now(), 15*time.Minute))
	if err != nil {
		b.Fatal(err)
	}
	return token
}

// Test performance of signature verification plus claims validation.

func BenchmarkCheck(b *testing.B) {
	token := createTestToken(b)
	policy := jwt.Policy{Algorithms: []jwt.AlgorithmID{jwt.HS256}, Issuer: "auth"}

	b.ReportAllocs()

	for b.Loop() {
		if _, err := jwt.Check(token, testSecret, policy); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDecode(b *testing.B) {
	token := createTestToken(b)

	b.ReportAllocs()

	for b.Loop() {
		if _, err := jwt.Decode(token, testSecret); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCheck_jwt_v5(b *testing.B) {
	token := createTestToken(b)
	keyFunc := func(*jwtv5.Token) (any, error) { return testSecret, nil }

	b.ReportAllocs()

	for b.Loop() {
		_, err := jwtv5.Parse(token, keyFunc,
			jwtv5.WithValidMethods([]string{"HS256"}),
			jwtv5.WithIssuer("auth"),
		)
		if err != nil {
			b.Fatal(err)
		}
	}
}

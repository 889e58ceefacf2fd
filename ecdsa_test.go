package jwt

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"testing"
)

func TestECDSA(t *testing.T) {
	keys := testKeys(t)

	for _, alg := range []Alg{es256, es384} {
		private := keys[alg.ID()].private.(*ecdsa.PrivateKey)

		signature := testSignVerify(t, alg, private, &private.PublicKey)
		if expected := 2 * alg.(*algECDSA).keySize; len(signature) != expected {
			t.Fatalf("%s: expected a fixed %d bytes r||s signature but got %d", alg.ID(), expected, len(signature))
		}

		// The private key verifies too.
		testSignVerify(t, alg, private, private)
	}
}

func TestECDSACurveMismatch(t *testing.T) {
	keys := testKeys(t)
	p256 := keys[ES256].private.(*ecdsa.PrivateKey)
	p384 := keys[ES384].private.(*ecdsa.PrivateKey)

	testInvalidKey(t, es256, p384, &p384.PublicKey)
	testInvalidKey(t, es384, p256, &p256.PublicKey)

	p521, err := ecdsa.GenerateKey(elliptic.P521(), rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	testInvalidKey(t, es256, p521, &p521.PublicKey)
}

func TestECDSAInvalidKey(t *testing.T) {
	testKeys(t)

	var nilKey *ecdsa.PrivateKey
	testInvalidKey(t, es256, nilKey, (*ecdsa.PublicKey)(nil))
	testInvalidKey(t, es256, testSecret, testSecret)
	testInvalidKey(t, es256, testRSA, &testRSA.PublicKey)
}

package jwt

import (
	"bytes"
	"crypto/rsa"
	"testing"
)

func TestRSAPSS(t *testing.T) {
	testKeys(t)
	input := []byte("eyJhbGciOiJQUzI1NiIsInR5cCI6IkpXVCJ9.eyJleHAiOjE3MDAwMDAwNjB9")

	for _, alg := range []Alg{ps256, ps384, ps512} {
		testSignVerify(t, alg, testRSA, &testRSA.PublicKey)

		// Randomized: two signatures differ, both verify.
		a, err := alg.Sign(testRSA, input)
		if err != nil {
			t.Fatal(err)
		}
		b, err := alg.Sign(testRSA, input)
		if err != nil {
			t.Fatal(err)
		}
		if bytes.Equal(a, b) {
			t.Fatalf("%s: expected randomized signatures", alg.ID())
		}
		for _, sig := range [][]byte{a, b} {
			if ok, err := alg.Verify(&testRSA.PublicKey, input, sig); err != nil || !ok {
				t.Fatalf("%s: expected signature to verify but got: %v, %v", alg.ID(), ok, err)
			}
		}

		// The salt must be exactly as long as the digest.
		opts := alg.(*algRSAPSS).opts
		if err := rsa.VerifyPSS(&testRSA.PublicKey, opts.Hash, hashSum(opts.Hash, input), a, &rsa.PSSOptions{SaltLength: opts.Hash.Size()}); err != nil {
			t.Fatalf("%s: expected a salt of %d bytes: %v", alg.ID(), opts.Hash.Size(), err)
		}
	}
}

func TestRSAPSSNotRSA(t *testing.T) {
	testKeys(t)
	input := []byte("a.b")

	signature, err := rs256.Sign(testRSA, input)
	if err != nil {
		t.Fatal(err)
	}

	if ok, err := ps256.Verify(&testRSA.PublicKey, input, signature); err != nil || ok {
		t.Fatalf("expected a PKCS#1 v1.5 signature to fail PSS verification but got: %v, %v", ok, err)
	}
}

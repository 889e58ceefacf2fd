package jwt

import (
	"bytes"
	"testing"
)

func TestHMAC(t *testing.T) {
	for _, alg := range []Alg{hs256, hs384, hs512} {
		signature := testSignVerify(t, alg, testSecret, testSecret)
		if expected := alg.(*algHMAC).hasher.Size(); len(signature) != expected {
			t.Fatalf("%s: expected a %d bytes signature but got %d", alg.ID(), expected, len(signature))
		}

		// Deterministic.
		again, _ := alg.Sign(testSecret, []byte("eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.eyJleHAiOjE3MDAwMDAwNjB9"))
		if !bytes.Equal(signature, again) {
			t.Fatalf("%s: expected the same signature twice", alg.ID())
		}

		if ok, _ := alg.Verify([]byte("other secret"), []byte("a.b"), signature); ok {
			t.Fatalf("%s: expected a different secret to fail verification", alg.ID())
		}
	}
}

func TestHMACKnownSignature(t *testing.T) {
	key := []byte("sercrethatmaycontainch@r$")
	signingInput := "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.eyJ1c2VybmFtZSI6ImthdGFyYXMifQ"
	expected := "HX22uANEy1qEG0m0utORW4YYfyNeuG9FzvRPMxpSaTc"

	signature, err := hs256.Sign(key, []byte(signingInput))
	if err != nil {
		t.Fatal(err)
	}

	if got := Base64Encode(signature); got != expected {
		t.Fatalf("expected signature:\n%q\nbut got:\n%q", expected, got)
	}
}

func TestHMACInvalidKey(t *testing.T) {
	for _, key := range []any{nil, []byte{}, "secret", &testSecret} {
		testInvalidKey(t, hs256, key, key)
	}
}

package jwt

import (
	"encoding/json"
	"testing"
	"time"
)

func TestTokenPair(t *testing.T) {
	accessClaims := Claims{Subject: "foobar"}
	accessClaims.Set("foo", String("bar"))
	accessToken, err := Encode(testAlg, testSecret, accessClaims, MaxAge(T, 10*time.Minute))
	if err != nil {
		t.Fatal(err)
	}
	refreshToken, err := Encode(testAlg, testSecret, Claims{Subject: "foobar"}, MaxAge(T, time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	tokenPair := NewTokenPair(accessToken, refreshToken)

	b, err := json.Marshal(tokenPair)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	expected := `{"access_token":"` + accessToken + `","refresh_token":"` + refreshToken + `"}`
	if string(b) != expected {
		t.Fatalf("expected:\n%s\nbut got:\n%s", expected, b)
	}

	var tokPair TokenPair
	if err = json.Unmarshal(b, &tokPair); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if tokenPair != tokPair {
		t.Fatalf("expected token pairs to be matched, expected:\n%#+v\n\nbut got:\n%#+v", tokenPair, tokPair)
	}

	b, err = json.Marshal(NewTokenPair(accessToken, ""))
	if err != nil {
		t.Fatal(err)
	}
	if expected := `{"access_token":"` + accessToken + `"}`; string(b) != expected {
		t.Fatalf("expected:\n%s\nbut got:\n%s", expected, b)
	}
}

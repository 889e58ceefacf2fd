package jwt_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"time"

	"github.com/kataras/jwtengine"
)

var (
	sharedKey = []byte("sercrethatmaycontainch@r$32chars")
	now       = time.Unix(1700000000, 0)
)

func at(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func Example() {
	claims := jwt.Claims{Subject: "kataras"}
	claims.Set("foo", jwt.String("bar"))

	token, err := jwt.Encode(jwt.HS256, sharedKey, claims, jwt.MaxAge(now, 15*time.Minute))
	if err != nil {
		log.Fatal(err)
	}

	verified, err := jwt.Check(token, sharedKey, jwt.Policy{Now: at(now)})
	if err != nil {
		log.Fatal(err)
	}

	foo, _ := verified.Claims.Get("foo")
	s, _ := foo.Str()
	fmt.Printf("sub=%s foo=%s timeleft=%s\n", verified.Claims.Subject, s, verified.Timeleft(now))
	// Output: sub=kataras foo=bar timeleft=15m0s
}

func Example_keyFiles() {
	dir, err := os.MkdirTemp("", "keys")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(dir)

	// Write a key pair the way it is usually provisioned.
	rsaKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		log.Fatal(err)
	}
	privatePEM, err := jwt.EncodePrivateKey(rsaKey)
	if err != nil {
		log.Fatal(err)
	}
	publicPEM, err := jwt.EncodePublicKey(&rsaKey.PublicKey)
	if err != nil {
		log.Fatal(err)
	}
	privateFile := filepath.Join(dir, "rsa_private_key.pem")
	publicFile := filepath.Join(dir, "rsa_public_key.pem")
	if err = os.WriteFile(privateFile, privatePEM, 0o600); err != nil {
		log.Fatal(err)
	}
	if err = os.WriteFile(publicFile, publicPEM, 0o644); err != nil {
		log.Fatal(err)
	}

	privateKey, err := jwt.LoadPrivateKey(privateFile)
	if err != nil {
		log.Fatal(err)
	}
	publicKey, err := jwt.LoadPublicKey(publicFile)
	if err != nil {
		log.Fatal(err)
	}

	token, err := jwt.Encode(jwt.RS512, privateKey, jwt.Claims{Subject: "kataras"}, jwt.MaxAge(now, time.Hour))
	if err != nil {
		log.Fatal(err)
	}

	verified, err := jwt.Check(token, publicKey, jwt.Policy{Now: at(now)})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(verified.Algorithm(), verified.Claims.Subject)

	// The public key never verifies an HMAC token.
	hmacToken, _ := jwt.Encode(jwt.HS256, sharedKey, jwt.Claims{Expiry: now.Unix() + 60})
	_, err = jwt.Check(hmacToken, publicKey, jwt.Policy{Now: at(now)})
	fmt.Println(jwt.KindOf(err))
	// Output:
	// RS512 kataras
	// unsupported_algorithm
}

func Example_policy() {
	claims := jwt.Claims{Issuer: "my-app"}
	claims.Set("bar", jwt.String("foo"))
	token, err := jwt.Encode(jwt.HS256, sharedKey, claims, jwt.MaxAge(now, 10*time.Second))
	if err != nil {
		log.Fatal(err)
	}

	check := func(policy jwt.Policy) {
		if _, err := jwt.Check(token, sharedKey, policy); err != nil {
			fmt.Println(err)
			return
		}
		fmt.Println("valid")
	}

	check(jwt.Policy{Issuer: "other-app", Now: at(now)})
	check(jwt.Policy{Required: []string{"role"}, Now: at(now)})
	check(jwt.Policy{Issuer: "my-app", Required: []string{"bar"}, Now: at(now)})

	// 11 seconds later the token has expired, unless the leeway covers it.
	later := at(now.Add(11 * time.Second))
	check(jwt.Policy{Now: later})
	check(jwt.Policy{Leeway: 5 * time.Second, Now: later})
	check(jwt.Policy{Leeway: 5 * time.Second, Now: at(now.Add(16 * time.Second))})
	// Output:
	// jwt: claim mismatch: iss: got "my-app", want "other-app"
	// jwt: missing required claim: role
	// valid
	// jwt: token expired: exp
	// valid
	// jwt: token expired: exp
}

func ExampleWithKeyID() {
	keys := make(map[string]*rsa.PrivateKey)
	for _, kid := range []string{"my_key_id_1", "my_key_id_2"} {
		key, err := rsa.GenerateKey(rand.Reader, 2048)
		if err != nil {
			log.Fatal(err)
		}
		keys[kid] = key
	}

	claims := jwt.Claims{}
	claims.Set("email", jwt.String("kataras2006@hotmail.com"))
	token, err := jwt.Encode(jwt.RS256, keys["my_key_id_2"], claims,
		jwt.WithKeyID("my_key_id_2"), jwt.MaxAge(now, 10*time.Minute))
	if err != nil {
		log.Fatal(err)
	}

	// The "kid" only tells which key to try, the signature decides.
	header, err := jwt.ParseUnverified(token)
	if err != nil {
		log.Fatal(err)
	}
	key, ok := keys[header.KeyID]
	if !ok {
		log.Fatalf("unknown kid %q", header.KeyID)
	}

	verified, err := jwt.Check(token, &key.PublicKey, jwt.Policy{
		Algorithms: []jwt.AlgorithmID{jwt.RS256},
		Now:        at(now),
	})
	if err != nil {
		log.Fatal(err)
	}

	email, _ := verified.Claims.Get("email")
	s, _ := email.Str()
	fmt.Println(header.KeyID, s)
	// Output: my_key_id_2 kataras2006@hotmail.com
}

type contextKey uint8

const tokenContextKey contextKey = 1

// verify is an HTTP middleware which only lets requests with a valid
// "token" query parameter through.
func verify(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("token")
		if token == "" {
			unauthorized(w)
			return
		}

		verifiedToken, err := jwt.Check(token, sharedKey, jwt.Policy{Now: at(now)})
		if err != nil {
			unauthorized(w)
			return
		}

		r = r.WithContext(context.WithValue(r.Context(), tokenContextKey, verifiedToken))
		next(w, r)
	}
}

func unauthorized(w http.ResponseWriter) {
	http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
}

func Example_middleware() {
	protected := verify(func(w http.ResponseWriter, r *http.Request) {
		verifiedToken := r.Context().Value(tokenContextKey).(*jwt.Token)
		foo, _ := verifiedToken.Claims.Get("foo")
		s, _ := foo.Str()
		fmt.Fprintf(w, "This is an authenticated request, foo=%s\n", s)
	})

	claims := jwt.Claims{}
	claims.Set("foo", jwt.String("bar"))
	token, err := jwt.Encode(jwt.HS256, sharedKey, claims, jwt.MaxAge(now, 15*time.Minute))
	if err != nil {
		log.Fatal(err)
	}

	for _, target := range []string{"/protected?token=" + token, "/protected", "/protected?token=invalid"} {
		rec := httptest.NewRecorder()
		protected(rec, httptest.NewRequest(http.MethodGet, target, nil))
		body, _ := io.ReadAll(rec.Body)
		fmt.Printf("%d %s", rec.Code, body)
	}
	// Output:
	// 200 This is an authenticated request, foo=bar
	// 401 Unauthorized
	// 401 Unauthorized
}

/*
Package jwt implements compact JSON Web Tokens (RFC 7519) signed with
JSON Web Signature (RFC 7515): encoding, signature verification and
claims validation.

# Overview

A token is "header.payload.signature", each segment unpadded base64url.
The package produces and consumes exactly that form and nothing else:
no JWE, no JWKS, no unsecured ("none") tokens.

• **Algorithms**: a closed, immutable set
  - HMAC: HS256, HS384, HS512 (symmetric, []byte secret)
  - ECDSA: ES256 (P-256), ES384 (P-384)
  - RSA: RS256, RS384, RS512 (PKCS#1 v1.5)
  - RSA-PSS: PS256, PS384, PS512

• **Algorithm pinning**: the header "alg" is only trusted inside the
families or algorithms the verifier allows. Without an explicit pin
the key type decides: a []byte key only ever verifies HS* tokens,
an RSA key only RS* and PS*, an ECDSA key only ES*.

• **Canonical encoding**: the header is {"alg","typ"[,"kid"]} and the payload
writes iss, sub, aud, exp, nbf, iat, jti followed by the custom claims
sorted by name. Decoding is strict: exactly three segments, no padding,
no duplicate JSON members, no trailing data.

• **Validation**: "exp" is mandatory. Policy adds leeway, "nbf",
required claims and the expected issuer, subject and audience.

# Quick Start

	secret := []byte("your-256-bit-secret-key-here")

	claims := jwt.Claims{
	    Subject: "alice",
	    Expiry:  time.Now().Add(15 * time.Minute).Unix(),
	}
	claims.Set("role", jwt.String("admin"))

	token, err := jwt.Encode(jwt.HS256, secret, claims, jwt.WithTokenID())
	if err != nil {
	    panic(err)
	}

	verified, err := jwt.Check(token, secret, jwt.Policy{Leeway: 5 * time.Second})
	if err != nil {
	    panic(err)
	}

	role, _ := verified.Claims.Get("role")
	fmt.Println(verified.Claims.Subject, role.Interface())

## RSA Public Key Usage

	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	token, err := jwt.Encode(jwt.RS256, privateKey, claims)

	verified, err := jwt.Check(token, &privateKey.PublicKey, jwt.Policy{
	    Algorithms: []jwt.AlgorithmID{jwt.RS256},
	})

# Re-issuing Tokens

Enrich verifies a token and signs a new one carrying additional claims,
with the same algorithm and key. NewTokenPair bundles an access and a
refresh token into the usual OAuth2 response shape.

# Error Handling

Every error wraps one of the package error values:

	_, err := jwt.Check(token, key, policy)
	switch {
	case errors.Is(err, jwt.ErrMalformedToken):
	    // not a compact JWS
	case errors.Is(err, jwt.ErrUnsupportedAlgorithm):
	    // unknown "alg" or outside the pin
	case errors.Is(err, jwt.ErrInvalidSignature):
	    // wrong key or tampered token
	case errors.Is(err, jwt.ErrExpired):
	    // ask for a new token
	}

KindOf maps an error to a stable label, useful for logs and metrics.
Signature failures never say why: a wrong key and a modified payload
are indistinguishable on purpose.

# Standards Compliance

• **RFC 7519**: JSON Web Token (JWT)
• **RFC 7515**: JSON Web Signature (JWS), compact serialization
• **RFC 7518**: JSON Web Algorithms (JWA), sections 3.2 to 3.5
*/
package jwt

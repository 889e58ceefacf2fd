package jwt

import (
	"crypto"
	"crypto/rsa"
	_ "crypto/sha256" // ignore:lint
	_ "crypto/sha512"
)

type (
	// PrivateKey is the key material passed to Encode.
	// Its concrete type depends on the algorithm family (see ErrInvalidKey).
	PrivateKey = any
	// PublicKey is the key material passed to Decode, Check and Verify.
	// A private key is accepted too: its public half is used.
	PublicKey = any
)

// AlgorithmID is the value of the JWT "alg" header field.
//
// The set of identifiers is closed: HS256, HS384, HS512, ES256, ES384,
// RS256, RS384, RS512, PS256, PS384 and PS512. Identifiers are case-sensitive,
// "hs256" is not HS256.
type AlgorithmID string

// Family groups algorithms which share the same key types.
type Family uint8

const (
	// FamilyHMAC is the symmetric HMAC-SHA2 family (HS*).
	FamilyHMAC Family = iota + 1
	// FamilyECDSA is the elliptic curve family (ES*).
	FamilyECDSA
	// FamilyRSA is the RSASSA-PKCS1-v1_5 family (RS*).
	FamilyRSA
	// FamilyRSAPSS is the RSASSA-PSS family (PS*).
	FamilyRSAPSS
)

func (f Family) String() string {
	switch f {
	case FamilyHMAC:
		return "HMAC"
	case FamilyECDSA:
		return "ECDSA"
	case FamilyRSA:
		return "RSA"
	case FamilyRSAPSS:
		return "RSA-PSS"
	default:
		return "unknown"
	}
}

// Asymmetric reports whether the family uses public/private key pairs.
func (f Family) Asymmetric() bool {
	return f == FamilyECDSA || f == FamilyRSA || f == FamilyRSAPSS
}

// Alg represents a cryptographic algorithm for JWT signing and verification.
//
// The interface is sealed: the only implementations are the package-level
// values below, one per AlgorithmID, so the set of algorithms a verifier may
// end up using is statically known. This is what keeps algorithm confusion
// out: the header can only ever select one of these values, and only within
// the families the caller allows (see Policy).
type Alg interface {
	// ID returns the algorithm identifier written to the "alg" header field.
	ID() AlgorithmID
	// Family returns the key family of the algorithm.
	Family() Family
	// Sign creates the raw (not base64url-encoded) signature of the
	// "header.payload" signing input.
	//
	// It returns ErrInvalidKey when the key has the wrong type or size.
	Sign(key PrivateKey, signingInput []byte) ([]byte, error)
	// Verify reports whether "signature" is a valid signature of the signing
	// input. A mismatch of any sort returns false and a nil error, an error
	// (ErrInvalidKey) is only returned for unusable key material.
	Verify(key PublicKey, signingInput, signature []byte) (bool, error)

	sealed()
}

// The algorithm identifiers, the whole closed set.
const (
	HS256 AlgorithmID = "HS256"
	HS384 AlgorithmID = "HS384"
	HS512 AlgorithmID = "HS512"
	ES256 AlgorithmID = "ES256"
	ES384 AlgorithmID = "ES384"
	RS256 AlgorithmID = "RS256"
	RS384 AlgorithmID = "RS384"
	RS512 AlgorithmID = "RS512"
	PS256 AlgorithmID = "PS256"
	PS384 AlgorithmID = "PS384"
	PS512 AlgorithmID = "PS512"
)

// The providers, one per identifier. They are reachable only through the
// registry (see Resolve).
//
// **Digest**: the numeric suffix selects SHA-256, SHA-384 or SHA-512
// uniformly across families.
//
// **Key Size**: RSA keys below MinRSAKeyBits are rejected for both RS* and
// PS*; ES256 requires a P-256 key and ES384 a P-384 key.
var (
	hs256 = &algHMAC{HS256, crypto.SHA256}
	hs384 = &algHMAC{HS384, crypto.SHA384}
	hs512 = &algHMAC{HS512, crypto.SHA512}

	es256 = &algECDSA{ES256, crypto.SHA256, 32, 256}
	es384 = &algECDSA{ES384, crypto.SHA384, 48, 384}

	rs256 = &algRSA{RS256, crypto.SHA256}
	rs384 = &algRSA{RS384, crypto.SHA384}
	rs512 = &algRSA{RS512, crypto.SHA512}

	// PSS: salt length equals the digest length, MGF1 uses the same digest.
	ps256 = &algRSAPSS{PS256, &rsa.PSSOptions{SaltLength: rsa.PSSSaltLengthEqualsHash, Hash: crypto.SHA256}}
	ps384 = &algRSAPSS{PS384, &rsa.PSSOptions{SaltLength: rsa.PSSSaltLengthEqualsHash, Hash: crypto.SHA384}}
	ps512 = &algRSAPSS{PS512, &rsa.PSSOptions{SaltLength: rsa.PSSSaltLengthEqualsHash, Hash: crypto.SHA512}}
)

// Family returns the family of a supported identifier, zero otherwise.
func (id AlgorithmID) Family() Family {
	if alg, ok := registry[id]; ok {
		return alg.Family()
	}
	return 0
}

// hashSum returns the digest of "data" using "h".
func hashSum(h crypto.Hash, data []byte) []byte {
	hasher := h.New()
	// header.payload
	hasher.Write(data) // hash.Hash never returns an error.
	return hasher.Sum(nil)
}

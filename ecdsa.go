package jwt

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/rand"
	"math/big"
)

// algECDSA implements ES256 and ES384. Signatures travel as the fixed-length
// concatenation r||s (RFC 7518 section 3.4), not as ASN.1 DER.
type algECDSA struct {
	id        AlgorithmID
	hasher    crypto.Hash
	keySize   int // bytes per coordinate.
	curveBits int
}

func (a *algECDSA) ID() AlgorithmID { return a.id }
func (a *algECDSA) Family() Family  { return FamilyECDSA }
func (a *algECDSA) sealed()         {}

func (a *algECDSA) Sign(key PrivateKey, signingInput []byte) ([]byte, error) {
	privateKey, ok := key.(*ecdsa.PrivateKey)
	if !ok || privateKey == nil || !a.matchesCurve(&privateKey.PublicKey) {
		return nil, ErrInvalidKey
	}

	r, s, err := ecdsa.Sign(rand.Reader, privateKey, hashSum(a.hasher, signingInput))
	if err != nil {
		return nil, err
	}

	signature := make([]byte, 2*a.keySize)
	r.FillBytes(signature[:a.keySize])
	s.FillBytes(signature[a.keySize:])
	return signature, nil
}

func (a *algECDSA) Verify(key PublicKey, signingInput, signature []byte) (bool, error) {
	publicKey, ok := key.(*ecdsa.PublicKey)
	if !ok {
		if privateKey, ok := key.(*ecdsa.PrivateKey); ok && privateKey != nil {
			publicKey = &privateKey.PublicKey
		} else {
			return false, ErrInvalidKey
		}
	}

	if publicKey == nil || !a.matchesCurve(publicKey) {
		return false, ErrInvalidKey
	}

	if len(signature) != 2*a.keySize {
		return false, nil
	}

	r := new(big.Int).SetBytes(signature[:a.keySize])
	s := new(big.Int).SetBytes(signature[a.keySize:])
	return ecdsa.Verify(publicKey, hashSum(a.hasher, signingInput), r, s), nil
}

func (a *algECDSA) matchesCurve(publicKey *ecdsa.PublicKey) bool {
	return publicKey.Curve != nil && publicKey.Curve.Params().BitSize == a.curveBits
}

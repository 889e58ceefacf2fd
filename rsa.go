package jwt

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
)

// MinRSAKeyBits is the smallest RSA modulus accepted by the RS* and PS*
// algorithms, for signing and for verification.
const MinRSAKeyBits = 2048

// algRSA implements RS256, RS384 and RS512 using PKCS#1 v1.5 padding.
type algRSA struct {
	id     AlgorithmID
	hasher crypto.Hash
}

func (a *algRSA) ID() AlgorithmID { return a.id }
func (a *algRSA) Family() Family  { return FamilyRSA }
func (a *algRSA) sealed()         {}

// Sign creates an RSA signature using PKCS#1 v1.5 padding.
// The key must be an *rsa.PrivateKey of at least MinRSAKeyBits.
func (a *algRSA) Sign(key PrivateKey, signingInput []byte) ([]byte, error) {
	privateKey, err := rsaPrivateKey(key)
	if err != nil {
		return nil, err
	}

	return rsa.SignPKCS1v15(rand.Reader, privateKey, a.hasher, hashSum(a.hasher, signingInput))
}

// Verify accepts either an *rsa.PublicKey or an *rsa.PrivateKey
// (from which it extracts the public key).
func (a *algRSA) Verify(key PublicKey, signingInput, signature []byte) (bool, error) {
	publicKey, err := rsaPublicKey(key)
	if err != nil {
		return false, err
	}

	err = rsa.VerifyPKCS1v15(publicKey, a.hasher, hashSum(a.hasher, signingInput), signature)
	return err == nil, nil
}

func rsaPrivateKey(key PrivateKey) (*rsa.PrivateKey, error) {
	privateKey, ok := key.(*rsa.PrivateKey)
	if !ok || privateKey == nil || privateKey.N == nil || privateKey.N.BitLen() < MinRSAKeyBits {
		return nil, ErrInvalidKey
	}

	return privateKey, nil
}

func rsaPublicKey(key PublicKey) (*rsa.PublicKey, error) {
	publicKey, ok := key.(*rsa.PublicKey)
	if !ok {
		if privateKey, ok := key.(*rsa.PrivateKey); ok && privateKey != nil {
			publicKey = &privateKey.PublicKey
		} else {
			return nil, ErrInvalidKey
		}
	}

	if publicKey == nil || publicKey.N == nil || publicKey.N.BitLen() < MinRSAKeyBits {
		return nil, ErrInvalidKey
	}

	return publicKey, nil
}

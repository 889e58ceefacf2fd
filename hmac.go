package jwt

import (
	"crypto"
	"crypto/hmac"
)

type algHMAC struct {
	id     AlgorithmID
	hasher crypto.Hash
}

func (a *algHMAC) ID() AlgorithmID { return a.id }
func (a *algHMAC) Family() Family  { return FamilyHMAC }
func (a *algHMAC) sealed()         {}

// Sign computes the keyed hash. Any non-empty secret is accepted,
// short secrets are discouraged but not refused.
func (a *algHMAC) Sign(key PrivateKey, signingInput []byte) ([]byte, error) {
	secret, ok := key.([]byte)
	if !ok || len(secret) == 0 {
		return nil, ErrInvalidKey
	}

	h := hmac.New(a.hasher.New, secret)
	// header.payload
	h.Write(signingInput)
	return h.Sum(nil), nil
}

// Verify recomputes the keyed hash and compares it in constant time.
func (a *algHMAC) Verify(key PublicKey, signingInput, signature []byte) (bool, error) {
	expected, err := a.Sign(key, signingInput)
	if err != nil {
		return false, err
	}

	return hmac.Equal(expected, signature), nil
}

package jwt

import (
	"crypto/rand"
	"crypto/rsa"
)

// algRSAPSS implements PS256, PS384 and PS512 (RSASSA-PSS).
//
// The salt length equals the digest length and MGF1 uses the same digest,
// as RFC 7518 section 3.5 requires. Signatures are randomized: signing the
// same input twice gives different bytes, both of which verify.
type algRSAPSS struct {
	id   AlgorithmID
	opts *rsa.PSSOptions
}

func (a *algRSAPSS) ID() AlgorithmID { return a.id }
func (a *algRSAPSS) Family() Family  { return FamilyRSAPSS }
func (a *algRSAPSS) sealed()         {}

func (a *algRSAPSS) Sign(key PrivateKey, signingInput []byte) ([]byte, error) {
	privateKey, err := rsaPrivateKey(key)
	if err != nil {
		return nil, err
	}

	return rsa.SignPSS(rand.Reader, privateKey, a.opts.Hash, hashSum(a.opts.Hash, signingInput), a.opts)
}

func (a *algRSAPSS) Verify(key PublicKey, signingInput, signature []byte) (bool, error) {
	publicKey, err := rsaPublicKey(key)
	if err != nil {
		return false, err
	}

	err = rsa.VerifyPSS(publicKey, a.opts.Hash, hashSum(a.opts.Hash, signingInput), signature, a.opts)
	return err == nil, nil
}

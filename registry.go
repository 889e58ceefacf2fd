package jwt

import (
	"crypto/ecdsa"
	"crypto/rsa"
	"fmt"
	"slices"
)

// registry is the one table of trusted algorithms. It is built from a literal
// at package initialization and never written afterwards: there is no
// registration API, so the set cannot change once the process runs.
var registry = map[AlgorithmID]Alg{
	HS256: hs256,
	HS384: hs384,
	HS512: hs512,
	ES256: es256,
	ES384: es384,
	RS256: rs256,
	RS384: rs384,
	RS512: rs512,
	PS256: ps256,
	PS384: ps384,
	PS512: ps512,
}

// Algorithms returns the supported algorithm identifiers in a stable order.
func Algorithms() []AlgorithmID {
	ids := make([]AlgorithmID, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Resolve returns the algorithm implementation by its identifier.
//
// The lookup is exact and case-sensitive. An unknown identifier returns an
// error wrapping ErrUnsupportedAlgorithm, never a default algorithm.
func Resolve(id AlgorithmID) (Alg, error) {
	alg, ok := registry[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, string(id))
	}

	return alg, nil
}

// resolveAllowed resolves the header algorithm and checks it against the
// caller's pin. The pin comes, in order of precedence, from the explicit
// algorithm list, the explicit family list or the verification key type.
// A key of an unknown type pins nothing, the provider then rejects it with
// ErrInvalidKey.
func resolveAllowed(id AlgorithmID, key PublicKey, algorithms []AlgorithmID, families []Family) (Alg, error) {
	alg, err := Resolve(id)
	if err != nil {
		return nil, err
	}

	if len(algorithms) > 0 {
		if !slices.Contains(algorithms, id) {
			return nil, fmt.Errorf("%w: %q is not allowed", ErrUnsupportedAlgorithm, string(id))
		}
		return alg, nil
	}

	if len(families) == 0 {
		families = familiesOf(key)
	}

	if len(families) > 0 && !slices.Contains(families, alg.Family()) {
		return nil, fmt.Errorf("%w: %q is outside the %v families", ErrUnsupportedAlgorithm, string(id), families)
	}

	return alg, nil
}

// familiesOf returns the families a verification key can legitimately serve.
func familiesOf(key PublicKey) []Family {
	switch key.(type) {
	case []byte:
		return []Family{FamilyHMAC}
	case *ecdsa.PublicKey, *ecdsa.PrivateKey:
		return []Family{FamilyECDSA}
	case *rsa.PublicKey, *rsa.PrivateKey:
		return []Family{FamilyRSA, FamilyRSAPSS}
	default:
		return nil
	}
}

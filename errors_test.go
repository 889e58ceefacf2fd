package jwt

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		err  error
		kind ErrorKind
		name string
	}{
		{nil, KindNone, "none"},
		{ErrMalformedToken, KindMalformedToken, "malformed_token"},
		{fmt.Errorf("%w: bad", ErrUnsupportedAlgorithm), KindUnsupportedAlgorithm, "unsupported_algorithm"},
		{ErrInvalidKey, KindInvalidKey, "invalid_key"},
		{ErrInvalidSignature, KindInvalidSignature, "invalid_signature"},
		{newClaimError(ClaimExpiry, ErrMissingClaim, "", ""), KindMissingClaim, "missing_claim"},
		{ErrInvalidClaims, KindInvalidClaims, "invalid_claims"},
		{newClaimError(ClaimExpiry, ErrExpired, "", ""), KindExpired, "expired"},
		{newClaimError(ClaimNotBefore, ErrNotYetValid, "", ""), KindNotYetValid, "not_yet_valid"},
		{fmt.Errorf("token 3: %w", newClaimError(ClaimAudience, ErrClaimMismatch, "a", "b")), KindClaimMismatch, "claim_mismatch"},
		{io.EOF, KindUnknown, "unknown"},
	}

	for _, tt := range tests {
		kind := KindOf(tt.err)
		assert.Equal(t, tt.kind, kind, "%v", tt.err)
		assert.Equal(t, tt.name, kind.String())
	}

	assert.Equal(t, "unknown", ErrorKind(200).String())
}

func TestClaimError(t *testing.T) {
	err := error(newClaimError(ClaimAudience, ErrClaimMismatch, "api", "web"))
	assert.Equal(t, `jwt: claim mismatch: aud: got "web", want "api"`, err.Error())
	assert.True(t, errors.Is(err, ErrClaimMismatch))
	assert.False(t, errors.Is(err, ErrExpired))

	var claimErr *ClaimError
	assert.True(t, errors.As(fmt.Errorf("wrapped: %w", err), &claimErr))
	assert.Equal(t, ClaimAudience, claimErr.Claim)
	assert.Equal(t, "api", claimErr.Want)
	assert.Equal(t, "web", claimErr.Got)

	assert.Equal(t, "jwt: missing required claim: iat", newClaimError(ClaimIssuedAt, ErrMissingClaim, "", "").Error())
}

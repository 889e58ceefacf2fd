package main

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/kataras/jwtengine"
	"github.com/kataras/jwtengine/bridge"
)

type verifyOutput struct {
	Valid     bool   `json:"valid" yaml:"valid" text:"valid"`
	Algorithm string `json:"alg,omitempty" yaml:"alg,omitempty" text:"alg"`
	Subject   string `json:"sub,omitempty" yaml:"sub,omitempty" text:"sub"`
	Expires   string `json:"expires,omitempty" yaml:"expires,omitempty" text:"expires"`
	Reason    string `json:"reason,omitempty" yaml:"reason,omitempty" text:"reason"`
	Claim     string `json:"claim,omitempty" yaml:"claim,omitempty" text:"claim"`
}

func NewVerifyCommand(globalOpts *GlobalFlags) *cobra.Command {
	var (
		keys            keyFlags
		algorithms      []string
		issuer          string
		subject         string
		audience        string
		leeway          time.Duration
		requireIssuedAt bool
		required        []string
		now             int64
		expOnly         bool
	)
	command := &cobra.Command{
		Use:   "verify [token|-]",
		Short: "Verify a token against a policy",
		Long: `Verifies the token signature and validates its claims. The algorithm
is pinned to --alg when given, otherwise to the family of the key.

The result is printed in the output format; the exit status is 0 for a
valid token, 2 for a bad token, 3 for failed claims and 4 for a bad key.

With --exp-only only the signature and the expiration are checked.`,
		Example: `  jwtctl verify --secret k --iss auth.example.com --leeway 30s "$TOKEN"
  echo "$TOKEN" | jwtctl verify --key-file public.pem --alg RS256 --aud api`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := readToken(args, cmd.InOrStdin())
			if err != nil {
				return err
			}

			key, err := keys.verificationKey()
			if err != nil {
				return err
			}

			clock := jwt.Clock
			if now > 0 {
				clock = func() time.Time { return time.Unix(now, 0) }
			}

			if expOnly {
				svc, err := newService(cmd, bridge.WithLeeway(leeway), bridge.WithClock(clock))
				if err != nil {
					return err
				}

				ok, err := svc.Verify(cmd.Context(), token, key)
				if err == nil && !ok {
					err = jwt.ErrExpired
				}
				return report(cmd, globalOpts, token, nil, err)
			}

			policy := jwt.Policy{
				Issuer:          issuer,
				Subject:         subject,
				Audience:        audience,
				Leeway:          leeway,
				RequireIssuedAt: requireIssuedAt,
				Required:        required,
				Now:             clock,
			}
			for _, alg := range algorithms {
				policy.Algorithms = append(policy.Algorithms, jwt.AlgorithmID(alg))
			}

			t, err := jwt.Check(token, key, policy)
			return report(cmd, globalOpts, token, t, err)
		},
	}
	keys.add(command)
	command.Flags().StringSliceVarP(&algorithms, "alg", "a", nil, "Accepted algorithms, repeatable")
	command.Flags().StringVar(&issuer, "iss", "", "Expected issuer")
	command.Flags().StringVar(&subject, "sub", "", "Expected subject")
	command.Flags().StringVar(&audience, "aud", "", "Expected audience")
	command.Flags().DurationVarP(&leeway, "leeway", "l", 0, "Tolerated clock skew")
	command.Flags().BoolVar(&requireIssuedAt, "require-iat", false, "Require the issued at claim")
	command.Flags().StringSliceVar(&required, "require", nil, "Further required claims, repeatable")
	command.Flags().Int64Var(&now, "now", 0, "Validate at this time, seconds since the Unix epoch")
	command.Flags().BoolVar(&expOnly, "exp-only", false, "Check only the signature and the expiration")
	command.MarkFlagsMutuallyExclusive("exp-only", "iss")
	command.MarkFlagsMutuallyExclusive("exp-only", "sub")
	command.MarkFlagsMutuallyExclusive("exp-only", "aud")
	return command
}

// report prints the verification result and returns the failure, if any,
// so the process exits with the matching status.
// Without a decoded token only the header algorithm is known.
func report(cmd *cobra.Command, globalOpts *GlobalFlags, raw string, t *jwt.Token, err error) error {
	out := verifyOutput{Valid: err == nil}
	if t != nil {
		out.Algorithm = string(t.Algorithm())
		out.Subject = t.Claims.Subject
		out.Expires = t.Claims.ExpiresAt().UTC().Format(time.RFC3339)
	} else if h, herr := jwt.ParseUnverified(raw); herr == nil && h.Algorithm.Family() != 0 {
		out.Algorithm = string(h.Algorithm)
	}
	if err != nil {
		out.Reason = jwt.KindOf(err).String()
		var claimErr *jwt.ClaimError
		if errors.As(err, &claimErr) {
			out.Claim = claimErr.Claim
		}
	}

	if werr := writeOutput(cmd, out, globalOpts.output); werr != nil {
		return werr
	}
	return err
}

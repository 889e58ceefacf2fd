package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/kataras/jwtengine"
	"github.com/kataras/jwtengine/bridge"
)

func NewEncodeCommand(globalOpts *GlobalFlags) *cobra.Command {
	var (
		keys      keyFlags
		algorithm string
		subject   string
		issuer    string
		audience  []string
		expiresIn time.Duration
		expiresAt int64
		notBefore int64
		issuedAt  bool
		tokenID   bool
		keyID     string
		claims    []string
	)
	command := &cobra.Command{
		Use:   "encode",
		Short: "Sign a new token and print it",
		Long: `Signs a new token with the given claims and prints its compact form.

An expiration is required, either relative (--expires-in) or absolute
(--exp, seconds since the Unix epoch). Custom claims are given as
--claim name=value; a value which is valid JSON keeps its JSON type,
anything else is a string.`,
		Example: `  jwtctl encode --secret k --sub alice --expires-in 15m --claim role=admin --claim level=3
  jwtctl encode --alg RS256 --key-file private.pem --exp 1893456000 --jti`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := keys.signingKey()
			if err != nil {
				return err
			}

			extra, err := parseClaimFlags(claims)
			if err != nil {
				return err
			}

			now := jwt.Clock()
			in := bridge.ClaimsInput{
				Key:       key,
				Algorithm: jwt.AlgorithmID(algorithm),
				Exp:       expiresAt,
				Aud:       audience,
				Iss:       issuer,
				Nbf:       notBefore,
				Sub:       subject,
				KeyID:     keyID,
				Extra:     extra,
			}
			if expiresIn > 0 {
				in.Exp = now.Add(expiresIn).Unix()
			}
			if issuedAt {
				in.Iat = now.Unix()
			}
			if tokenID {
				in.Jti = uuid.NewString()
			}

			svc, err := newService(cmd)
			if err != nil {
				return err
			}

			token, err := svc.Encode(cmd.Context(), in)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}
	keys.add(command)
	command.Flags().StringVarP(&algorithm, "alg", "a", string(bridge.DefaultAlgorithm), fmt.Sprintf("Signing algorithm, one of: %s", algorithmList()))
	command.Flags().StringVar(&subject, "sub", "", "Subject claim")
	command.Flags().StringVar(&issuer, "iss", "", "Issuer claim")
	command.Flags().StringSliceVar(&audience, "aud", nil, "Audience claim, repeatable")
	command.Flags().DurationVarP(&expiresIn, "expires-in", "e", 0, "Expiration relative to now")
	command.Flags().Int64Var(&expiresAt, "exp", 0, "Expiration as seconds since the Unix epoch")
	command.Flags().Int64Var(&notBefore, "nbf", 0, "Not before as seconds since the Unix epoch")
	command.Flags().BoolVar(&issuedAt, "iat", false, "Set the issued at claim to now")
	command.Flags().BoolVar(&tokenID, "jti", false, "Set a random token ID")
	command.Flags().StringVar(&keyID, "kid", "", "Key ID header")
	command.Flags().StringArrayVarP(&claims, "claim", "c", nil, "Custom claim as name=value, repeatable")
	command.MarkFlagsMutuallyExclusive("expires-in", "exp")
	command.MarkFlagsOneRequired("expires-in", "exp")
	return command
}

// parseClaimFlags parses name=value pairs into custom claims.
func parseClaimFlags(pairs []string) (*jwt.Map, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	obj := make([]byte, 0, 64)
	obj = append(obj, '{')
	for i, pair := range pairs {
		name, raw, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid claim %q, expected name=value", pair)
		}
		if jwt.IsRegisteredClaim(name) {
			return nil, fmt.Errorf("claim %q has its own flag", name)
		}

		if i > 0 {
			obj = append(obj, ',')
		}
		nameJSON, _ := json.Marshal(name)
		obj = append(obj, nameJSON...)
		obj = append(obj, ':')
		if !json.Valid([]byte(raw)) {
			quoted, _ := json.Marshal(raw)
			raw = string(quoted)
		}
		obj = append(obj, raw...)
	}
	obj = append(obj, '}')

	m := jwt.NewMap()
	if err := m.UnmarshalJSON(obj); err != nil {
		return nil, fmt.Errorf("invalid claims: %w", err)
	}
	return m, nil
}

func algorithmList() string {
	ids := jwt.Algorithms()
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = string(id)
	}
	return strings.Join(names, ", ")
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/kataras/jwtengine"
)

type inspectOutput struct {
	Algorithm string         `json:"alg" yaml:"alg" text:"alg"`
	Family    string         `json:"family" yaml:"family" text:"family"`
	Type      string         `json:"typ,omitempty" yaml:"typ,omitempty" text:"typ"`
	KeyID     string         `json:"kid,omitempty" yaml:"kid,omitempty" text:"kid"`
	Extra     map[string]any `json:"extra,omitempty" yaml:"extra,omitempty" text:"extra"`
	Supported bool           `json:"supported" yaml:"supported" text:"supported"`
}

func NewInspectCommand(globalOpts *GlobalFlags) *cobra.Command {
	command := &cobra.Command{
		Use:   "inspect [token|-]",
		Short: "Print the header of a token WITHOUT verifying it",
		Long: `Prints the header of a token without verifying anything. Use it to find
out which key a token expects; never trust its output for access decisions.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := readToken(args, cmd.InOrStdin())
			if err != nil {
				return err
			}

			h, err := jwt.ParseUnverified(token)
			if err != nil {
				return err
			}

			family := h.Algorithm.Family()
			out := inspectOutput{
				Algorithm: string(h.Algorithm),
				Family:    family.String(),
				Type:      h.Type,
				KeyID:     h.KeyID,
				Supported: family != 0,
			}
			if h.Extra.Len() > 0 {
				out.Extra = h.Extra.Interface()
			}

			return writeOutput(cmd, out, globalOpts.output)
		},
	}
	return command
}

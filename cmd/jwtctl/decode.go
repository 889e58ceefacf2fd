package main

import (
	"github.com/spf13/cobra"
)

func NewDecodeCommand(globalOpts *GlobalFlags) *cobra.Command {
	var (
		keys keyFlags
	)
	command := &cobra.Command{
		Use:   "decode [token|-]",
		Short: "Verify a token and print its claims",
		Long: `Verifies the token signature and its expiration, then prints the
header algorithm and all claims. Absent optional claims are printed as null.

The token is read from standard input when it is omitted or "-".`,
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

			svc, err := newService(cmd)
			if err != nil {
				return err
			}

			data, err := svc.Decode(cmd.Context(), token, key)
			if err != nil {
				return err
			}

			return writeOutput(cmd, data, globalOpts.output)
		},
	}
	keys.add(command)
	return command
}

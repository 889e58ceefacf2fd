package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/kataras/jwtengine"
	"github.com/kataras/jwtengine/internal/logging"
)

// Environment variables read when the matching flag is not given.
// A .env file in the working directory (or --env-file) is loaded first,
// it never overrides variables already set.
const (
	EnvSecret    = "JWTCTL_SECRET"
	EnvKeyFile   = "JWTCTL_KEY_FILE"
	EnvLogLevel  = "JWTCTL_LOG_LEVEL"
	EnvLogFormat = "JWTCTL_LOG_FORMAT"
)

var cliDescription string = `
A CLI to issue, decode and verify JSON Web Tokens.

Keys are given with --secret (HMAC, raw value or path to a file holding it)
or --key-file (PEM encoded RSA or ECDSA key). Both fall back to the
JWTCTL_SECRET and JWTCTL_KEY_FILE environment variables.
`

// GlobalFlags are the flags shared by every command.
type GlobalFlags struct {
	envFile   string
	logLevel  string
	logFormat string
	output    string
}

func NewRootCommand() *cobra.Command {
	globalOpts := &GlobalFlags{}
	command := &cobra.Command{
		Use:           "jwtctl",
		Short:         "Issue, decode and verify JSON Web Tokens",
		Long:          cliDescription,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return globalOpts.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	command.AddCommand(NewEncodeCommand(globalOpts))
	command.AddCommand(NewDecodeCommand(globalOpts))
	command.AddCommand(NewVerifyCommand(globalOpts))
	command.AddCommand(NewInspectCommand(globalOpts))
	command.AddCommand(NewVersionCommand(globalOpts))
	addGlobalFlags(command, globalOpts)
	return command
}

func addGlobalFlags(command *cobra.Command, opts *GlobalFlags) {
	command.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "Path of an optional dotenv file to load")
	command.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", fmt.Sprintf("Log level, one of: %s (env %s)", logging.AvailableLogLevels(), EnvLogLevel))
	command.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", fmt.Sprintf("Log format, text or json (env %s)", EnvLogFormat))
	command.PersistentFlags().StringVarP(&opts.output, "output", "o", "json", "Output format, one of: json, yaml, text")
}

// setup loads the dotenv file and configures logging.
func (o *GlobalFlags) setup(cmd *cobra.Command) error {
	if o.envFile != "" {
		if err := godotenv.Load(o.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("could not load %s: %w", o.envFile, err)
		}
	}

	level := flagOrEnv(o.logLevel, EnvLogLevel)
	if level == "" {
		level = string(logging.LogLevelWarn)
	}
	format := flagOrEnv(o.logFormat, EnvLogFormat)

	return logging.SetupLogging(logging.LogLevel(level), logging.LogFormat(format), cmd.ErrOrStderr())
}

func flagOrEnv(flag, env string) string {
	if flag != "" {
		return flag
	}
	return os.Getenv(env)
}

// Exit codes, so scripts can tell a bad token from a bad invocation.
const (
	exitUsage  = 1
	exitToken  = 2
	exitClaims = 3
	exitKey    = 4
)

func exitCode(err error) int {
	switch jwt.KindOf(err) {
	case jwt.KindMalformedToken, jwt.KindUnsupportedAlgorithm, jwt.KindInvalidSignature:
		return exitToken
	case jwt.KindExpired, jwt.KindNotYetValid, jwt.KindMissingClaim, jwt.KindClaimMismatch:
		return exitClaims
	case jwt.KindInvalidKey:
		return exitKey
	default:
		return exitUsage
	}
}

func main() {
	cmd := NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "[FATAL]: %v\n", err)
		os.Exit(exitCode(err))
	}
}

package main

import (
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "devel"

type versionInfo struct {
	Name      string `json:"name" yaml:"name" text:"name"`
	Version   string `json:"version" yaml:"version" text:"version"`
	GoVersion string `json:"goVersion" yaml:"goVersion" text:"go"`
	Platform  string `json:"platform" yaml:"platform" text:"platform"`
}

func NewVersionCommand(globalOpts *GlobalFlags) *cobra.Command {
	command := &cobra.Command{
		Use:   "version",
		Short: "Display the version of jwtctl",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v := versionInfo{
				Name:      "jwtctl",
				Version:   version,
				GoVersion: runtime.Version(),
				Platform:  runtime.GOOS + "/" + runtime.GOARCH,
			}
			if v.Version == "devel" {
				if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
					v.Version = info.Main.Version
				}
			}
			return writeOutput(cmd, v, globalOpts.output)
		},
	}
	return command
}

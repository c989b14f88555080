package main

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	logFormatFlag = "log-format"
	logLevelFlag  = "log-level"
)

// newRootCommand reads flags from the command line or from environment variables prefixed
// with CAND, in that order.
func newRootCommand() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("CAND")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:          "cand",
		Short:        "Print candidate sequences",
		Long:         "Print candidate sequences produced from a word list or a number range, one candidate per line.",
		SilenceUsage: true,
	}

	flags := cmd.PersistentFlags()
	flags.String(logFormatFlag, "text", "log format: text or json")
	flags.String(logLevelFlag, "info", "log level: none, debug, info, warn or error")
	mustBindPFlag(v, logFormatFlag, flags.Lookup(logFormatFlag))
	mustBindPFlag(v, logLevelFlag, flags.Lookup(logLevelFlag))

	cmd.AddCommand(newLinesCommand(v), newRangeCommand(v))

	return cmd
}

func mustBindPFlag(v *viper.Viper, key string, flag *pflag.Flag) {
	if err := v.BindPFlag(key, flag); err != nil {
		panic("failed to bind pflag: " + err.Error())
	}
}

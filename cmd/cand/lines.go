package main

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/teenjuna/cand"
	"github.com/teenjuna/cand/line"
)

const estimateAboveFlag = "estimate-above"

func newLinesCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lines <path>",
		Short: "Print every line of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(v)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			producer, err := line.New(args[0], func(c *line.Config) {
				c.Logger(logger)
				c.EstimateAbove(v.GetInt64(estimateAboveFlag))
			})
			if err != nil {
				return err
			}
			defer func() {
				if err := producer.Close(); err != nil {
					logger.Debug("close producer", zap.Error(err))
				}
			}()

			out := bufio.NewWriter(cmd.OutOrStdout())
			produced, err := write(out, producer)
			if err != nil {
				return err
			}

			logger.Info(
				"done",
				zap.Int("produced", produced),
				zap.Int("size", producer.Size()),
				zap.Bool("estimated", producer.Estimated()),
			)

			return nil
		},
	}

	flags := cmd.Flags()
	flags.Int64(estimateAboveFlag, 0, "estimate the line count of files larger than this many bytes (0 counts exactly)")
	mustBindPFlag(v, estimateAboveFlag, flags.Lookup(estimateAboveFlag))

	return cmd
}

// write prints every candidate on its own line and flushes the writer.
func write(out *bufio.Writer, p cand.Producer) (int, error) {
	var produced int
	for c := range cand.All(p) {
		produced++
		if _, err := out.Write(c); err != nil {
			return produced, fmt.Errorf("write candidate: %w", err)
		}
		if len(c) == 0 || c[len(c)-1] != '\n' {
			if err := out.WriteByte('\n'); err != nil {
				return produced, fmt.Errorf("write candidate: %w", err)
			}
		}
	}

	if err := out.Flush(); err != nil {
		return produced, fmt.Errorf("flush: %w", err)
	}

	return produced, nil
}

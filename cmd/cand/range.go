package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/teenjuna/cand/numrange"
)

const (
	paddingFlag = "padding"
	workersFlag = "workers"
)

func newRangeCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "range <lower> <upper>",
		Short: "Print every number of [lower, upper) padded with zeros",
		Long: "Print every number of [lower, upper) padded with zeros.\n" +
			"Without --padding the numbers are padded to the width of upper-1.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lower, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("parse lower bound: %w", err)
			}
			upper, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("parse upper bound: %w", err)
			}

			padding := v.GetInt(paddingFlag)
			if padding < 0 && upper > 0 {
				padding = numrange.Width(upper - 1)
			}
			padding = max(padding, 0)

			workers := v.GetInt(workersFlag)
			if workers < 1 {
				return fmt.Errorf("workers can't be < 1")
			}

			logger, err := newLogger(v)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			producer, err := numrange.New(padding, lower, upper, func(c *numrange.Config) {
				c.Logger(logger)
			})
			if err != nil {
				return err
			}

			out := bufio.NewWriter(cmd.OutOrStdout())
			produced, err := writeParts(cmd.Context(), out, producer.Split(workers))
			if err != nil {
				return err
			}

			logger.Info("done", zap.Int("produced", produced), zap.Int("size", producer.Size()))

			return nil
		},
	}

	flags := cmd.Flags()
	flags.Int(paddingFlag, -1, "minimum width of every number (defaults to the width of upper-1)")
	flags.Int(workersFlag, 1, "number of workers formatting parts of the range")
	mustBindPFlag(v, paddingFlag, flags.Lookup(paddingFlag))
	mustBindPFlag(v, workersFlag, flags.Lookup(workersFlag))

	return cmd
}

// writeParts drains every part on its own goroutine and streams the output in order. A part
// blocks on its pipe until every part before it has been written, so at most one buffer per part
// is held in memory.
func writeParts(ctx context.Context, out *bufio.Writer, parts []*numrange.Producer) (int, error) {
	if len(parts) == 1 {
		return write(out, parts[0])
	}

	var (
		readers = make([]*io.PipeReader, len(parts))
		counts  = make([]int, len(parts))
		group   errgroup.Group
	)
	for i, part := range parts {
		r, w := io.Pipe()
		readers[i] = r
		group.Go(func() error {
			n, err := write(bufio.NewWriter(w), part)
			counts[i] = n
			w.CloseWithError(err)
			return err
		})
	}

	abort := func(i int, err error) error {
		for _, r := range readers[i:] {
			r.CloseWithError(err)
		}
		_ = group.Wait()
		return err
	}

	for i, r := range readers {
		if err := ctx.Err(); err != nil {
			return 0, abort(i, err)
		}
		if _, err := io.Copy(out, r); err != nil {
			return 0, abort(i, fmt.Errorf("write part: %w", err))
		}
		r.Close()
	}
	if err := group.Wait(); err != nil {
		return 0, err
	}

	var produced int
	for _, n := range counts {
		produced += n
	}

	if err := out.Flush(); err != nil {
		return produced, fmt.Errorf("flush: %w", err)
	}

	return produced, nil
}

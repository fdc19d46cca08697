package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/local/readingplan/internal/store"
)

type statusReader interface {
	Get(ctx context.Context, runID string) (store.Status, bool, error)
	Close() error
}

// openStatus is replaced in tests.
var openStatus = func(ctx context.Context, redisURL string, ttl time.Duration) (statusReader, error) {
	rs, err := store.NewRedisStatus(ctx, redisURL, ttl)
	if err != nil {
		return nil, err
	}
	return rs, nil
}

func newStatusCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "status <run-id>",
		Short: "Show the recorded status of a generation run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}
			if cfg.Status.RedisURL == "" {
				return errors.New("REDIS_URL is not set; run status is not recorded")
			}
			rs, err := openStatus(cmd.Context(), cfg.Status.RedisURL, cfg.Status.TTL)
			if err != nil {
				return fmt.Errorf("open status store: %w", err)
			}
			defer rs.Close()

			runID := args[0]
			st, ok, err := rs.Get(cmd.Context(), runID)
			if err != nil {
				return fmt.Errorf("read status: %w", err)
			}
			if !ok {
				return fmt.Errorf("no status recorded for run %s", runID)
			}
			printStatus(cmd.OutOrStdout(), runID, st)
			return nil
		},
	}
}

func printStatus(w io.Writer, runID string, st store.Status) {
	fmt.Fprintf(w, "run:\t%s\n", runID)
	fmt.Fprintf(w, "state:\t%s\n", st.State)
	if st.Message != "" {
		fmt.Fprintf(w, "message:\t%s\n", st.Message)
	}
	fmt.Fprintf(w, "output:\t%s\n", st.Output)
	if st.State == store.StateSuccess {
		fmt.Fprintf(w, "days:\t%d\n", st.Days)
		fmt.Fprintf(w, "pages:\t%d\n", st.Pages)
	}
	if st.Start != nil {
		fmt.Fprintf(w, "started:\t%s\n", st.Start.Format(time.RFC3339))
	}
	if st.End != nil {
		fmt.Fprintf(w, "finished:\t%s\n", st.End.Format(time.RFC3339))
		if st.Start != nil {
			fmt.Fprintf(w, "duration:\t%s\n", st.End.Sub(*st.Start).Round(time.Millisecond))
		}
	}
}

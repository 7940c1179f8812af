package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/fastygo/homepage/pkg/datetools"
	"github.com/fastygo/homepage/pkg/todotxt"
)

func whenCmd() *cobra.Command {
	var todayFlag string

	cmd := &cobra.Command{
		Use:   "when <YYYY-MM-DD>",
		Short: "Classify a date relative to today and describe it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := todotxt.ParseDate(args[0])
			if err != nil {
				return err
			}
			today := datetools.TodayOf(time.Now())
			if todayFlag != "" {
				if today, err = todotxt.ParseDate(todayFlag); err != nil {
					return fmt.Errorf("--today: %w", err)
				}
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n",
				datetools.Classify(today, date), datetools.Humanize(today, date))
			return err
		},
	}

	cmd.Flags().StringVar(&todayFlag, "today", "", "Reference day (defaults to the local date)")

	return cmd
}

package main

import (
	"fmt"

	"github.com/romashorodok/content-site/pkg/redirects"
	"github.com/spf13/cobra"
)

func newRedirectsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "redirects",
		Short: "Validate and query legacy redirect tables",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "lint <file>",
			Short: "Parse a redirect table and report the rule count",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				table, err := redirects.Load(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d rules ok\n", args[0], table.Len())
				return nil
			},
		},
		&cobra.Command{
			Use:   "resolve <file> <path>",
			Short: "Show where a path is redirected",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				table, err := redirects.Load(args[0])
				if err != nil {
					return err
				}
				target, status, ok := table.Resolve(args[1])
				if !ok {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: no redirect\n", args[1])
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s (%d)\n", args[1], target, status)
				return nil
			},
		},
	)
	return cmd
}

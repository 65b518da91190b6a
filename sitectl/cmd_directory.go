package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/romashorodok/content-site/pkg/cmsclient"
	"github.com/romashorodok/content-site/pkg/searchutils"
	"github.com/spf13/cobra"
)

var directoryEndpoints = map[string]string{
	"chains":    cmsclient.ENDPOINT_SUPPORTED_CHAINS,
	"wallets":   cmsclient.ENDPOINT_SUPPORTED_WALLETS,
	"protocols": cmsclient.ENDPOINT_SUPPORTED_PROTOCOLS,
	"discover":  cmsclient.ENDPOINT_DISCOVERS,
}

// directoryItem lets the site search run over raw records.
type directoryItem struct {
	cmsclient.DirectoryRecord
}

func (i directoryItem) SearchTitle() string { return i.DisplayName() }

func (i directoryItem) SearchTags() []string {
	tags := make([]string, 0, len(i.Tags))
	for _, tag := range i.Tags {
		tags = append(tags, tag.Name)
	}
	return tags
}

func (i directoryItem) SearchCategory() string { return i.Category }

func newDirectoryCommand(opts *options) *cobra.Command {
	var query, category string

	cmd := &cobra.Command{
		Use:       "directory <chains|wallets|protocols|discover>",
		Short:     "Search a directory the way the site does",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"chains", "wallets", "protocols", "discover"},
		RunE: func(cmd *cobra.Command, args []string) error {
			endpoint, ok := directoryEndpoints[args[0]]
			if !ok {
				return fmt.Errorf("unknown directory %q", args[0])
			}
			client, err := opts.client()
			if err != nil {
				return err
			}

			records, err := client.Directory(cmd.Context(), endpoint, cmsclient.NewQuery().Populate().Sort(cmsclient.SORT_ORDER_ASC))
			if err != nil {
				return err
			}
			items := make([]directoryItem, 0, len(records))
			for _, record := range records {
				items = append(items, directoryItem{record})
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SLUG\tTITLE\tCATEGORY\tTAGS")
			matches := searchutils.Filter(items, query, category)
			for _, item := range matches {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", item.Slug, item.DisplayName(), item.Category, strings.Join(item.SearchTags(), ", "))
			}
			fmt.Fprintf(w, "%d of %d entries\n", len(matches), len(items))
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&query, "q", "q", "", "search text matched against titles and tags")
	cmd.Flags().StringVar(&category, "category", searchutils.ALL_CATEGORIES, "category filter")
	return cmd
}

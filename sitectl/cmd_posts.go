package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/romashorodok/content-site/pkg/cmsclient"
	"github.com/romashorodok/content-site/pkg/dateutils"
	"github.com/spf13/cobra"
)

func postsEndpoint(contentType string) (string, error) {
	switch contentType {
	case "blog":
		return cmsclient.ENDPOINT_POSTS, nil
	case "newsroom":
		return cmsclient.ENDPOINT_NEWSROOMS, nil
	}
	return "", fmt.Errorf("unknown content type %q, expected blog or newsroom", contentType)
}

func newPostsCommand(opts *options) *cobra.Command {
	var (
		contentType string
		category    string
		page        int
		pageSize    int
	)

	cmd := &cobra.Command{
		Use:   "posts",
		Short: "List a page of blog or newsroom posts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			endpoint, err := postsEndpoint(contentType)
			if err != nil {
				return err
			}
			client, err := opts.client()
			if err != nil {
				return err
			}

			query := cmsclient.NewQuery().
				Sort(cmsclient.SORT_PUBLISHED_DESC).
				Page(page, pageSize)
			if category != "" {
				query.Filter("category.slug", cmsclient.FILTER_EQ, category)
			}

			envelope, err := client.Posts(cmd.Context(), endpoint, query)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SLUG\tTITLE\tPUBLISHED")
			for _, post := range envelope.Data {
				fmt.Fprintf(w, "%s\t%s\t%s\n", post.Slug, post.Title, dateutils.PretifyString(post.PublishedAt))
			}
			pagination := envelope.Meta.Pagination
			fmt.Fprintf(w, "page %d of %d, %d total\n", pagination.Page, pagination.PageCount, pagination.Total)
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&contentType, "type", "t", "blog", "content type: blog or newsroom")
	cmd.Flags().StringVar(&category, "category", "", "category slug")
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 9, "page size")
	return cmd
}

func newGetCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "get <blog|newsroom> <slug>",
		Short: "Print one post record as JSON",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			endpoint, err := postsEndpoint(args[0])
			if err != nil {
				return err
			}
			client, err := opts.client()
			if err != nil {
				return err
			}

			query := cmsclient.NewQuery().
				Populate().
				Filter("slug", cmsclient.FILTER_EQ, args[1]).
				Page(1, 1)
			envelope, err := client.Posts(cmd.Context(), endpoint, query)
			if err != nil {
				return err
			}
			if len(envelope.Data) == 0 {
				return fmt.Errorf("%s %q not found", args[0], args[1])
			}

			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			return encoder.Encode(envelope.Data[0])
		},
	}
}

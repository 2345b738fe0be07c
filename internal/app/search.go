package app

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/retroshelf/internal/catalog"
)

func newSearchCmd() *cobra.Command {
	var (
		typeFilter string
		tagFilter  string
		yearFilter string
		jsonOut    bool
	)

	cmd := &cobra.Command{
		Use:     "search [query]",
		Aliases: []string{"ls", "list"},
		Short:   "Search the catalog",
		Long: `Search entries by substring across name, filename, publisher, notes and
tags. With no query, every entry matching the filters is listed.

Examples:
  retroshelf search ninja
  retroshelf search --type disk --year 1987
  retroshelf search turrican --tag favorite --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) == 1 {
				query = args[0]
			}

			results := store.Search(query, catalog.Filter{
				Type: typeFilter,
				Tag:  tagFilter,
				Year: yearFilter,
			})

			if jsonOut {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(results)
			}

			if len(results) == 0 {
				fmt.Println("No matches.")
				return nil
			}
			for _, e := range results {
				line := fmt.Sprintf("  %-36s %-8s %-6s", e.DisplayName, e.Kind, e.Year)
				if len(e.Tags) > 0 {
					line += " " + styleTag.Render(strings.Join(e.Tags, ","))
				}
				fmt.Println(line)
				fmt.Println("    " + styleDim.Render(shortID(e.ID)+"  "+e.Filename))
			}
			fmt.Printf("\n%d entries\n", len(results))
			return nil
		},
	}

	cmd.Flags().StringVar(&typeFilter, "type", "all", "Filter by kind (disk, tape, cart) or extension (.d64)")
	cmd.Flags().StringVar(&tagFilter, "tag", "all", "Filter by tag")
	cmd.Flags().StringVar(&yearFilter, "year", "", "Filter by release year")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

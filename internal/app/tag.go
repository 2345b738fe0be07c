package app

import (
	"fmt"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newTagCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tag",
		Short: "Manage entry tags",
	}

	cmd.AddCommand(
		newTagAddCmd(),
		newTagRmCmd(),
		newTagListCmd(),
	)

	// `retroshelf tag` with no subcommand defaults to list.
	cmd.RunE = newTagListCmd().RunE
	return cmd
}

func newTagAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <id|name> <tag>...",
		Short: "Add one or more tags to an entry",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := resolveEntry(args[0])
			if err != nil {
				return err
			}
			for _, tag := range args[1:] {
				if e, err = store.AddTag(e.ID, tag); err != nil {
					return err
				}
			}
			ok("%s: %v", e.DisplayName, e.Tags)
			return nil
		},
	}
}

func newTagRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id|name> <tag>...",
		Short: "Remove tags from an entry",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := resolveEntry(args[0])
			if err != nil {
				return err
			}
			for _, tag := range args[1:] {
				if e, err = store.RemoveTag(e.ID, tag); err != nil {
					return err
				}
			}
			ok("%s: %v", e.DisplayName, e.Tags)
			return nil
		},
	}
}

func newTagListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all tags with entry counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			counts := map[string]int{}
			for _, e := range store.Entries() {
				for _, t := range e.Tags {
					counts[t]++
				}
			}
			if len(counts) == 0 {
				fmt.Println("No tags found.")
				return nil
			}

			type tagEntry struct {
				Name  string
				Count int
			}
			var entries []tagEntry
			for name, count := range counts {
				entries = append(entries, tagEntry{name, count})
			}
			sort.Slice(entries, func(i, j int) bool {
				if entries[i].Count != entries[j].Count {
					return entries[i].Count > entries[j].Count
				}
				return entries[i].Name < entries[j].Name
			})
			for _, e := range entries {
				fmt.Printf("  %-24s %s\n",
					color.CyanString(e.Name),
					color.HiBlackString("(%d)", e.Count),
				)
			}
			return nil
		},
	}
}

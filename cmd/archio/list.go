package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/archio-dev/archio/internal/corefmt"
	"github.com/archio-dev/archio/internal/listarchive"
)

var listArgs struct {
	Tree bool
}

var listCmd = &cobra.Command{
	Use:     "list <archives...>",
	Aliases: []string{"l", "ls"},
	Short:   "list archive contents",
	Args:    cobra.MinimumNArgs(1),
	RunE:    runList,
}

func init() {
	listCmd.Flags().BoolVar(&listArgs.Tree, "tree", false, "render entries as a tree")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	for _, input := range args {
		chain, err := resolveChainForInput(input, nil, logger)
		if err != nil {
			return err
		}
		if chain == nil {
			continue
		}
		if err := corefmt.ValidateForList(chain); err != nil {
			return err
		}

		entries, err := listarchive.List(input, chain)
		if err != nil {
			return err
		}

		if len(args) > 1 {
			fmt.Println(input + ":")
		}

		if listArgs.Tree {
			root := listarchive.BuildTree(entries)
			listarchive.RenderTree(os.Stdout, root)
			continue
		}

		for _, e := range listarchive.SortedByPath(entries) {
			fmt.Printf("%10d  %s\n", e.Size, e.Path)
		}
	}
	return nil
}

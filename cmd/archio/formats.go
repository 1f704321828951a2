package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/archio-dev/archio/internal/corefmt"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "list every recognized format and its compress/decompress support",
	RunE:  runFormats,
}

func init() {
	rootCmd.AddCommand(formatsCmd)
}

func runFormats(cmd *cobra.Command, args []string) error {
	fmt.Printf("%-6s %-24s %-8s %-10s %s\n", "EXT", "NAME", "ARCHIVE", "COMPRESS", "DECOMPRESS")
	for _, f := range corefmt.InDisplayOrder() {
		m := f.Meta()
		canCompress, canDecompress := f.Capabilities()
		fmt.Printf("%-6s %-24s %-8v %-10v %v\n", m.CanonicalExt, m.LongName, m.IsArchive, canCompress, canDecompress)
		if m.Notes != "" {
			fmt.Printf("       note: %s\n", m.Notes)
		}
	}
	return nil
}

// Command archio is a dot-separated-extension-driven compress/decompress/
// list tool. Its command layout (one file per subcommand, each
// registering itself in init()) follows pelican-dev-wings' cmd package.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/archio-dev/archio/internal/corepolicy"
	"github.com/archio-dev/archio/internal/logx"
)

var globalFlags struct {
	Yes        bool
	No         bool
	Accessible bool
	Hidden     bool
	Quiet      bool
	GitIgnore  bool
	Format     string
	Level      int
	Threads    int
}

var logger *logx.Worker

var rootCmd = &cobra.Command{
	Use:           "archio",
	Short:         "Compress, decompress, and list multi-format archives",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&globalFlags.Yes, "yes", "y", false, "assume yes to every prompt")
	rootCmd.PersistentFlags().BoolVarP(&globalFlags.No, "no", "n", false, "assume no to every prompt")
	rootCmd.PersistentFlags().BoolVarP(&globalFlags.Accessible, "accessible", "A", false, "emit screen-reader-friendly log output")
	rootCmd.PersistentFlags().BoolVarP(&globalFlags.Hidden, "hidden", "H", false, "include hidden files when walking directories")
	rootCmd.PersistentFlags().BoolVarP(&globalFlags.Quiet, "quiet", "q", false, "suppress informational log output")
	rootCmd.PersistentFlags().BoolVarP(&globalFlags.GitIgnore, "gitignore", "g", false, "honor .gitignore and .git/info/exclude when walking directories")
	rootCmd.PersistentFlags().StringVarP(&globalFlags.Format, "format", "f", "", "explicit dot-separated format spec, e.g. tar.gz")
	rootCmd.PersistentFlags().IntVarP(&globalFlags.Level, "level", "l", 0, "compression level (0 = format default)")
	rootCmd.PersistentFlags().IntVar(&globalFlags.Threads, "threads", 0, "worker count for parallel decompression (default: CPU count)")

	if os.Getenv("NO_COLOR") != "" {
		color.NoColor = true
	}
}

func effectivePolicy() corepolicy.Tristate {
	switch {
	case globalFlags.Yes:
		return corepolicy.AlwaysYes
	case globalFlags.No:
		return corepolicy.AlwaysNo
	default:
		return corepolicy.Ask
	}
}

func isAccessible() bool {
	return globalFlags.Accessible || os.Getenv("ACCESSIBLE") == "1"
}

func newLogger() *logx.Worker {
	w := logx.New(os.Stderr)
	w.SetAccessible(isAccessible())
	w.SetQuiet(globalFlags.Quiet)
	go w.Run()
	return w
}

func fatal(err error) {
	if logger != nil {
		logger.Flush()
	}
	fmt.Fprintln(os.Stderr, color.New(color.FgRed).Sprint("error:"), err)
	os.Exit(1)
}

func main() {
	logger = newLogger()
	defer logger.FlushAndShutdown()

	if err := rootCmd.Execute(); err != nil {
		fatal(err)
	}
}

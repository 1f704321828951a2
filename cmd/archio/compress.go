package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/archio-dev/archio/internal/corefmt"
	"github.com/archio-dev/archio/internal/corepolicy"
	"github.com/archio-dev/archio/internal/corerr"
	"github.com/archio-dev/archio/internal/corewalk"
	"github.com/archio-dev/archio/internal/pipeline"
)

var compressCmd = &cobra.Command{
	Use:     "compress <files...> <output>",
	Aliases: []string{"c"},
	Short:   "compress one or more inputs into one archive",
	Args:    cobra.MinimumNArgs(2),
	RunE:    runCompress,
}

func init() {
	rootCmd.AddCommand(compressCmd)
}

func runCompress(cmd *cobra.Command, args []string) error {
	sources := args[:len(args)-1]
	output := args[len(args)-1]

	chain, err := resolveChainForOutput(output)
	if err != nil {
		return err
	}

	if err := corefmt.ValidateForCompress(chain, len(sources)); err != nil {
		return err
	}

	for _, src := range sources {
		abs, err := filepath.Abs(src)
		if err != nil {
			return corerr.Wrap("could not resolve source path", err)
		}
		if isRootFolder(abs) {
			return corerr.CompressingRootFolder(src)
		}
	}

	vis := corewalk.Policy{
		ReadHidden:     globalFlags.Hidden,
		ReadGitIgnore:  globalFlags.GitIgnore,
		ReadGitExclude: globalFlags.GitIgnore,
	}

	policyEngine := corepolicy.New(effectivePolicy(), logger)

	writer, finalPath, err := policyEngine.CreateOrResolve(output)
	if err != nil {
		return err
	}
	if writer == nil {
		logger.Info(true, "skipped %s: destination already exists", output)
		return nil
	}

	err = pipeline.Encode(pipeline.EncodeRequest{
		Chain:   chain,
		Sources: sources,
		Dest:    writer,
		Visible: vis,
		Level:   globalFlags.Level,
		Logger:  logger,
		Policy:  policyEngine,
	})
	writer.Close()
	if err != nil {
		if rmErr := os.Remove(finalPath); rmErr != nil {
			logger.Warning("could not remove corrupt output %s after error: %v", finalPath, rmErr)
		}
		return err
	}

	logger.Info(true, "created %s", finalPath)
	return nil
}

func resolveChainForOutput(output string) (corefmt.Chain, error) {
	if globalFlags.Format != "" {
		return parseFormatFlag(globalFlags.Format)
	}
	ext := corefmt.ParseExtension(filepath.Base(output))
	if len(ext.Chain) == 0 {
		return nil, corerr.MissingExtension(output)
	}
	return ext.Chain, nil
}

func parseFormatFlag(spec string) (corefmt.Chain, error) {
	spec = strings.TrimPrefix(spec, ".")
	tokens := strings.Split(spec, ".")

	var chain corefmt.Chain
	for _, tok := range tokens {
		formats, ok := corefmt.FormatsForToken(strings.ToLower(tok))
		if !ok {
			return nil, corerr.InvalidInput("unrecognized format token '" + tok + "'")
		}
		chain = append(chain, formats...)
	}
	return chain, nil
}

func isRootFolder(path string) bool {
	clean := filepath.Clean(path)
	return clean == string(filepath.Separator) || clean == "." || clean == os.Getenv("HOME")
}

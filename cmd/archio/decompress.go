package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/archio-dev/archio/internal/corefmt"
	"github.com/archio-dev/archio/internal/corepolicy"
	"github.com/archio-dev/archio/internal/corerr"
	"github.com/archio-dev/archio/internal/jobrunner"
	"github.com/archio-dev/archio/internal/logx"
	"github.com/archio-dev/archio/internal/pipeline"
	"github.com/archio-dev/archio/internal/sniff"
)

var decompressArgs struct {
	Dir string
}

var decompressCmd = &cobra.Command{
	Use:     "decompress <files...>",
	Aliases: []string{"d"},
	Short:   "decompress one or more archives",
	Args:    cobra.MinimumNArgs(1),
	RunE:    runDecompress,
}

func init() {
	decompressCmd.Flags().StringVar(&decompressArgs.Dir, "dir", "", "output directory (default: alongside each input)")
	rootCmd.AddCommand(decompressCmd)
}

func runDecompress(cmd *cobra.Command, args []string) error {
	policyEngine := corepolicy.New(effectivePolicy(), logger)

	var jobs []jobrunner.Job
	for _, input := range args {
		if input == "-" && globalFlags.Format == "" {
			return corerr.InvalidInput("--format is mandatory when reading from stdin")
		}

		chain, err := resolveChainForInput(input, policyEngine, logger)
		if err != nil {
			return err
		}
		if chain == nil {
			logger.Info(true, "%s: skipped", input)
			continue
		}
		if err := corefmt.ValidateForDecompress(chain); err != nil {
			return err
		}

		destDir := decompressArgs.Dir
		sourcePath := input
		var stdin *os.File
		if input == "-" {
			sourcePath = ""
			stdin = os.Stdin
			if destDir == "" {
				destDir = "."
			}
		} else if destDir == "" {
			destDir = filepath.Dir(input)
		}

		jobs = append(jobs, jobrunner.Job{
			Label: input,
			Request: pipeline.DecodeRequest{
				Chain:      chain,
				SourcePath: sourcePath,
				Stdin:      stdin,
				DestDir:    destDir,
				Logger:     logger,
				Policy:     policyEngine,
			},
		})
	}

	results, err := jobrunner.Run(jobs, globalFlags.Threads)
	for _, r := range results {
		if r.Err != nil {
			logger.Warning("%s: %v", r.Label, r.Err)
			continue
		}
		logger.Info(true, "%s: extracted %d file(s)", r.Label, r.Summary.FilesUnpacked)
	}
	return err
}

// resolveChainForInput layers content-sniffing consultation on top of the
// filename's extension parse: when the filename names no known chain, the
// sniffer is asked to infer one and the user is asked to confirm; when the
// sniffed format differs from the chain's last format (the layer the
// file's bytes start with, e.g. gz for foo.tar.gz), a warning is emitted
// and confirmation is requested. A nil chain with a
// nil error means the user declined and the caller should skip input
// without treating it as a failure.
func resolveChainForInput(input string, policy *corepolicy.Engine, logger *logx.Worker) (corefmt.Chain, error) {
	if globalFlags.Format != "" {
		return parseFormatFlag(globalFlags.Format)
	}

	ext := corefmt.ParseExtension(filepath.Base(input))

	if input == "-" {
		if len(ext.Chain) == 0 {
			return nil, corerr.MissingExtension(input)
		}
		return ext.Chain, nil
	}

	sniffed, sniffedOK, err := sniffInput(input)
	if err != nil {
		return nil, corerr.Wrap("could not sniff "+input, err)
	}

	if len(ext.Chain) == 0 {
		if !sniffedOK {
			return nil, corerr.MissingExtension(input)
		}
		return confirmChain(policy, corefmt.Chain{sniffed}, input,
			"treat '"+input+"' as "+sniffed.String()+" based on its contents and decompress")
	}

	onDisk := ext.Chain[len(ext.Chain)-1]
	if sniffedOK && onDisk != sniffed {
		if logger != nil {
			logger.Warning("%s: extension says %s but its contents look like %s", input, onDisk, sniffed)
		}
		return confirmChain(policy, ext.Chain, input,
			"proceed decompressing '"+input+"' as "+onDisk.String()+" anyway")
	}

	return ext.Chain, nil
}

// confirmChain asks the user (via policy) whether to proceed with
// chain, returning (nil, nil) on decline.
func confirmChain(policy *corepolicy.Engine, chain corefmt.Chain, input, action string) (corefmt.Chain, error) {
	if policy == nil {
		return chain, nil
	}
	ok, err := policy.Confirm(action, input)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return chain, nil
}

// sniffInput opens input fresh (the decode/list drivers reopen it
// independently) and reads its leading bytes looking for known magic
// bytes.
func sniffInput(input string) (corefmt.Format, bool, error) {
	f, err := os.Open(input)
	if err != nil {
		return 0, false, nil
	}
	defer f.Close()
	return sniff.Sniff(f)
}

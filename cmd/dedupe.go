package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/fsdedup/hardlinker/pkg/config"
	"github.com/fsdedup/hardlinker/pkg/dedup"
	"github.com/fsdedup/hardlinker/pkg/filter"
	"github.com/fsdedup/hardlinker/pkg/format"
	"github.com/fsdedup/hardlinker/pkg/logger"
	"github.com/fsdedup/hardlinker/pkg/paths"
)

var (
	flagTargetFile string
	flagPrompt     bool
)

var dedupeCmd = &cobra.Command{
	Use:   "dedupe [flags] TARGET... [';' TARGET...]",
	Short: "Hardlink duplicate files beneath the targets",
	Long: `Recursively scan the targets, find regular files with identical content
and merge each duplicate group onto one inode via hardlinks.

Each separator (default ';') starts a new set of targets. Sets are fully
independent: files are never linked across sets, and all targets of one set
must reside on the same filesystem device. Symlinks are always ignored.`,

	Run: func(cmd *cobra.Command, args []string) {
		initCore(cmd, true)

		log := logger.GetLogger("dedupe")
		cfg := config.Config

		targets, err := gatherTargets(args)
		if err != nil {
			log.WithError(err).Fatal("Failed gathering targets")
		}

		sets := paths.SplitSets(targets, cfg.Separator)
		if len(sets) == 0 {
			log.Warn("No targets provided")
			return
		}

		filters, err := filter.Compile(cfg.Filters)
		if err != nil {
			log.WithError(err).Fatal("Failed compiling filter expressions")
		}

		// Resolve, walk and device-check every set before prompting, so a
		// fatal condition can never surface after mutation has begun.
		fileSets := make([][]*paths.Record, 0, len(sets))
		for _, set := range sets {
			roots, err := paths.ResolveSet(set)
			if err != nil {
				log.WithError(err).Fatal("Failed resolving targets")
			}
			if len(roots) == 0 {
				continue
			}

			var files []*paths.Record
			for _, root := range roots {
				files = append(files, paths.Collect(root, cfg.MinSize, acceptFor(log, filters))...)
			}

			if err := paths.SameDevice(files); err != nil {
				log.Fatalf("Cannot hardlink across devices:\n%s", err)
			}

			fileSets = append(fileSets, files)
		}

		if flagPrompt && !promptConfirm(sets) {
			return
		}

		start := time.Now()
		var total dedup.Stats
		for _, files := range fileSets {
			engine := dedup.New(cfg.DryRun, reportWith(log, cfg))
			stats := engine.Run(files)

			total.Considered += stats.Considered
			total.Linked += stats.Linked
			total.Copied += stats.Copied
			total.Failed += stats.Failed
			total.SavedBytes += stats.SavedBytes
		}

		log.WithField("reclaimed_space", humanize.IBytes(total.SavedBytes)).
			Infof("Hardlinked %d of %d candidate files (%d copied, %d failed) in %s",
				total.Linked, total.Considered, total.Copied, total.Failed, time.Since(start).Round(time.Millisecond))
	},
}

// gatherTargets returns the raw targets from the CLI arguments or, when
// --target-file is set, from the given file ('-' reads stdin). The two
// sources are mutually exclusive.
func gatherTargets(args []string) ([]string, error) {
	if flagTargetFile == "" {
		if err := paths.ValidateTargets(args); err != nil {
			return nil, err
		}
		return args, nil
	}

	if len(args) > 0 {
		return nil, fmt.Errorf("no targets should be provided as arguments when --target-file is used")
	}

	if flagTargetFile == "-" {
		return paths.ReadTargetLines(os.Stdin)
	}
	return paths.ReadTargetFile(flagTargetFile)
}

// acceptFor gates file registration on the configured filter expressions.
// An expression that fails to evaluate rejects the file, not the run.
func acceptFor(log *logrus.Entry, filters []filter.CompiledExpression) paths.AcceptFunc {
	if len(filters) == 0 {
		return nil
	}
	return func(r *paths.Record) bool {
		match, err := filter.MatchAll(r, filters)
		if err != nil {
			log.WithError(err).Warnf("Failed evaluating filter for %q, skipping file", r.Path)
			return false
		}
		return match
	}
}

// reportWith prints each merge outcome. Pair formatting stays out of the
// engine; it only hands over the keep path, the replace path and the result.
func reportWith(log *logrus.Entry, cfg *config.Configuration) dedup.ReportFunc {
	braces := !cfg.NoBraceOutput
	return func(res dedup.Result) {
		pair := format.Pair(res.Keep, res.Replace, braces)
		switch {
		case res.Err != nil:
			// the engine already logged the error with context
		case res.Copied:
			log.Warnf("Copied instead of hardlinked %s", pair)
		case cfg.DryRun:
			log.Infof("Dry-run: would hardlink %s", pair)
		default:
			log.Infof("Hardlinked %s", pair)
		}
	}
}

// promptConfirm asks once before operating, listing every target set.
func promptConfirm(sets [][]string) bool {
	fmt.Println("Are you sure you want to link all duplicates in each of these sets of targets?")
	for _, set := range sets {
		fmt.Printf("  %s\n", strings.Join(set, " "))
	}
	fmt.Print("> ")

	response, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		fmt.Println("Failed reading input...")
		return false
	}

	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(response)), "y")
}

func init() {
	rootCmd.AddCommand(dedupeCmd)

	dedupeCmd.Flags().Uint64("min-size", 1, "Minimum file size to be considered for hardlinking (never below 1)")
	dedupeCmd.Flags().String("separator", ";", "Separator between sets of targets")
	dedupeCmd.Flags().Bool("no-brace-output", false, "Disable brace notation for output pairs")
	dedupeCmd.Flags().StringSlice("filter", nil, "Filter expression a file must match to be considered (repeatable)")

	dedupeCmd.Flags().StringVar(&flagTargetFile, "target-file", "", "File to source targets from ('-' for stdin)")
	dedupeCmd.Flags().BoolVarP(&flagPrompt, "prompt", "i", false, "Prompt once before operating")
}

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/fsdedup/hardlinker/pkg/config"
	"github.com/fsdedup/hardlinker/pkg/logger"
	"github.com/fsdedup/hardlinker/pkg/runtime"
)

var (
	// Global flags
	flagConfigFolder = config.GetDefaultConfigDirectory("hardlinker")
	flagConfigFile   = "config.yaml"
	flagLogFile      string
	flagVerbose      int
	flagQuiet        int
	flagDryRun       bool

	initialized bool
)

var rootCmd = &cobra.Command{
	Use:   "hardlinker",
	Short: "Hardlink duplicate files recursively",
	Long: `A CLI tool that finds duplicate regular files beneath sets of targets
and collapses each duplicate group onto a single inode via hardlinks.
`,
}

// Execute runs the root command. This is the only place the process decides
// exit behavior; the engine itself never terminates the process.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigFolder, "config-dir", flagConfigFolder, "Config folder")
	rootCmd.PersistentFlags().StringVarP(&flagConfigFile, "config", "c", flagConfigFile, "Config file")
	rootCmd.PersistentFlags().StringVarP(&flagLogFile, "log", "l", flagLogFile, "Log file")
	rootCmd.PersistentFlags().CountVarP(&flagVerbose, "verbose", "v", "Increase verbosity")
	rootCmd.PersistentFlags().CountVarP(&flagQuiet, "quiet", "q", "Decrease verbosity")

	rootCmd.PersistentFlags().BoolVar(&flagDryRun, "dry-run", false, "Perform no operations on the filesystem")
}

func verbosity() int {
	return flagVerbose - flagQuiet
}

// initCore wires logging and configuration before any command logic runs.
func initCore(cmd *cobra.Command, showAppInfo bool) {
	if initialized {
		return
	}

	if err := logger.Init(verbosity(), flagLogFile); err != nil {
		fmt.Printf("Failed initializing logger: %v\n", err)
		os.Exit(1)
	}

	if err := config.Load(filepath.Join(flagConfigFolder, flagConfigFile), cmd.Flags()); err != nil {
		logger.GetLogger("cfg").WithError(err).Fatal("Failed loading configuration")
	}

	if showAppInfo {
		logger.GetLogger("app").Infof("Using %s (%s@%s)", runtime.Version, runtime.GitCommit, runtime.Timestamp)
	}

	initialized = true
}

package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/blang/semver"
	"github.com/rhysd/go-github-selfupdate/selfupdate"
	"github.com/spf13/cobra"

	"github.com/fsdedup/hardlinker/pkg/logger"
	"github.com/fsdedup/hardlinker/pkg/runtime"
)

const updateRepo = "fsdedup/hardlinker"

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update to latest version",
	Long:  `Self-update this binary to the latest released version.`,

	Run: func(cmd *cobra.Command, args []string) {
		initCore(cmd, false)

		log := logger.GetLogger("update")

		current, err := semver.Parse(runtime.Version)
		if err != nil {
			log.WithError(err).Fatalf("Failed parsing current build version %q", runtime.Version)
		}

		log.Info("Checking for the latest version...")
		latest, found, err := selfupdate.DetectLatest(updateRepo)
		if err != nil {
			log.WithError(err).Fatal("Failed determining latest available version")
		}

		if !found || latest.Version.LTE(current) {
			log.Infof("Already using the latest version: %s", runtime.Version)
			return
		}

		fmt.Printf("Update from %s to %s? (y/N): ", current, latest.Version)
		response, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			log.WithError(err).Fatal("Failed reading input")
		}
		if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(response)), "y") {
			return
		}

		exe, err := os.Executable()
		if err != nil {
			log.WithError(err).Fatal("Failed locating current executable path")
		}

		if err := selfupdate.UpdateTo(latest.AssetURL, exe); err != nil {
			log.WithError(err).Fatalf("Failed updating to release %s", latest.Version)
		}

		log.Infof("Updated to version %s", latest.Version)
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)
}

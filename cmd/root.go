package cmd

import (
	"fmt"
	"os"

	"search-schema/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd deploys or undeploys a search schema document.
var RootCmd = &cobra.Command{
	Use:   "search-schema [document]",
	Short: "Reconcile a search schema document against the metadata store",
	Long: `search-schema drives the search metadata store towards a declared schema:
full-text indexes, managed properties, crawled properties and their mappings.

The document is a local XML or YAML file, or an s3://bucket/key object.

Examples:
  # Deploy a schema
  search-schema schema.xml

  # Remove what the schema declares (asks for confirmation)
  search-schema --undeploy schema.xml

  # Print a sample document
  search-schema --generate-example --format yaml`,
	Args:          cobra.MaximumNArgs(1),
	RunE:          runDeploy,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format with the development config gives readable timestamps for a CLI.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"search-schema/core/metastore/sqlstore"
	"search-schema/core/storage"
	"search-schema/feature/deploy"
	"search-schema/feature/schema"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	undeploy        bool
	generateExample bool
	exampleFormat   string
	yesConfirm      bool
)

func init() {
	RootCmd.Flags().BoolVar(&undeploy, "undeploy", false, "Remove the managed properties and full-text indexes the document declares")
	RootCmd.Flags().BoolVar(&generateExample, "generate-example", false, "Print a sample document and exit")
	RootCmd.Flags().StringVar(&exampleFormat, "format", string(schema.FormatXML), "Format of the generated example (xml, yaml)")
	RootCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm --undeploy (non-interactive)")
}

func runDeploy(cmd *cobra.Command, args []string) error {
	if generateExample {
		return printExample(cmd.OutOrStdout())
	}
	if len(args) != 1 {
		return fmt.Errorf("a document is required unless --generate-example is set")
	}
	location := args[0]
	ctx := cmd.Context()

	cfg, l, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = l.Sync() }()

	db, closeDB, err := openDB(cfg.Store)
	if err != nil {
		return err
	}
	defer closeDB()

	var client storage.Client
	if storage.IsURI(location) {
		client, err = storage.NewClient(cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to connect to storage: %w", err)
		}
	}

	doc, err := schema.Load(ctx, location, client)
	if err != nil {
		return err
	}
	l.Debug("document loaded", zap.String("location", location), zap.Int("full_text_indexes", len(doc.Indexes)))

	svc := deploy.NewService(sqlstore.New(db), l)

	var report *deploy.Report
	if undeploy {
		if !confirmUndeploy(cmd.InOrStdin(), cmd.OutOrStdout(), yesConfirm) {
			l.Warn("Operation cancelled by user. No changes were made.")
			return nil
		}
		report, err = svc.Undeploy(ctx, doc)
	} else {
		report, err = svc.Deploy(ctx, doc)
	}

	if report != nil {
		printReport(l, cmd.OutOrStdout(), report)
	}
	return err
}

func printExample(w io.Writer) error {
	format, err := schema.ParseFormat(exampleFormat)
	if err != nil {
		return err
	}
	data, err := schema.Example(format)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// confirmUndeploy prompts for confirmation unless yes is set.
func confirmUndeploy(in io.Reader, out io.Writer, yes bool) bool {
	if yes {
		fmt.Fprintln(out, "✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Fprint(out, "⚠️  Undeploy removes managed properties and full-text indexes. Type 'yes' to confirm: ")
	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && response == "" {
		return false
	}
	return strings.TrimSpace(response) == "yes"
}

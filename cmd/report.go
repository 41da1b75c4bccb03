package cmd

import (
	"fmt"
	"io"

	"search-schema/core/reconcile"
	"search-schema/feature/deploy"

	"github.com/fatih/color"
	"go.uber.org/zap"
)

var actionColors = map[reconcile.Action]*color.Color{
	reconcile.ActionCreated:   color.New(color.FgGreen),
	reconcile.ActionUpdated:   color.New(color.FgYellow),
	reconcile.ActionRemoved:   color.New(color.FgRed),
	reconcile.ActionUnchanged: color.New(color.Faint),
}

// printReport logs the run summary and lists every change that touched the store.
func printReport(l *zap.Logger, w io.Writer, report *deploy.Report) {
	s := report.Summary()
	l.Info("Schema "+string(report.Mode)+" report",
		zap.Int("created", s.Created),
		zap.Int("updated", s.Updated),
		zap.Int("removed", s.Removed),
		zap.Int("unchanged", s.Unchanged),
	)

	for _, c := range report.Changes {
		if c.Action == reconcile.ActionUnchanged {
			continue
		}
		line := fmt.Sprintf("%-9s %-24s %s", c.Action, c.Kind, c.Name)
		if len(c.Fields) > 0 {
			line += fmt.Sprintf(" %v", c.Fields)
		}
		actionColors[c.Action].Fprintln(w, line)
	}
	if !report.Mutated() {
		fmt.Fprintln(w, "Store already matches the document.")
	}

	if len(report.Stale) > 0 {
		color.New(color.FgCyan).Fprintf(w, "%d crawled properties were left in place; remove them manually if nothing else maps them:\n", len(report.Stale))
		for _, ref := range report.Stale {
			fmt.Fprintf(w, "  %s\n", ref)
		}
	}
}

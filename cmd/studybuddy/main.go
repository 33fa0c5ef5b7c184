// Command studybuddy tracks study sessions from the terminal.
//
// Usage:
//
//	studybuddy                      open the interactive session browser
//	studybuddy add -s Calculus ...  add a session
//	studybuddy list --status pending
//	studybuddy status <id> completed
//
// Settings come from ~/.studybuddy/config.yaml, STUDYBUDDY_* environment
// variables and the persistent flags, in increasing order of precedence.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/fwojciec/studybuddy/config"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "studybuddy: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Handle OS signals for graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a := newApp(os.Stdin, os.Stdout, time.Now)
	defer a.close()

	return newRootCmd(a).ExecuteContext(ctx)
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "studybuddy",
		Short: "Plan and track study sessions",
		Long: `studybuddy keeps a list of study sessions with a subject, due date,
priority and status. Run without a subcommand to open the interactive browser.`,
		Version:       version,
		RunE:          a.runTUI,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
	}
	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.out)

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", config.Path(), "config file")
	pf.String("data-dir", "", "directory for sessions and logs (default ~/.studybuddy)")
	pf.String("backend", "", "storage backend: json, sqlite or badger")
	pf.String("log-level", "", "log level: debug, info, warn or error")
	pf.BoolVar(&a.noSeed, "no-seed", false, "do not add sample sessions to an empty store")

	root.AddCommand(
		newAddCmd(a),
		newEditCmd(a),
		newListCmd(a),
		newShowCmd(a),
		newStatusCmd(a),
		newRemoveCmd(a),
		newClearCmd(a),
		newStatsCmd(a),
		newExportCmd(a),
		newImportCmd(a),
		newConfigCmd(a),
	)
	return root
}

// confirm asks a yes/no question on the command's input. Anything other
// than y or yes declines.
func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N] ", question)
	var answer string
	if _, err := fmt.Fscanln(in, &answer); err != nil {
		return false
	}
	switch answer {
	case "y", "Y", "yes", "Yes", "YES":
		return true
	}
	return false
}

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fwojciec/studybuddy"
	bt "github.com/fwojciec/studybuddy/bubbletea"
	"github.com/fwojciec/studybuddy/config"
	"github.com/fwojciec/studybuddy/goldmark"
	sbjson "github.com/fwojciec/studybuddy/json"
	sbyaml "github.com/fwojciec/studybuddy/yaml"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Output formats for export and import.
const (
	formatJSON = "json"
	formatYAML = "yaml"
)

// fieldFlags registers the session field flags shared by add and edit.
func fieldFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringP("subject", "s", "", "subject (required)")
	f.StringP("topic", "t", "", "topic")
	f.StringP("duration", "d", "", "duration in hours (default 1 for new sessions)")
	f.StringP("priority", "p", "", "urgent, high, medium or low (default medium for new sessions)")
	f.String("due", "", "due date as YYYY-MM-DD (default tomorrow for new sessions)")
	f.StringP("resources", "r", "", "comma-separated resources")
	f.StringP("notes", "n", "", "notes or goals, markdown allowed")
}

// readFields overlays the field flags that were set on base.
func readFields(cmd *cobra.Command, base studybuddy.RawFields) studybuddy.RawFields {
	f := cmd.Flags()
	for name, dst := range map[string]*string{
		"subject":   &base.Subject,
		"topic":     &base.Topic,
		"duration":  &base.Duration,
		"priority":  &base.Priority,
		"due":       &base.DueDate,
		"resources": &base.Resources,
		"notes":     &base.Notes,
	} {
		if f.Changed(name) {
			*dst, _ = f.GetString(name)
		}
	}
	return base
}

// rawFields renders a session back into editable text.
func rawFields(sess studybuddy.Session) studybuddy.RawFields {
	return studybuddy.RawFields{
		Subject:   sess.Subject,
		Topic:     sess.Topic,
		Duration:  strconv.FormatFloat(sess.DurationHours, 'f', -1, 64),
		Priority:  string(sess.Priority),
		DueDate:   sess.DueDate.Format(studybuddy.DateLayout),
		Resources: strings.Join(sess.Resources, ", "),
		Notes:     sess.Notes,
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func newAddCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a study session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.open(cmd)
			if err != nil {
				return err
			}
			raw := readFields(cmd, studybuddy.RawFields{
				Duration: "1",
				Priority: string(studybuddy.PriorityMedium),
				DueDate:  studybuddy.DateOf(a.now()).AddDate(0, 0, 1).Format(studybuddy.DateLayout),
			})
			fields, err := studybuddy.ParseFields(raw)
			if err != nil {
				return err
			}
			sess, err := store.Add(fields)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s, due %s\n",
				shortID(sess.ID), sess.Subject, bt.DueLabel(sess, a.now()))
			return nil
		},
	}
	fieldFlags(cmd)
	return cmd
}

func newEditCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change the fields of a study session",
		Long:  "Change the fields of a study session. Only the flags given are changed; status and dates stay as they are.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.open(cmd)
			if err != nil {
				return err
			}
			sess, err := resolve(store, args[0])
			if err != nil {
				return err
			}
			fields, err := studybuddy.ParseFields(readFields(cmd, rawFields(sess)))
			if err != nil {
				return err
			}
			if _, err := store.Update(sess.ID, fields); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s %s\n", shortID(sess.ID), fields.Subject)
			return nil
		},
	}
	fieldFlags(cmd)
	return cmd
}

func newListCmd(a *app) *cobra.Command {
	var status, priority string
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List study sessions, overdue first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				filter studybuddy.Filter
				err    error
			)
			if filter.Status, err = studybuddy.ParseStatusFilter(status); err != nil {
				return err
			}
			if filter.Priority, err = studybuddy.ParsePriorityFilter(priority); err != nil {
				return err
			}
			store, err := a.open(cmd)
			if err != nil {
				return err
			}
			writeTable(cmd.OutOrStdout(), studybuddy.View(store.All(), filter, a.now()), a)
			return nil
		},
	}
	cmd.Flags().StringVar(&status, "status", studybuddy.FilterAll, "all, pending, in-progress or completed")
	cmd.Flags().StringVar(&priority, "priority", studybuddy.FilterAll, "all, urgent, high, medium or low")
	return cmd
}

func writeTable(w io.Writer, sessions []studybuddy.Session, a *app) {
	if len(sessions) == 0 {
		fmt.Fprintln(w, "No study sessions found")
		return
	}
	row := func(cols ...string) {
		widths := []int{8, 20, 18, 6, 8, 22, 11}
		cells := make([]string, len(cols))
		for i, c := range cols {
			cells[i] = bt.Cell(c, widths[i])
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(cells, "  "), " "))
	}
	row("ID", "SUBJECT", "TOPIC", "HOURS", "PRIORITY", "DUE", "STATUS")
	for _, s := range sessions {
		row(shortID(s.ID), s.Subject, s.Topic, bt.Hours(s.DurationHours),
			string(s.Priority), bt.DueLabel(s, a.now()), string(s.Status))
	}
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one study session with its notes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.open(cmd)
			if err != nil {
				return err
			}
			sess, err := resolve(store, args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, sess.Subject)
			if sess.Topic != "" {
				fmt.Fprintf(w, "Topic:     %s\n", sess.Topic)
			}
			fmt.Fprintf(w, "ID:        %s\n", sess.ID)
			fmt.Fprintf(w, "Duration:  %s\n", bt.Hours(sess.DurationHours))
			fmt.Fprintf(w, "Priority:  %s\n", sess.Priority)
			fmt.Fprintf(w, "Due:       %s (%s)\n", sess.DueDate.Format(studybuddy.DateLayout), bt.DueLabel(sess, a.now()))
			fmt.Fprintf(w, "Status:    %s\n", sess.Status)
			if len(sess.Resources) > 0 {
				fmt.Fprintln(w, "Resources:")
				for _, r := range sess.Resources {
					fmt.Fprintf(w, "  • %s\n", r)
				}
			}
			if sess.Notes != "" {
				fmt.Fprintln(w, "Notes:")
				fmt.Fprintln(w, goldmark.Render(sess.Notes, 78, a.cfg.StudyTheme()))
			}
			fmt.Fprintf(w, "Created:   %s\n", sess.CreatedAt.Format(studybuddy.DateLayout))
			if sess.CompletedAt != nil {
				fmt.Fprintf(w, "Completed: %s\n", sess.CompletedAt.Format(studybuddy.DateLayout))
			}
			return nil
		},
	}
}

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status <id> <pending|in-progress|completed>",
		Short: "Move a study session to another status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := studybuddy.ParseStatus(args[1])
			if err != nil {
				return err
			}
			store, err := a.open(cmd)
			if err != nil {
				return err
			}
			sess, err := resolve(store, args[0])
			if err != nil {
				return err
			}
			if _, err := store.UpdateStatus(sess.ID, status); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Session marked as %s!\n", status)
			return nil
		},
	}
}

func newRemoveCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a study session",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.open(cmd)
			if err != nil {
				return err
			}
			sess, err := resolve(store, args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if !yes && !confirm(cmd.InOrStdin(), w, fmt.Sprintf("Delete %q?", sess.Subject)) {
				fmt.Fprintln(w, "Cancelled")
				return nil
			}
			if err := store.Delete(sess.ID); err != nil {
				return err
			}
			fmt.Fprintln(w, "Session deleted!")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func newClearCmd(a *app) *cobra.Command {
	var yes, all bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove completed sessions, or every session with --all",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.open(cmd)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			question := "Clear all completed study sessions?"
			if all {
				question = "Delete ALL study sessions? This cannot be undone."
			}
			if !yes && !confirm(cmd.InOrStdin(), w, question) {
				fmt.Fprintln(w, "Cancelled")
				return nil
			}
			if all {
				if err := store.ClearAll(); err != nil {
					return err
				}
				fmt.Fprintln(w, "All sessions cleared!")
				return nil
			}
			n, err := store.ClearCompleted()
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "Completed sessions cleared! (%d removed)\n", n)
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "remove every session")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summarize sessions by status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.open(cmd)
			if err != nil {
				return err
			}
			st := studybuddy.ComputeStats(store.All())
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Total:        %d\n", st.Total)
			fmt.Fprintf(w, "Completed:    %d\n", st.Completed)
			fmt.Fprintf(w, "In progress:  %d\n", st.InProgress)
			fmt.Fprintf(w, "Pending:      %d\n", st.Pending)
			fmt.Fprintf(w, "Total hours:  %s\n", bt.Hours(st.TotalHours))
			fmt.Fprintf(w, "Completion:   %d%%\n", st.CompletionRate)
			return nil
		},
	}
}

func newExportCmd(a *app) *cobra.Command {
	var format, output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every session as JSON or YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.open(cmd)
			if err != nil {
				return err
			}
			sessions := store.All()

			var data []byte
			switch format {
			case formatJSON:
				if output != "" && output != "-" {
					if err := sbjson.Export(output, sessions); err != nil {
						return fmt.Errorf("export: %w", err)
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Exported %d sessions to %s\n", len(sessions), output)
					return nil
				}
				data, err = sbjson.MarshalSessions(sessions)
			case formatYAML:
				data, err = sbyaml.MarshalSessions(sessions)
			default:
				return fmt.Errorf("unknown format %q: %w", format, studybuddy.ErrValidation)
			}
			if err != nil {
				return fmt.Errorf("export: %w", err)
			}
			if output == "" || output == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o600); err != nil {
				return fmt.Errorf("export: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d sessions to %s\n", len(sessions), output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", formatJSON, "json or yaml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "file to write (default stdout)")
	return cmd
}

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file-or-glob>",
		Short: "Add sessions from exported files",
		Long: `Add sessions from exported files. JSON files may be selected with a glob
such as 'backups/**/*.json'; a single .yaml or .yml file is read as YAML.
Sessions whose ID is already present are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sessions, err := readImport(args[0])
			if err != nil {
				return err
			}
			store, err := a.open(cmd)
			if err != nil {
				return err
			}
			n, err := store.Import(sessions)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d of %d sessions\n", n, len(sessions))
			return nil
		},
	}
}

func readImport(pattern string) ([]studybuddy.Session, error) {
	switch strings.ToLower(filepath.Ext(pattern)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(pattern)
		if err != nil {
			return nil, fmt.Errorf("import: %w", err)
		}
		return sbyaml.UnmarshalSessions(data)
	}
	base, rel := doublestar.SplitPattern(filepath.ToSlash(pattern))
	sessions, err := sbjson.ReadGlob(os.DirFS(filepath.FromSlash(base)), rel)
	if err != nil {
		return nil, fmt.Errorf("import: %w", err)
	}
	return sessions, nil
}

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the configuration file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := os.Stat(a.configPath); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", a.configPath)
			}
			if err := config.WriteDefault(a.configPath); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", a.configPath)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the resolved configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.loadConfig(cmd)
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("marshal config: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Show the configuration file path",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), a.configPath)
		},
	}

	cmd.AddCommand(initCmd, showCmd, pathCmd)
	return cmd
}

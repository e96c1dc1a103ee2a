package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tenk/internal/bootstrap"
	plugindto "tenk/internal/modules/plugin/dto"
	"tenk/internal/platform/config"
)

var heatGlyphs = [...]string{"·", "▁", "▂", "▃", "▄", "▅", "▆"}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dataDir string

	root := &cobra.Command{
		Use:           "tenk",
		Short:         "Deliberate practice tracker for the 10,000 hour road",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dataDir, "data", ".", "data directory")

	root.AddCommand(newTUICmd(&dataDir))
	root.AddCommand(newSkillCmd(&dataDir))
	root.AddCommand(newTrackCmd(&dataDir))
	root.AddCommand(newStatsCmd(&dataDir))
	root.AddCommand(newReindexCmd(&dataDir))
	root.AddCommand(newPluginCmd(&dataDir))
	return root
}

func loadApp(dataDir string) (*bootstrap.App, error) {
	cfg, err := config.Load(dataDir)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg)
}

func newTUICmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run tenk terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			return bootstrap.RunTUI(*dataDir, app)
		},
	}
}

func newSkillCmd(dataDir *string) *cobra.Command {
	skill := &cobra.Command{Use: "skill", Short: "Manage tracked skills"}

	var palette string
	var colorIndex int
	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a skill to track",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.SkillCLI.Create(context.Background(), args[0], palette, colorIndex)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added %s (%s)\n", out.Name, out.ID)
			return nil
		},
	}
	add.Flags().StringVar(&palette, "palette", "catppuccin", "color palette: catppuccin|terminal")
	add.Flags().IntVar(&colorIndex, "color", 0, "color index within the palette")

	skill.AddCommand(add)

	skill.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List skills with lifetime totals",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			skills, err := app.SkillCLI.List(context.Background())
			if err != nil {
				return err
			}
			if len(skills) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no skills yet")
				return nil
			}
			for _, s := range skills {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%.1fh\t%.2f%%\t%d sessions\n",
					s.ID, s.Name, float64(s.TotalSeconds)/3600, s.Progress*100, s.SessionCount)
			}
			return nil
		},
	})

	var showID string
	show := &cobra.Command{
		Use:   "show --id <id>",
		Short: "Show skill details",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(showID) == "" {
				return fmt.Errorf("--id is required")
			}
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			s, err := app.SkillCLI.Get(context.Background(), showID)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "id: %s\nname: %s\ntotal: %.1fh\nprogress: %.2f%%\nsessions: %d\n",
				s.ID, s.Name, float64(s.TotalSeconds)/3600, s.Progress*100, s.SessionCount)
			if s.WeeklyTargetHours > 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "target: %.1f h/week\n", s.WeeklyTargetHours)
			}
			if !s.LastPracticedAt.IsZero() {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "last practiced: %s\n", s.LastPracticedAt.Format("2006-01-02"))
			}
			return nil
		},
	}
	show.Flags().StringVar(&showID, "id", "", "skill id")
	skill.AddCommand(show)

	var renameID, renameName string
	rename := &cobra.Command{
		Use:   "rename --id <id> --name <name>",
		Short: "Rename a skill",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(renameID) == "" || strings.TrimSpace(renameName) == "" {
				return fmt.Errorf("--id and --name are required")
			}
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.SkillCLI.Rename(context.Background(), renameID, renameName)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "renamed to %s\n", out.Name)
			return nil
		},
	}
	rename.Flags().StringVar(&renameID, "id", "", "skill id")
	rename.Flags().StringVar(&renameName, "name", "", "new name")
	skill.AddCommand(rename)

	var targetID string
	var targetHours float64
	target := &cobra.Command{
		Use:   "target --id <id> --hours <hours-per-week>",
		Short: "Set the weekly practice target",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(targetID) == "" {
				return fmt.Errorf("--id is required")
			}
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.SkillCLI.SetTarget(context.Background(), targetID, targetHours)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s target set to %.1f h/week\n", out.Name, out.WeeklyTargetHours)
			return nil
		},
	}
	target.Flags().StringVar(&targetID, "id", "", "skill id")
	target.Flags().Float64Var(&targetHours, "hours", 0, "weekly target hours (0 clears)")
	skill.AddCommand(target)

	var colorID, colorPalette string
	var colorIdx int
	color := &cobra.Command{
		Use:   "color --id <id> --palette <name> --index <n>",
		Short: "Set the skill display color",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(colorID) == "" {
				return fmt.Errorf("--id is required")
			}
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.SkillCLI.SetColor(context.Background(), colorID, colorPalette, colorIdx)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s color set to %s/%d\n", out.Name, out.PaletteID, out.ColorIndex)
			return nil
		},
	}
	color.Flags().StringVar(&colorID, "id", "", "skill id")
	color.Flags().StringVar(&colorPalette, "palette", "catppuccin", "color palette: catppuccin|terminal")
	color.Flags().IntVar(&colorIdx, "index", 0, "color index within the palette")
	skill.AddCommand(color)

	var deleteID string
	deleteCmd := &cobra.Command{
		Use:   "delete --id <id>",
		Short: "Delete a skill and its sessions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(deleteID) == "" {
				return fmt.Errorf("--id is required")
			}
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			if err := app.SkillCLI.Delete(context.Background(), deleteID); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", deleteID)
			return nil
		},
	}
	deleteCmd.Flags().StringVar(&deleteID, "id", "", "skill id")
	skill.AddCommand(deleteCmd)

	return skill
}

func newTrackCmd(dataDir *string) *cobra.Command {
	track := &cobra.Command{Use: "track", Short: "Practice session lifecycle"}

	var startSkillID string
	start := &cobra.Command{
		Use:   "start --skill-id <id>",
		Short: "Start tracking a skill",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(startSkillID) == "" {
				return fmt.Errorf("--skill-id is required")
			}
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.TrackerCLI.Start(context.Background(), startSkillID)
			if err != nil {
				return err
			}
			if out.StoppedSessionID != "" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "stopped session %s\n", out.StoppedSessionID)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "tracking %s since %s\n", out.SkillName, out.StartedAt.Format("15:04:05"))
			return nil
		},
	}
	start.Flags().StringVar(&startSkillID, "skill-id", "", "skill id")
	track.AddCommand(start)

	track.AddCommand(&cobra.Command{
		Use:   "pause",
		Short: "Pause the running session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.TrackerCLI.Pause(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s at %s\n", out.SkillName, out.State, formatClock(out.ElapsedSeconds))
			return nil
		},
	})

	track.AddCommand(&cobra.Command{
		Use:   "resume",
		Short: "Resume a paused session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.TrackerCLI.Resume(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s at %s\n", out.SkillName, out.State, formatClock(out.ElapsedSeconds))
			return nil
		},
	})

	track.AddCommand(&cobra.Command{
		Use:   "stop",
		Short: "Stop and persist the open session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.TrackerCLI.Stop(context.Background())
			if err != nil {
				return err
			}
			if !out.Stopped {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "nothing is being tracked")
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "stopped %s after %s\n", out.SkillName, formatClock(out.ElapsedSeconds))
			return nil
		},
	})

	track.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show the current tracking state",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.TrackerCLI.Status(context.Background())
			if err != nil {
				return err
			}
			if out.State == "idle" {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "idle")
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %s elapsed=%s", out.SkillName, out.State, formatClock(out.ElapsedSeconds))
			if out.PausedSeconds > 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), " paused=%s", formatClock(out.PausedSeconds))
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), " since=%s\n", out.StartedAt.Format("2006-01-02 15:04:05"))
			return nil
		},
	})

	var logSkillID, logDuration, logStartedAt string
	logCmd := &cobra.Command{
		Use:   "log --skill-id <id> --duration <go-duration>",
		Short: "Log a past session without the timer",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(logSkillID) == "" || strings.TrimSpace(logDuration) == "" {
				return fmt.Errorf("--skill-id and --duration are required")
			}
			duration, err := time.ParseDuration(logDuration)
			if err != nil {
				return fmt.Errorf("parse --duration: %w", err)
			}
			startedAt := time.Now().Add(-duration)
			if strings.TrimSpace(logStartedAt) != "" {
				startedAt, err = time.Parse(time.RFC3339, logStartedAt)
				if err != nil {
					return fmt.Errorf("parse --started-at: %w", err)
				}
			}
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.TrackerCLI.Log(context.Background(), logSkillID, startedAt, int64(duration.Seconds()))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "logged %s for %s on %s\n",
				out.SkillName, formatClock(out.DurationSeconds), out.StartedAt.Format("2006-01-02"))
			return nil
		},
	}
	logCmd.Flags().StringVar(&logSkillID, "skill-id", "", "skill id")
	logCmd.Flags().StringVar(&logDuration, "duration", "", "session length, e.g. 45m or 1h30m")
	logCmd.Flags().StringVar(&logStartedAt, "started-at", "", "RFC3339 start time (defaults to now minus duration)")
	track.AddCommand(logCmd)

	var sessionsSkillID string
	sessions := &cobra.Command{
		Use:   "sessions --skill-id <id>",
		Short: "List recorded sessions for a skill",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(sessionsSkillID) == "" {
				return fmt.Errorf("--skill-id is required")
			}
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.TrackerCLI.Sessions(context.Background(), sessionsSkillID)
			if err != nil {
				return err
			}
			if len(out) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no sessions")
				return nil
			}
			for _, s := range out {
				marker := ""
				if s.Open {
					marker = "\topen"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s%s\n",
					s.StartedAt.Format("2006-01-02 15:04"), formatClock(s.DurationSeconds), s.ID, marker)
			}
			return nil
		},
	}
	sessions.Flags().StringVar(&sessionsSkillID, "skill-id", "", "skill id")
	track.AddCommand(sessions)

	return track
}

func newStatsCmd(dataDir *string) *cobra.Command {
	stats := &cobra.Command{Use: "stats", Short: "Pace, projection, and heatmap"}

	var paceSkillID string
	pace := &cobra.Command{
		Use:   "pace --skill-id <id>",
		Short: "Show weekly pace and the projection to mastery",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(paceSkillID) == "" {
				return fmt.Errorf("--skill-id is required")
			}
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.StatsCLI.Pace(context.Background(), paceSkillID)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\npace: %.1f h/week\nconfidence: %s (%d practice days over %d days)\ntrend: %s\nprojection: %s\n",
				out.SkillName, out.HoursPerWeek, out.Confidence, out.UniqueDays, out.SpanDays, out.Trend, out.ProjectionDisplay)

			target, err := app.StatsCLI.Target(context.Background(), paceSkillID)
			if err != nil {
				return err
			}
			if target.TargetHoursPerWeek > 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "target: %.1f h/week gap=%+.1f\nat target: %s\n",
					target.TargetHoursPerWeek, target.GapHoursPerWeek, target.ProjectionDisplay)
			}
			return nil
		},
	}
	pace.Flags().StringVar(&paceSkillID, "skill-id", "", "skill id")
	stats.AddCommand(pace)

	var heatmapSkillID string
	var heatmapWeeks int
	heatmap := &cobra.Command{
		Use:   "heatmap --skill-id <id>",
		Short: "Render the practice heatmap grid",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(heatmapSkillID) == "" {
				return fmt.Errorf("--skill-id is required")
			}
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.StatsCLI.Heatmap(context.Background(), heatmapSkillID, heatmapWeeks)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.SkillName)
			for day := 0; day < 7; day++ {
				label := "  "
				if len(out.Weeks) > 0 && len(out.Weeks[0]) > day {
					label = out.Weeks[0][day].Date.Format("Mon")[:2]
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s ", label)
				for _, week := range out.Weeks {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s ", heatGlyphs[week[day].Level])
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout())
			}
			return nil
		},
	}
	heatmap.Flags().StringVar(&heatmapSkillID, "skill-id", "", "skill id")
	heatmap.Flags().IntVar(&heatmapWeeks, "weeks", 12, "weeks of history to render")
	stats.AddCommand(heatmap)

	var summarySkillID string
	summary := &cobra.Command{
		Use:   "summary --skill-id <id>",
		Short: "Show lifetime totals for a skill",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(summarySkillID) == "" {
				return fmt.Errorf("--skill-id is required")
			}
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.StatsCLI.Summary(context.Background(), summarySkillID)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\ntotal: %.1fh (%.2f%% of 10,000h)\nsessions: %d\n",
				out.SkillName, out.TotalHours, out.Progress*100, out.SessionCount)
			if !out.LastPracticedAt.IsZero() {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "last practiced: %s\n", out.LastPracticedAt.Format("2006-01-02"))
			}
			return nil
		},
	}
	summary.Flags().StringVar(&summarySkillID, "skill-id", "", "skill id")
	stats.AddCommand(summary)

	return stats
}

func newReindexCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the session projection from the journal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			count, err := app.TrackerCLI.Reindex(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "reindexed %d sessions\n", count)
			return nil
		},
	}
}

func newPluginCmd(dataDir *string) *cobra.Command {
	plugin := &cobra.Command{Use: "plugin", Short: "Plugin operations"}

	plugin.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List plugin manifests",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			plugins, err := app.PluginCLI.List(context.Background())
			if err != nil {
				return err
			}
			if len(plugins) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no plugins configured")
				return nil
			}
			for _, p := range plugins {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s@%s enabled=%t binary=%s\n", p.Name, p.Version, p.Enabled, p.Binary)
			}
			return nil
		},
	})

	plugin.AddCommand(&cobra.Command{
		Use:   "doctor",
		Short: "Validate plugin checksums and lifecycle",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			results, err := app.PluginCLI.Doctor(context.Background())
			if err != nil {
				return err
			}
			if len(results) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no plugins configured")
				return nil
			}
			for _, r := range results {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s checksum=%t binary=%t lifecycle=%t", r.Name, r.ChecksumValid, r.BinaryReachable, r.LifecycleOK)
				if r.Error != "" {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), " error=%q", r.Error)
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout())
			}
			return nil
		},
	})

	var commandsPluginName string
	commandsCmd := &cobra.Command{
		Use:   "commands --plugin <name>",
		Short: "List commands exposed by a plugin",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(commandsPluginName) == "" {
				return fmt.Errorf("--plugin is required")
			}
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			commands, err := app.PluginCLI.ListCommands(context.Background(), commandsPluginName)
			if err != nil {
				return err
			}
			if len(commands) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no commands")
				return nil
			}
			for _, item := range commands {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s kind=%s timeout_ms=%d title=%q\n", item.ID, item.Kind, item.TimeoutMS, item.Title)
			}
			return nil
		},
	}
	commandsCmd.Flags().StringVar(&commandsPluginName, "plugin", "", "plugin name")
	plugin.AddCommand(commandsCmd)

	var execPluginName, execCommandID, execInputJSON, execSkillID, execSessionID string
	execCmd := &cobra.Command{
		Use:   "exec --plugin <name> --command <id>",
		Short: "Execute a plugin command capability",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(execPluginName) == "" || strings.TrimSpace(execCommandID) == "" {
				return fmt.Errorf("--plugin and --command are required")
			}
			if err := validateJSONInput(execInputJSON); err != nil {
				return err
			}
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.PluginCLI.Execute(context.Background(), plugindto.ExecuteInput{
				PluginName: execPluginName,
				CommandID:  execCommandID,
				InputJSON:  execInputJSON,
				SkillID:    execSkillID,
				SessionID:  execSessionID,
				DataDir:    *dataDir,
				Cwd:        *dataDir,
			})
			if err != nil {
				return err
			}
			printExecOutput(cmd, out)
			return nil
		},
	}
	execCmd.Flags().StringVar(&execPluginName, "plugin", "", "plugin name")
	execCmd.Flags().StringVar(&execCommandID, "command", "", "command id")
	execCmd.Flags().StringVar(&execInputJSON, "input-json", "", "JSON input payload")
	execCmd.Flags().StringVar(&execSkillID, "skill-id", "", "optional skill id")
	execCmd.Flags().StringVar(&execSessionID, "session-id", "", "optional session id")
	plugin.AddCommand(execCmd)

	var reportPluginName, reportCommandID, reportInputJSON, reportSkillID string
	reportCmd := &cobra.Command{
		Use:   "report --plugin <name> --command <id> --skill-id <id>",
		Short: "Execute a report-capability plugin command",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(reportPluginName) == "" || strings.TrimSpace(reportCommandID) == "" || strings.TrimSpace(reportSkillID) == "" {
				return fmt.Errorf("--plugin, --command, and --skill-id are required")
			}
			if err := validateJSONInput(reportInputJSON); err != nil {
				return err
			}
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.PluginCLI.Report(context.Background(), plugindto.ExecuteInput{
				PluginName: reportPluginName,
				CommandID:  reportCommandID,
				InputJSON:  reportInputJSON,
				SkillID:    reportSkillID,
				DataDir:    *dataDir,
				Cwd:        *dataDir,
			})
			if err != nil {
				return err
			}
			printExecOutput(cmd, out)
			return nil
		},
	}
	reportCmd.Flags().StringVar(&reportPluginName, "plugin", "", "plugin name")
	reportCmd.Flags().StringVar(&reportCommandID, "command", "", "command id")
	reportCmd.Flags().StringVar(&reportInputJSON, "input-json", "", "JSON input payload")
	reportCmd.Flags().StringVar(&reportSkillID, "skill-id", "", "skill id")
	plugin.AddCommand(reportCmd)

	var ttyPluginName, ttyCommandID, ttyInputJSON, ttySkillID, ttySessionID string
	ttyCmd := &cobra.Command{
		Use:   "tty --plugin <name> --command <id>",
		Short: "Prepare and run fullscreen tty plugin command",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(ttyPluginName) == "" || strings.TrimSpace(ttyCommandID) == "" {
				return fmt.Errorf("--plugin and --command are required")
			}
			if err := validateJSONInput(ttyInputJSON); err != nil {
				return err
			}
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			plan, err := app.PluginCLI.PrepareTTY(context.Background(), plugindto.TTYPrepareInput{
				PluginName: ttyPluginName,
				CommandID:  ttyCommandID,
				InputJSON:  ttyInputJSON,
				SkillID:    ttySkillID,
				SessionID:  ttySessionID,
				DataDir:    *dataDir,
				Cwd:        *dataDir,
			})
			if err != nil {
				return err
			}
			return runTTYPlan(plan)
		},
	}
	ttyCmd.Flags().StringVar(&ttyPluginName, "plugin", "", "plugin name")
	ttyCmd.Flags().StringVar(&ttyCommandID, "command", "", "command id")
	ttyCmd.Flags().StringVar(&ttyInputJSON, "input-json", "", "JSON input payload")
	ttyCmd.Flags().StringVar(&ttySkillID, "skill-id", "", "optional skill id")
	ttyCmd.Flags().StringVar(&ttySessionID, "session-id", "", "optional session id")
	plugin.AddCommand(ttyCmd)

	return plugin
}

func printExecOutput(cmd *cobra.Command, out plugindto.ExecuteOutput) {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "plugin=%s command=%s exit=%d\n", out.PluginName, out.CommandID, out.ExitCode)
	if strings.TrimSpace(out.Stdout) != "" {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.Stdout)
	}
	if strings.TrimSpace(out.Stderr) != "" {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), out.Stderr)
	}
	if strings.TrimSpace(out.OutputJSON) != "" {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.OutputJSON)
	}
}

func validateJSONInput(input string) error {
	if strings.TrimSpace(input) == "" {
		return nil
	}
	if !json.Valid([]byte(input)) {
		return fmt.Errorf("--input-json must be valid JSON")
	}
	return nil
}

func runTTYPlan(plan plugindto.TTYPrepareOutput) error {
	if len(plan.Argv) == 0 {
		return fmt.Errorf("plugin tty plan has empty argv")
	}
	cmd := exec.Command(plan.Argv[0], plan.Argv[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if plan.Cwd != "" {
		cmd.Dir = plan.Cwd
	}
	env := os.Environ()
	for key, value := range plan.Env {
		env = append(env, key+"="+value)
	}
	cmd.Env = env
	return cmd.Run()
}

func formatClock(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
}

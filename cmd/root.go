package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/revq/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "revq",
	Short: "Adaptive spaced-repetition review for course material",
	Long:  "revq schedules quiz questions over course chunks: correct answers climb toward the archive shelf, misses reset and pull in prerequisite remediation.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides REVQ_DB env var)")
	rootCmd.PersistentFlags().String("user", "", "Learner ID (overrides REVQ_USER env var)")
	rootCmd.PersistentFlags().String("course", "", "Course ID (overrides REVQ_COURSE env var)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(queueCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then REVQ_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// resolveUser returns the learner ID from --user, REVQ_USER, or "default".
func resolveUser(cmd *cobra.Command) string {
	if u, _ := cmd.Flags().GetString("user"); u != "" {
		return u
	}
	if u := os.Getenv("REVQ_USER"); u != "" {
		return u
	}
	return "default"
}

// resolveCourse returns the course ID from --course, REVQ_COURSE, or
// "default".
func resolveCourse(cmd *cobra.Command) string {
	if c, _ := cmd.Flags().GetString("course"); c != "" {
		return c
	}
	if c := os.Getenv("REVQ_COURSE"); c != "" {
		return c
	}
	return "default"
}

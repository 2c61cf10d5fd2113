package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/revq/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase a learner's review state for a course",
	RunE: func(cmd *cobra.Command, args []string) error {
		user := resolveUser(cmd)
		course := resolveCourse(cmd)

		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			fmt.Printf("Erase all review state for learner %q in course %q? [y/N] ", user, course)
			line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
			if strings.ToLower(strings.TrimSpace(line)) != "y" {
				fmt.Println("Aborted.")
				return nil
			}
		}

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		if err := st.ResetLearner(cmd.Context(), user, course); err != nil {
			return err
		}
		fmt.Println("Review state erased. Imported questions are untouched.")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Skip the confirmation prompt")
}

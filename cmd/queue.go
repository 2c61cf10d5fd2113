package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/revq/internal/session"
)

var queueCmd = &cobra.Command{
	Use:   "queue",
	Short: "Print today's review queue without starting a session",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		st, manager, err := openManager(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		res, err := manager.Start(cmd.Context(), session.StartRequest{
			UserID:   resolveUser(cmd),
			CourseID: resolveCourse(cmd),
			Limit:    limit,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Session %d, %d questions queued\n\n", res.Session, len(res.Queue))
		for i, item := range res.Queue {
			fmt.Printf("%2d. [%-14s p%.1f] %s\n", i+1, item.Reason, item.Priority, item.Question.Text)
		}
		return nil
	},
}

func init() {
	queueCmd.Flags().Int("limit", 0, "Queue size (default 20)")
}

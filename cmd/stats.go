package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/revq/internal/shelf"
	"github.com/abhisek/revq/internal/ui/components"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show course statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, manager, err := openManager(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		user := resolveUser(cmd)
		course := resolveCourse(cmd)

		stats, err := manager.CourseStats(cmd.Context(), user, course)
		if err != nil {
			return err
		}

		fmt.Printf("Course %s (learner %s)\n\n", course, user)
		bar := components.NewMasteryBar("Avg mastery", stats.AvgMastery, 50)
		fmt.Println(bar.View())
		fmt.Println()

		fmt.Printf("Chunks:             %d\n", stats.ChunkCount)
		fmt.Printf("Active:             %d\n", stats.StatusCounts[shelf.StatusActive])
		fmt.Printf("Awaiting follow-up: %d\n", stats.StatusCounts[shelf.StatusPendingFollowup])
		fmt.Printf("Archived:           %d\n", stats.StatusCounts[shelf.StatusArchived])
		fmt.Printf("Follow-ups due:     %d\n", stats.DueFollowups)
		fmt.Printf("Archived due:       %d\n", stats.DueArchived)
		fmt.Printf("Answers logged:     %d\n", stats.TotalAnswered)
		return nil
	},
}

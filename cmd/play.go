package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/revq/internal/app"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start an interactive review session",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, manager, err := openManager(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		return app.Run(app.Deps{
			Manager:  manager,
			UserID:   resolveUser(cmd),
			CourseID: resolveCourse(cmd),
		})
	},
}

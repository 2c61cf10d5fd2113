package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/revq/internal/ingest"
	"github.com/abhisek/revq/internal/store"
)

var importCmd = &cobra.Command{
	Use:   "import <course.json>",
	Short: "Import a course content file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		loader := ingest.NewLoader(st.ChunkRepo(), st.QuestionRepo())
		sum, err := loader.Load(cmd.Context(), f)
		if err != nil {
			return err
		}

		fmt.Printf("Imported course %s: %d chunks, %d new questions\n",
			sum.CourseID, sum.Chunks, sum.Questions)
		return nil
	},
}

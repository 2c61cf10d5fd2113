package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/revq/internal/followup"
	"github.com/abhisek/revq/internal/llm"
	"github.com/abhisek/revq/internal/prereq"
	"github.com/abhisek/revq/internal/queue"
	"github.com/abhisek/revq/internal/session"
	"github.com/abhisek/revq/internal/store"
)

// queueSource composes the store's repos into the builder's storage view.
type queueSource struct {
	store.StatusRepo
	store.QuestionRepo
	store.MasteryRepo
}

// openManager opens the store and wires the session manager on top of it.
// The caller must Close the returned store.
func openManager(cmd *cobra.Command) (*store.Store, *session.Manager, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}

	src := &queueSource{
		StatusRepo:   st.StatusRepo(),
		QuestionRepo: st.QuestionRepo(),
		MasteryRepo:  st.MasteryRepo(),
	}
	builder := queue.NewBuilder(src, prereq.NewEngine(st.QuestionRepo(), st.ChunkRepo()))

	cfg := session.Config{
		Statuses:  st.StatusRepo(),
		Questions: st.QuestionRepo(),
		Mastery:   st.MasteryRepo(),
		Progress:  st.ProgressRepo(),
		Sessions:  st.SessionRepo(),
		Chunks:    st.ChunkRepo(),
		Writer:    st.ReviewWriter(),
		Builder:   builder,
	}

	// Follow-up generation is optional; without a provider misses simply
	// stop spawning remedial questions.
	provider, err := llm.NewProviderFromEnv(context.Background())
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Follow-up generation will be unavailable.")
	} else {
		cfg.Followups = followup.New(provider, st.QuestionRepo())
	}

	return st, session.NewManager(cfg), nil
}

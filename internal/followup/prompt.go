package followup

import (
	"fmt"
	"strings"

	"github.com/abhisek/revq/internal/store"
)

// optionCount is how many answer options every follow-up carries.
const optionCount = 5

const systemPrompt = `You are a tutor writing one remedial follow-up question for a learner who just answered a question wrong.

Rules:
- The follow-up must test the same concept as the original question but one step easier: prefer recall or a simpler application of the idea.
- Base the question strictly on the provided source passage. Do not introduce facts outside it.
- Write in the same language as the original question.
- Provide exactly 5 options where exactly one is correct. Distractors should reflect plausible misunderstandings of the passage, not random values.
- Keep the question text short and self-contained. Plain text only.`

// buildPrompt constructs the user prompt from the missed question.
func buildPrompt(src *store.Question) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Original question: %s\n", src.Text)
	if len(src.Options) > 0 {
		b.WriteString("Original options:\n")
		for i, opt := range src.Options {
			marker := " "
			if i == src.CorrectIndex {
				marker = "*"
			}
			fmt.Fprintf(&b, "%s %d. %s\n", marker, i+1, opt)
		}
	}
	fmt.Fprintf(&b, "Cognitive level: %s\n", src.Bloom)
	if len(src.Concepts) > 0 {
		fmt.Fprintf(&b, "Concepts: %s\n", strings.Join(src.Concepts, ", "))
	}

	if src.Evidence != "" {
		b.WriteString("\nSource passage:\n")
		b.WriteString(src.Evidence)
		b.WriteString("\n")
	}

	return b.String()
}

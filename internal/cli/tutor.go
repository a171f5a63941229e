package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/flashcard-tutor/internal/service/tutor"
)

// NewExplainCommand creates the explain command.
func NewExplainCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "explain <question>",
		Short: "Explain the concept behind a flashcard question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, rootOpts, func(env *Env) error {
				if err := env.requireLLM(); err != nil {
					return err
				}
				text, err := env.Services.Tutor.Explain(cmd.Context(), tutor.ExplainInput{
					Front: strings.Join(args, " "),
				})
				if err != nil {
					return describe(err)
				}

				out := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
				return out.Print(map[string]string{"explanation": text}, func(w io.Writer) error {
					_, err := fmt.Fprintln(w, text)
					return err
				})
			})
		},
	}
}

type gradeOptions struct {
	front   string
	correct string
	answer  string
}

// NewGradeCommand creates the grade command.
func NewGradeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &gradeOptions{}

	cmd := &cobra.Command{
		Use:     "grade",
		Short:   "Grade an answer against the correct one",
		Example: `  flashcards grade --front "What is a goroutine?" --correct "A lightweight thread" --answer "a thread"`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, rootOpts, func(env *Env) error {
				if err := env.requireLLM(); err != nil {
					return err
				}
				grade, err := env.Services.Tutor.Grade(cmd.Context(), tutor.GradeInput{
					Front:      opts.front,
					Correct:    opts.correct,
					UserAnswer: opts.answer,
				})
				if err != nil {
					return describe(err)
				}

				out := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
				return out.Print(grade, func(w io.Writer) error {
					return writeGrade(w, grade)
				})
			})
		},
	}

	cmd.Flags().StringVar(&opts.front, "front", "", "the flashcard question (required)")
	cmd.Flags().StringVar(&opts.correct, "correct", "", "the correct answer (required)")
	cmd.Flags().StringVar(&opts.answer, "answer", "", "the answer to grade")
	_ = cmd.MarkFlagRequired("front")
	_ = cmd.MarkFlagRequired("correct")

	return cmd
}

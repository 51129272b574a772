package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizgen/internal/cli"
	"github.com/abhisek/quizgen/internal/quiz"
	"github.com/abhisek/quizgen/internal/session"
)

var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Take a quiz in plain line mode",
	Long: `Generate a quiz and answer it line by line on stdin. Useful over SSH or in
terminals without full-screen support. The API key is read from the
configuration or asked for when missing.`,
	Example: `  quizgen ask --subject "Roman history" --level intermediate`,
	RunE: func(cmd *cobra.Command, args []string) error {
		subject, _ := cmd.Flags().GetString("subject")
		levelVal, _ := cmd.Flags().GetString("level")

		level, err := quiz.ParseProficiency(levelVal)
		if err != nil {
			return fmt.Errorf("%w (see 'quizgen levels')", err)
		}

		rt, err := newRuntime()
		if err != nil {
			return err
		}
		defer rt.Close()

		return cli.NewAskCLI(os.Stdin, cmd.OutOrStdout()).Run(cmd.Context(), session.New(), rt.generator, session.GenerateInput{
			Subject:     subject,
			Proficiency: level,
			Credential:  cfg.LLM.APIKey,
		})
	},
}

func init() {
	askCmd.Flags().StringP("subject", "s", "", "Quiz subject (required)")
	askCmd.Flags().StringP("level", "l", "", "Proficiency level (required)")
	_ = askCmd.MarkFlagRequired("subject")
	_ = askCmd.MarkFlagRequired("level")
}

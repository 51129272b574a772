package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/quizgen/internal/app"
	"github.com/abhisek/quizgen/internal/session"
)

var playCmd = &cobra.Command{
	Use:         "play",
	Short:       "Start the interactive quiz (default command)",
	Annotations: map[string]string{tuiAnnotation: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd)
	},
}

// runTUI builds the dependencies and launches the terminal UI.
func runTUI(cmd *cobra.Command) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	return app.Run(cmd.Context(), app.Options{
		Session:    session.New(),
		Generator:  rt.generator,
		Credential: cfg.LLM.APIKey,
		Status:     rt.status(),
	})
}

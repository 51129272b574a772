package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizgen/internal/quiz"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the effective configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the merged configuration with secrets redacted",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := cfg.YAML()
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		if f := cfg.File(); f != "" {
			fmt.Fprintf(w, "# loaded from %s\n", f)
		} else {
			fmt.Fprintln(w, "# no config file found; defaults and environment only")
		}
		_, err = w.Write(out)
		return err
	},
}

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the proficiency levels",
	Run: func(cmd *cobra.Command, args []string) {
		for _, p := range quiz.Proficiencies() {
			fmt.Fprintln(cmd.OutOrStdout(), p)
		}
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
}

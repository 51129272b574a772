package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/quizgen/internal/session"
	"github.com/abhisek/quizgen/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the quiz as a local web page",
	Long: `Serve the quiz over HTTP. The server keeps a single quiz session for the
whole process and is meant for local, single-user use.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}
		defer rt.Close()

		srv, err := web.New(web.Options{
			Session:     session.New(),
			Generator:   rt.generator,
			Credential:  cfg.LLM.APIKey,
			CORSOrigins: cfg.Server.CORSOrigins,
			Status:      rt.status(),
		})
		if err != nil {
			return err
		}
		cmd.Printf("Serving quizgen on http://%s\n", cfg.Server.Addr)
		return srv.ListenAndServe(cmd.Context(), cfg.Server.Addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default 127.0.0.1:8080)")
}

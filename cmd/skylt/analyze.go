package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"

	"github.com/hazyhaar/skylt/dbopen"
	"github.com/hazyhaar/skylt/kit"
	"github.com/hazyhaar/skylt/runstore"
	"github.com/hazyhaar/skylt/scan"
)

func newAnalyzeCmd() *cobra.Command {
	var (
		export  bool
		pageURL string
	)

	cmd := &cobra.Command{
		Use:   "analyze <file-or-url>",
		Short: "Analyze one page and print the classification",
		Long: `Analyze a local HTML file or a URL. Results are printed as JSON and
persisted to the run database. With --export, a report artifact is also
written to the export directory.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := args[0]

			cfg, err := scan.LoadConfig(configPath)
			if err != nil {
				return err
			}
			db, err := dbopen.Open(cfg.DBPath, dbopen.WithMkdirAll())
			if err != nil {
				return err
			}
			defer db.Close()

			svc, err := scan.New(db, *cfg)
			if err != nil {
				return err
			}
			defer svc.Close()

			ctx := kit.WithTransport(cmd.Context(), "cli")

			var pageHTML []byte
			var run *runstore.Run
			if strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") {
				run, err = svc.AnalyzeURL(ctx, target)
			} else {
				pageHTML, err = os.ReadFile(target)
				if err != nil {
					return fmt.Errorf("read %s: %w", target, err)
				}
				run, err = svc.AnalyzeHTML(ctx, pageHTML, pageURL)
			}
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(run, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))

			if export {
				path, err := svc.ExportRun(ctx, run.RunID, pageHTML)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "exported: %s\n", path)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&export, "export", false, "Also write a report artifact")
	cmd.Flags().StringVar(&pageURL, "page-url", "", "Page URL to record when analyzing a local file")
	return cmd
}

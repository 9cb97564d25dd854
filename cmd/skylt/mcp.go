package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"

	"github.com/hazyhaar/skylt/dbopen"
	"github.com/hazyhaar/skylt/scan"
)

func newMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Run the MCP server over stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
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

			srv := mcp.NewServer(&mcp.Implementation{Name: "skylt", Version: "0.1.0"}, nil)
			svc.RegisterMCP(srv)

			return srv.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/mkraft/missiontext/server"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog over a JSON HTTP API",
		Long: `Expose the catalog read-only over HTTP: corpus stats, document
listings, and the fetch log. Runs until interrupted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = a.cfg.Serve.Addr
			}

			db, store, err := a.openCatalog()
			if err != nil {
				return err
			}
			defer db.Close()

			srv := server.New(store, server.Config{Addr: addr, Logger: a.logger})
			return srv.ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address")

	return cmd
}

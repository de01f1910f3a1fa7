package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"space/internal/appstate"
	"space/internal/config"
	"space/internal/db"
	"space/internal/logger"
)

var cardsCmd = &cobra.Command{
	Use:   "cards",
	Short: "Print appliance cards in display order",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}
		if dbPath, _ := cmd.Flags().GetString("db"); dbPath != "" {
			cfg.DBPath = dbPath
		}
		logger.SetLevel(logger.WarnLevel)

		conn, err := db.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer db.Close(conn)

		board := appstate.NewBoard(db.NewApplianceRepository(conn), nil)
		if err := board.Load(); err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, c := range board.Cards() {
			line := fmt.Sprintf("%-6s %-8s %-10s %s", c.Name, c.Location, c.Primary, c.Summary)
			if c.Secondary != nil {
				line += " (" + *c.Secondary + ")"
			}
			fmt.Fprintln(out, line)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cardsCmd)
	cardsCmd.Flags().String("db", "", "Database path, overrides config")
}

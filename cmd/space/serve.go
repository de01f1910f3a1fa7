package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"space/internal/app"
	"space/internal/config"
	"space/internal/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}

		gin.SetMode(gin.ReleaseMode)
		a := app.NewApp(cfg)
		if err := a.Initialize(); err != nil {
			logger.Error("Init error: %v", err)
			return err
		}
		if err := a.Start(); err != nil {
			logger.Error("Start error: %v", err)
			return err
		}

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			logger.Info("Received %v, shutting down", sig)
		case err := <-a.Errors():
			if err != nil {
				logger.Error("Server stopped: %v", err)
			}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.Stop(ctx); err != nil {
			logger.Error("Stop error: %v", err)
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

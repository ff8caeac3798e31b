package cmd

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/ZacxDev/go-static-blog/builder"
	"github.com/ZacxDev/go-static-blog/handlers"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Build the site and serve it locally",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		port, _ := cmd.Flags().GetString("port")
		watch, _ := cmd.Flags().GetBool("watch")

		site, err := loadConfig()
		if err != nil {
			return err
		}
		logger := newLogger()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		b := builder.New(site, logger)
		result, err := b.Run(ctx)
		if err != nil {
			return err
		}

		preview := handlers.NewPreview(site.OutputDir)
		if err := preview.Update(result.Sitemap); err != nil {
			return err
		}

		if watch {
			go func() {
				err := b.Watch(ctx, func(r *builder.Result) {
					if err := preview.Update(r.Sitemap); err != nil {
						logger.Warn("Sitemap update failed", "error", err)
					}
				})
				if err != nil {
					logger.Error("Watcher stopped", "error", err)
				}
			}()
		}

		server := &http.Server{
			Addr:              ":" + port,
			Handler:           handlers.SetupRouter(preview),
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(shutdownCtx)
		}()

		logger.Info("Starting server", "url", "http://localhost:"+port, "watch", watch)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.WithStack(err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "9010", "Port to run the server on")
	serveCmd.Flags().BoolP("watch", "w", false, "Rebuild when sources change")
}

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/h1w0xxx/molrec/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the molfile parse and render API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("addr", ":28416", "Listen address")
	serveCmd.Flags().String("library", "", "Indexed SD file served by /api/molecule/random")
	serveCmd.Flags().Int("size", 600, "Longest rendered image side in pixels")
	serveCmd.Flags().Int("max-results", 1024, "Parse results kept for GET /api/molecule/{id}")
	serveCmd.Flags().Duration("result-ttl", time.Hour, "How long a parse result can be fetched")

	_ = viper.BindPFlag("addr", serveCmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag("library", serveCmd.Flags().Lookup("library"))
	_ = viper.BindPFlag("size", serveCmd.Flags().Lookup("size"))
	_ = viper.BindPFlag("max_results", serveCmd.Flags().Lookup("max-results"))
	_ = viper.BindPFlag("result_ttl", serveCmd.Flags().Lookup("result-ttl"))

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := slog.Default()
	srv, err := server.New(server.Options{
		Parse:    parseOptions(),
		Logger:   logger,
		Library:  viper.GetString("library"),
		MaxSize:  viper.GetInt("size"),
		FontPath: viper.GetString("font"),

		MaxResults: viper.GetInt("max_results"),
		ResultTTL:  viper.GetDuration("result_ttl"),
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	httpSrv := &http.Server{
		Addr:              viper.GetString("addr"),
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server listening", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		return srv.WatchLibrary(gctx)
	})
	return g.Wait()
}

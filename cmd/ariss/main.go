package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ariss-articles/internal/config"
	"ariss-articles/internal/datetext"
	"ariss-articles/internal/logging"
	"ariss-articles/internal/newsletter"
	"ariss-articles/internal/pipeline"
	"ariss-articles/internal/render"
	web "ariss-articles/internal/server"
	"ariss-articles/internal/store"
	"ariss-articles/internal/worker"

	"github.com/goodsign/monday"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	logger     *zap.Logger
	cfg        *config.Config
	configPath string
	logLevel   string
	redisAddr  string
	badgerPath string
)

var rootCmd = &cobra.Command{
	Use:   "ariss",
	Short: "ariss - Turn the ARISS newsletter into contact articles",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		if flags.Changed("log-level") {
			cfg.Logging.Level = logLevel
		}
		if flags.Changed("redis") {
			cfg.Server.Redis = redisAddr
		}
		if flags.Changed("badger") {
			cfg.Server.Badger = badgerPath
		}

		logger, err = logging.New(cfg.Logging.Level)
		return err
	},
}

// newGenerator builds the parse/render pipeline from the configuration.
func newGenerator() (*newsletter.Parser, *pipeline.Generator, error) {
	locales, err := datetext.ParseLocales(cfg.Parser.DateLocales)
	if err != nil {
		return nil, nil, err
	}
	parser := newsletter.NewParser(datetext.NewParser(locales...), logger)

	renderer, err := render.NewRenderer(cfg.Render.Timezone, monday.Locale(cfg.Render.Locale))
	if err != nil {
		return nil, nil, err
	}
	return parser, pipeline.NewGenerator(parser, renderer, logger), nil
}

var serverCmd = &cobra.Command{
	Use:   "server [source]",
	Short: "Start the refresh worker and the article viewer",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Setup Signal Handling (Ctrl+C)
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

		// Setup Manual 'q' input handling
		go func() {
			scanner := bufio.NewScanner(os.Stdin)
			for scanner.Scan() {
				if scanner.Text() == "q" {
					fmt.Println(" 'q' pressed. Stopping...")
					cancel()
					return
				}
			}
		}()

		// Handle shutdown signals
		go func() {
			<-sigChan
			logger.Info("Shutting down...")
			cancel()
		}()

		// Initialize Store (FULL MODE - Redis + Badger)
		st, err := store.NewHybridStore(cfg.Server.Redis, cfg.Server.Badger)
		if err != nil {
			logger.Fatal("Failed to init store", zap.Error(err))
		}
		defer st.Close()

		parser, gen, err := newGenerator()
		if err != nil {
			logger.Fatal("Failed to init generator", zap.Error(err))
		}

		src := cfg.Newsletter.URL
		if len(args) > 0 {
			src = args[0]
		}

		// Start Worker, refresh once now and then periodically
		w := worker.NewWorker(st, parser, cfg.Newsletter.Timeout, logger)
		go w.Start(ctx)
		if err := st.Enqueue(ctx, src); err != nil {
			logger.Error("Failed to queue first refresh", zap.Error(err))
		}
		go w.Schedule(ctx, src, cfg.Server.RefreshInterval)

		srv := web.NewServer(st, gen, src, logger)
		go func() {
			if err := srv.Start(cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("Web server failed", zap.Error(err))
				cancel()
			}
		}()

		logger.Info("Server running.", zap.String("source", src))
		fmt.Println("Press 'q' + Enter or Ctrl+C to stop.")

		// Block until shutdown
		<-ctx.Done()

		shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
		defer stop()
		if err := srv.Stop(shutdownCtx); err != nil {
			logger.Error("Web server shutdown failed", zap.Error(err))
		}
		logger.Info("Goodbye!")
	},
}

var listSources bool

var queueCmd = &cobra.Command{
	Use:   "queue [source]",
	Short: "Ask a running server to refresh a newsletter source",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		// Initialize Store (CLIENT MODE - Redis Only)
		// Passing "" as the second argument ensures we don't try to open the BadgerDB file lock.
		st, err := store.NewHybridStore(cfg.Server.Redis, "")
		if err != nil {
			logger.Fatal("Failed to init store", zap.Error(err))
		}
		defer st.Close()

		ctx := context.Background()
		if listSources {
			printSources(ctx, st)
			return
		}

		src := cfg.Newsletter.URL
		if len(args) > 0 {
			src = args[0]
		}
		if err := st.Enqueue(ctx, src); err != nil {
			logger.Fatal("Failed to queue refresh", zap.Error(err))
		}
		logger.Info("Refresh queued", zap.String("source", src))
	},
}

func printSources(ctx context.Context, st *store.HybridStore) {
	sources, err := st.Sources(ctx, 50)
	if err != nil {
		logger.Fatal("Failed to list sources", zap.Error(err))
	}
	for _, src := range sources {
		snap, err := st.LatestSnapshot(ctx, src)
		if err != nil {
			fmt.Printf("%s\t-\n", src)
			continue
		}
		fmt.Printf("%s\t%s\t%s\t%s\n", src, snap.Status, snap.FetchedAt.Format(time.RFC3339), snap.ErrorMessage)
	}
}

func main() {
	defer func() {
		if logger != nil {
			logger.Sync()
		}
	}()

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&redisAddr, "redis", "localhost:6379", "Address of Redis server")
	rootCmd.PersistentFlags().StringVar(&badgerPath, "badger", "./badger-data", "Path to BadgerDB data directory")

	queueCmd.Flags().BoolVar(&listSources, "list", false, "List known sources and their last refresh")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(queueCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

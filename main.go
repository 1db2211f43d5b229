package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"skytheme/api"
	"skytheme/codec"
	"skytheme/config"
	"skytheme/model"
	"skytheme/palette"
	"skytheme/preview"
	"skytheme/storage"
	"skytheme/style"
)

var (
	dataDir     string
	listen      string
	listenPort  int
	themeFlag   string
	formatFlag  string
	appVersion  = "0.1.0"
	shutdownTTL = 5 * time.Second
)

var rootCmd = &cobra.Command{
	Use:   "skytheme",
	Short: "skytheme – weather theme table and style generator",
	Long:  "Skytheme holds the weather-condition theme table and renders the styles a frontend toolchain consumes.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return palette.ValidateTable()
	},
	RunE: runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve themes, stylesheets and live theme changes over HTTP",
	RunE:  runServe,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the themes",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		for _, t := range palette.All() {
			fmt.Fprintf(out, "%-8s %s %s %s  button %s  %s\n",
				t.ID, t.Gradient.Start, t.Gradient.Middle, t.Gradient.End, t.Button, t.MainTextClass)
		}
	},
}

var showCmd = &cobra.Command{
	Use:   "show <theme>",
	Short: "Show one theme as YAML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := palette.ParseID(args[0])
		if err != nil {
			return err
		}
		t := palette.MustLookup(id)
		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		if err := enc.Encode(map[model.ThemeID]model.Wire{id: t.ToWire()}); err != nil {
			return err
		}
		return enc.Close()
	},
}

var cssCmd = &cobra.Command{
	Use:   "css",
	Short: "Write the generated stylesheet to stdout",
	RunE: func(cmd *cobra.Command, args []string) error {
		themes := palette.All()
		if themeFlag != "" {
			id, err := palette.ParseID(themeFlag)
			if err != nil {
				return err
			}
			themes = []model.Theme{palette.MustLookup(id)}
		}
		_, err := fmt.Fprint(cmd.OutOrStdout(), style.Stylesheet(themes))
		return err
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the theme table (json, yaml) or the toolchain document (tailwind) to stdout",
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			data []byte
			err  error
		)
		if formatFlag == "tailwind" {
			cfg, cerr := config.Load(dataDir)
			if cerr != nil {
				return fmt.Errorf("load config: %w", cerr)
			}
			data, err = codec.MarshalDocument(style.TailwindConfig(palette.All(), cfg.Content))
		} else {
			format, ferr := codec.ParseFormat(formatFlag)
			if ferr != nil {
				return ferr
			}
			data, err = codec.Marshal(format, palette.All())
		}
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Render the stylesheet, toolchain document and theme table into <data-dir>/dist",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		store := storage.New(cfg.DataDir)
		if err := storage.Build(store, palette.All(), cfg.Content); err != nil {
			return err
		}
		artifacts, err := store.List()
		if err != nil {
			return err
		}
		for _, a := range artifacts {
			log.Info().Str("artifact", filepath.Join(store.Dir(), a.Name)).Int64("size", a.Size).Msg("wrote")
		}
		return nil
	},
}

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Render theme swatches in the terminal",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), preview.Render(palette.All()))
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
	Long:  "Manage skytheme configuration files.",
}

var configGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a default configuration file",
	Long:  "Generate a default skytheme.yaml file in the specified data directory (or current directory if not specified).",
	RunE:  runConfigGenerate,
}

func init() {
	wd, _ := os.Getwd()
	rootCmd.Version = appVersion
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", wd, "Data directory (default: current directory)")

	for _, c := range []*cobra.Command{rootCmd, serveCmd} {
		c.Flags().StringVar(&listen, "listen", "all", "IP address to listen on (default: all)")
		c.Flags().IntVar(&listenPort, "listen-port", 8080, "Port to listen on (default: 8080)")
	}
	cssCmd.Flags().StringVar(&themeFlag, "theme", "", "Only render this theme")
	exportCmd.Flags().StringVar(&formatFlag, "format", "yaml", "Output format: json, yaml or tailwind")

	configCmd.AddCommand(configGenerateCmd)
	rootCmd.AddCommand(serveCmd, listCmd, showCmd, cssCmd, exportCmd, buildCmd, previewCmd, configCmd)
}

func setupLogger(environment string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if environment == config.EnvDevelopment {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

// loadConfig reads the config from the data dir and applies explicitly set
// flags on top of it.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(dataDir)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	setupLogger(cfg.Environment)

	if cmd.Flags().Changed("data-dir") {
		cfg.DataDir = dataDir
	}
	if cmd.Flags().Changed("listen") || cmd.Flags().Changed("listen-port") {
		if listen != "" && listen != "all" {
			cfg.ListenAddr = net.JoinHostPort(listen, fmt.Sprint(listenPort))
		} else {
			cfg.ListenAddr = fmt.Sprintf(":%d", listenPort)
		}
	}

	dataDirAbs, err := filepath.Abs(cfg.DataDir)
	if err != nil {
		return config.Config{}, fmt.Errorf("resolve data dir: %w", err)
	}
	cfg.DataDir = dataDirAbs
	return cfg, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	store := storage.New(cfg.DataDir)
	if err := store.EnsureDirs(); err != nil {
		return fmt.Errorf("ensure data dir: %w", err)
	}

	apiServer := api.NewServer(store, cfg.ActiveTheme, cfg.Content, activeSaver(cfg))

	mux := http.NewServeMux()
	apiServer.Register(mux)

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		printListeningAddresses(cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTTL)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// activeSaver returns the callback that persists active theme changes. It
// owns its own copy of cfg; saves are serialized so the temp file is never
// shared between writers.
func activeSaver(cfg config.Config) api.ActiveChangeFunc {
	var mu sync.Mutex
	return func(id model.ThemeID) {
		mu.Lock()
		defer mu.Unlock()
		cfg.ActiveTheme = id
		if err := config.Save(cfg); err != nil {
			log.Error().Err(err).Msg("failed to save config")
		}
	}
}

func runConfigGenerate(cmd *cobra.Command, args []string) error {
	dataDirAbs, err := filepath.Abs(dataDir)
	if err != nil {
		return fmt.Errorf("resolve data dir: %w", err)
	}

	cfg := config.Default()
	cfg.DataDir = dataDirAbs

	cfgPath := config.Path(dataDirAbs)
	if _, err := os.Stat(cfgPath); err == nil {
		return fmt.Errorf("config file already exists: %s", cfgPath)
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Generated default config file: %s\n", cfgPath)
	return nil
}

func printListeningAddresses(addr string) {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		log.Info().Msgf("listening on http://%s", addr)
		return
	}

	if host != "" && host != "0.0.0.0" && host != "::" {
		log.Info().Msgf("listening on http://%s", net.JoinHostPort(host, port))
		return
	}

	addrs, err := net.InterfaceAddrs()
	if err != nil {
		log.Info().Msgf("listening on http://0.0.0.0:%s", port)
		return
	}
	for _, a := range addrs {
		if ipnet, ok := a.(*net.IPNet); ok && !ipnet.IP.IsLoopback() && ipnet.IP.To4() != nil {
			log.Info().Msgf("listening on http://%s:%s", ipnet.IP.String(), port)
		}
	}
	log.Info().Msgf("listening on http://localhost:%s", port)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

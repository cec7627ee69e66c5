package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/san-kum/scribblepad/internal/config"
	"github.com/san-kum/scribblepad/internal/observability"
)

const envPrefix = "SCRIBBLEPAD"

var (
	cfgFile string
	cfg     *config.Config
	v       = viper.New()
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := newRootCmd().ExecuteContext(ctx)
	observability.Sync()
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "scribblepad",
		Short:         "chaotic attractor sketchpad and site category generator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initializeConfig(cmd); err != nil {
				observability.InitializeLogger(config.DefaultConfig().Logger)
				return err
			}
			observability.InitializeLogger(cfg.Logger)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd, args)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&cfgFile, "config", "c", "", "config file (default is ./scribblepad.yaml)")
	pf.String("data", config.DefaultConfig().Storage.DataDir, "data directory for recorded runs")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	pf.String("log-file", "", "also write JSON logs to this rotating file")
	_ = v.BindPFlag("storage.data_dir", pf.Lookup("data"))
	_ = v.BindPFlag("logger.level", pf.Lookup("log-level"))
	_ = v.BindPFlag("logger.log_file", pf.Lookup("log-file"))

	root.AddCommand(
		newPlayCmd(),
		newRenderCmd(),
		newTraceCmd(),
		newAnalyzeCmd(),
		newRunsCmd(),
		newPresetsCmd(),
		newSiteCmd(),
		newConfigCmd(),
	)
	return root
}

// initializeConfig merges defaults, the config file, SCRIBBLEPAD_* env vars
// and bound flags into cfg.
func initializeConfig(cmd *cobra.Command) error {
	config.SetDefaults(v)
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("scribblepad")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	c, err := config.FromViper(v)
	if err != nil {
		return err
	}
	cfg = c
	return nil
}

func logger() *zap.Logger {
	return observability.GetLogger()
}

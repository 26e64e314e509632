package cli

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"weatherstack-check/config"
	"weatherstack-check/pkg/logger"
	"weatherstack-check/pkg/observe"
)

type rootOptions struct {
	cfgPath string
	debug   bool
}

// Execute runs the command line and exits with status 1 on any error,
// failed scenarios included.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "weather-check",
		Short: "Conformance checks for the weatherstack API",
		Long: `weather-check calls the weatherstack current, historical and forecast endpoints,
validates every answer and reports pass, fail or skip per scenario.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.cfgPath, "config", "", "config file (default $CONFIG_PATH or "+config.DefaultConfigPath+")")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")

	cmd.AddCommand(newRunCommand(opts), newStubCommand(opts))

	return cmd
}

func (o *rootOptions) loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if o.cfgPath == "" {
		cfg, err = config.NewConfig()
	} else {
		cfg, err = config.NewConfigWithProvider(config.NewFileConfigProvider(o.cfgPath))
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load config")
	}
	return cfg, nil
}

// newLogger writes JSON lines to w. With a Sentry DSN configured, error
// entries are forwarded to Sentry as well. The returned func flushes both.
func (o *rootOptions) newLogger(cfg *config.Config, w io.Writer) (*logger.Logger, func(), error) {
	level := cfg.Log.Level
	if o.debug {
		level = "debug"
	}

	writers := []io.Writer{w}
	var hook *observe.SentryHook
	if cfg.App.SentryDSN != "" {
		var err error
		hook, err = observe.NewSentryHook(cfg.App.Env, cfg.App.Name, o.debug || cfg.IsDevelopment(), cfg.App.SentryDSN)
		if err != nil {
			return nil, nil, errors.Wrap(err, "failed to init sentry")
		}
		writers = append(writers, hook)
	}

	l := logger.NewZapLogger(logger.Options{
		AppName: cfg.App.Name,
		AppEnv:  cfg.App.Env,
		Level:   level,
	}, writers...)

	stop := func() {
		_ = l.Stop()
		if hook != nil {
			hook.Flush()
		}
	}

	return l, stop, nil
}

package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	v1 "weatherstack-check/internal/controllers/http/v1"
	"weatherstack-check/internal/services/stub"
	"weatherstack-check/pkg/httpserver"
)

type stubOptions struct {
	addr string
	plan string
	key  string
}

// @title weatherstack stub
// @version 1.0.0
// @description Local weatherstack-compatible API used to run the conformance scenarios offline.
// @contact.name weatherstack-check maintainers
// @BasePath /
// @schemes http
// @tag.name Weather
// @tag.description weatherstack-compatible endpoints served by the local stub
func newStubCommand(root *rootOptions) *cobra.Command {
	opts := &stubOptions{}

	cmd := &cobra.Command{
		Use:   "stub",
		Short: "Serve a local weatherstack-compatible API",
		Long: `stub answers /current, /historical and /forecast for a fixed set of cities,
including the provider's in-band error objects. Point WEATHERSTACK_BASE_URL at it
to run the scenarios offline.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStub(cmd, root, opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (default from stub.addr)")
	cmd.Flags().StringVar(&opts.plan, "plan", "", "subscription plan to imitate: free or paid (default from stub.plan)")
	cmd.Flags().StringVar(&opts.key, "key", "", "access key the stub accepts (default from stub.key)")

	return cmd
}

func runStub(cmd *cobra.Command, root *rootOptions, opts *stubOptions) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	if opts.addr != "" {
		cfg.Stub.Addr = opts.addr
	}
	if opts.plan != "" {
		cfg.Stub.Plan = opts.plan
	}
	if opts.key != "" {
		cfg.Stub.Key = opts.key
	}

	plan, err := stub.ParsePlan(cfg.Stub.Plan)
	if err != nil {
		return err
	}
	if cfg.Stub.Key == "" {
		return errors.New("stub key cannot be empty")
	}

	l, stop, err := root.newLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer stop()

	app := httpserver.InitFiberServer(cfg.App.Name+"-stub", l)
	v1.NewRouter(app, stub.NewProvider(cfg.Stub.Key, plan), l)

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(cfg.Stub.Addr)
	}()

	l.Info("stub server started", map[string]any{"addr": cfg.Stub.Addr, "plan": string(plan)})

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case err := <-errCh:
		return errors.Wrap(err, "cannot run the stub server")
	case <-sigCh:
		l.Warning("received shutdown signal")
	case <-cmd.Context().Done():
		l.Warning("context cancelled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return app.ShutdownWithContext(shutdownCtx)
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v2"

	"orderdesk/internal/apiclient"
	"orderdesk/internal/config"
	httpapi "orderdesk/internal/http"
	"orderdesk/internal/http/flash"
	"orderdesk/internal/mockapi"
	"orderdesk/internal/render"
	"orderdesk/internal/repository"
	"orderdesk/internal/service"
	"orderdesk/internal/state"
	"orderdesk/internal/view"

	_ "orderdesk/docs"
)

// @title orderdesk mock API
// @version 1.0
// @description In-memory backend for the orderdesk console.
// @host localhost:8080
// @BasePath /api
func main() {
	app := &cli.App{
		Name:  "orderdesk",
		Usage: "order management console for the clients/products/orders API",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "path to YAML config file", EnvVars: []string{"ORDERDESK_CONFIG"}},
			&cli.StringFlag{Name: "api", Usage: "backend base URL (overrides API_BASE_URL)"},
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "run the web console",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "addr", Usage: "listen address (overrides HTTP_ADDR)"},
				},
				Action: serve,
			},
			{
				Name:  "dump",
				Usage: "load all data once and print the tables",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: "text", Usage: "text, json or yaml"},
				},
				Action: dump,
			},
			{
				Name:  "mock-api",
				Usage: "run the in-memory backend",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "addr", Usage: "listen address (overrides MOCK_ADDR)"},
					&cli.BoolFlag{Name: "seed", Usage: "fill the store with demo data"},
				},
				Action: mockAPI,
			},
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := app.RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type env struct {
	cfg *config.Config
	log *slog.Logger
}

// setup логи пишутся в logOut: для dump это stderr, stdout занят таблицами
func setup(c *cli.Context, logOut io.Writer) (*env, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}
	if v := c.String("api"); v != "" {
		cfg.API.BaseURL = v
	}
	log := slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(log)
	if cfg.SlogLevel() != slog.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}
	return &env{cfg: cfg, log: log}, nil
}

func newServices(e *env) *service.Services {
	api := apiclient.New(e.cfg.API.BaseURL, e.cfg.API.Timeout, e.log)
	return service.NewServices(api.Clients, api.Products, api.Orders, e.log)
}

func serve(c *cli.Context) error {
	e, err := setup(c, os.Stdout)
	if err != nil {
		return err
	}
	addr := e.cfg.HTTP.Addr
	if v := c.String("addr"); v != "" {
		addr = v
	}

	svc := newServices(e)
	st := state.New()
	// неудачная начальная загрузка не мешает старту: ошибка видна на странице
	_ = svc.Loader.Load(c.Context, st)

	html, err := render.NewHTML()
	if err != nil {
		return err
	}
	codec := flash.NewCodec([]byte(e.cfg.Flash.Secret), "orderdesk_flash", e.cfg.Flash.Secure)
	srv := httpapi.NewServer(st, svc, html, codec, e.log)

	return listen(c.Context, e.log, &http.Server{Addr: addr, Handler: srv.Engine()})
}

func dump(c *cli.Context) error {
	e, err := setup(c, os.Stderr)
	if err != nil {
		return err
	}
	r, err := render.ByFormat(c.String("format"))
	if err != nil {
		return err
	}
	st := state.New()
	if err := newServices(e).Loader.Load(c.Context, st); err != nil {
		return errors.New(service.UserMessage(err))
	}
	return r.Page(os.Stdout, view.BuildPage(st.Snapshot(), nil))
}

func mockAPI(c *cli.Context) error {
	e, err := setup(c, os.Stdout)
	if err != nil {
		return err
	}
	addr := e.cfg.Mock.Addr
	if v := c.String("addr"); v != "" {
		addr = v
	}
	store := repository.NewMemoryStore()
	if c.Bool("seed") {
		if err := repository.Seed(c.Context, store); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
	}
	return listen(c.Context, e.log, &http.Server{Addr: addr, Handler: mockapi.NewServer(store, e.log).Engine()})
}

// listen обслуживает запросы до отмены ctx, затем плавно останавливается
func listen(ctx context.Context, log *slog.Logger, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info("http_listen", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown_error", slog.Any("err", err))
		return err
	}
	log.Info("http_stopped", slog.String("addr", srv.Addr))
	return nil
}

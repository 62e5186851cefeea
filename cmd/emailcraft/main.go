package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/emailcraft/modules/editor"
	"github.com/dmitrymomot/emailcraft/pkg/clientip"
	"github.com/dmitrymomot/emailcraft/pkg/config"
	"github.com/dmitrymomot/emailcraft/pkg/email"
	"github.com/dmitrymomot/emailcraft/pkg/environment"
	"github.com/dmitrymomot/emailcraft/pkg/file"
	"github.com/dmitrymomot/emailcraft/pkg/httpserver"
	"github.com/dmitrymomot/emailcraft/pkg/imagegen"
	"github.com/dmitrymomot/emailcraft/pkg/logger"
	"github.com/dmitrymomot/emailcraft/pkg/requestid"
)

// AppConfig holds process-wide settings.
type AppConfig struct {
	Env  string `env:"APP_ENV" envDefault:"development"`
	Name string `env:"APP_NAME" envDefault:"emailcraft"`
}

func main() {
	app := config.MustLoad[AppConfig]()
	env := environment.Parse(app.Env)

	log := logger.New(
		logger.WithEnvironment(env, app.Name),
		logger.WithContextExtractors(
			requestid.LoggerExtractor(),
			clientip.LoggerExtractor(),
			environment.LoggerExtractor(),
		),
	)
	slog.SetDefault(log)

	if err := run(context.Background(), env, log); err != nil {
		log.Error("editor stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, env environment.Environment, log *slog.Logger) error {
	serverCfg, err := config.Load[httpserver.Config]()
	if err != nil {
		return err
	}
	editorCfg, err := config.Load[editor.Config]()
	if err != nil {
		return err
	}
	genCfg, err := config.Load[imagegen.Config]()
	if err != nil {
		return err
	}
	emailCfg, err := config.Load[email.Config]()
	if err != nil {
		return err
	}
	fileCfg, err := config.Load[file.Config]()
	if err != nil {
		return err
	}

	storage, err := file.New(ctx, fileCfg)
	if err != nil {
		return err
	}
	mailer, err := email.New(emailCfg)
	if err != nil {
		return err
	}

	gen := imagegen.New(genCfg, imagegen.WithLogger(log))
	ed, err := editor.NewEditor(editorCfg, gen, editor.WithLogger(log))
	if err != nil {
		return err
	}
	defer ed.Close()

	svc := editor.NewService(ed,
		editor.WithStorage(storage),
		editor.WithMailer(mailer),
	)

	r := chi.NewRouter()
	r.Use(
		requestid.Middleware,
		clientip.Middleware(serverCfg.TrustedIPHeaders...),
		environment.Middleware(env),
		middleware.Recoverer,
	)
	r.Get("/health", httpserver.HealthHandler(log))
	if local, ok := storage.(*file.LocalStorage); ok && strings.HasPrefix(fileCfg.LocalBaseURL, "/") {
		prefix := "/" + strings.Trim(fileCfg.LocalBaseURL, "/") + "/"
		r.Handle(prefix+"*", http.StripPrefix(prefix, http.FileServer(http.Dir(local.Dir()))))
	}
	r.Mount("/", svc.Handle())

	return httpserver.New(serverCfg, httpserver.WithLogger(log)).Run(ctx, r)
}

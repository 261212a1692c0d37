package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ItsNotGoodName/x-shapes/internal/app"
	"github.com/ItsNotGoodName/x-shapes/internal/build"
	"github.com/ItsNotGoodName/x-shapes/internal/config"
	"github.com/ItsNotGoodName/x-shapes/internal/xwm"
	"github.com/ItsNotGoodName/x-shapes/pkg/sutureext"
	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/k0kubun/pp"
	"github.com/phsym/console-slog"
)

type Options struct {
	Debug   bool   `doc:"enable debug"`
	Config  string `doc:"optional YAML or JSON config file"`
	Display string `doc:"X display to connect to, defaults to $DISPLAY"`
}

func main() {
	godotenv.Load()

	cli := humacli.New(func(hooks humacli.Hooks, options *Options) {
		if options.Debug {
			InitLogger(slog.LevelDebug)
		} else {
			InitLogger(slog.LevelInfo)
		}

		OnServe(hooks, func(ctx context.Context) error {
			cfg, err := LoadConfig(options.Config)
			if err != nil {
				return err
			}
			if options.Debug {
				pp.Fprintln(os.Stderr, cfg)
			}

			slog.Info("Starting", "build", build.Current.String(), "display", options.Display)

			demo := app.New(cfg, app.OpenX11)
			if err := demo.Setup(options.Display); err != nil {
				return err
			}

			return sutureext.RunOnce(ctx, demo)
		})
	})

	cli.Root().Use = "x-shapes"
	cli.Root().Short = "Draw a triangle and a quad under a perspective projection"
	cli.Root().Version = build.Current.String()

	cli.Run()
}

func InitLogger(level slog.Level) {
	slog.SetDefault(slog.New(console.NewHandler(os.Stderr, &console.HandlerOptions{
		Level: level,
	})).With("session", uuid.NewString()))
}

// LoadConfig reads the config file at filePath, or the built-in defaults when it is empty.
func LoadConfig(filePath string) (config.Config, error) {
	if filePath != "" {
		var err error
		filePath, err = filepath.Abs(filePath)
		if err != nil {
			return config.Config{}, err
		}
	}

	store, err := config.NewStore(config.NewDriver(filePath))
	if err != nil {
		return config.Config{}, err
	}

	return store.GetConfig()
}

// exitStatus maps the result of the demo to an exit code and the message logged for it.
func exitStatus(err error) (int, string) {
	switch {
	case err == nil, errors.Is(err, context.Canceled):
		return 0, ""
	case errors.Is(err, app.ErrSetup):
		return 1, "Failed to set up"
	case errors.Is(err, xwm.ErrConnectionClosed):
		return 1, "Lost connection to X server"
	default:
		return 1, "Failed to run"
	}
}

func OnServe(hooks humacli.Hooks, serveFn func(ctx context.Context) error) {
	stopC := make(chan struct{})
	hooks.OnStart(func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		errC := make(chan error, 1)

		go func() { errC <- serveFn(ctx) }()

		select {
		case <-stopC:
			cancel()
		case err := <-errC:
			if code, msg := exitStatus(err); code != 0 {
				slog.Error(msg, "error", err)
				os.Exit(code)
			}
			return
		}

		<-errC
		<-stopC
	})
	hooks.OnStop(func() {
		stopC <- struct{}{}
		stopC <- struct{}{}
	})
}

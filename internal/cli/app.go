// Package cli is the brisa command tree.
package cli

import (
	"context"
	"errors"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/brisa-edu/brisa-client/internal/apiclient"
	"github.com/brisa-edu/brisa-client/internal/config"
	"github.com/brisa-edu/brisa-client/internal/export"
	"github.com/brisa-edu/brisa-client/internal/session"
	"github.com/brisa-edu/brisa-client/internal/storage"
)

// ErrSessionExpired replaces any 401 that reaches the top of a command.
var ErrSessionExpired = errors.New("session expired, run `brisa login`")

// App holds what the commands share. Storage, client and session are
// opened on first use and live until Close.
type App struct {
	Config *config.Config
	Log    *zap.Logger
	In     io.Reader
	Out    io.Writer
	Err    io.Writer

	// Storage overrides the store picked from Config. Tests set it.
	Storage storage.Store
	// HTTPOptions are appended to the client options.
	HTTPOptions []apiclient.Option

	client  *apiclient.Client
	session *session.Store
	expired bool
}

func NewApp(cfg *config.Config, log *zap.Logger) *App {
	return &App{Config: cfg, Log: log, In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

func (a *App) open() error {
	if a.client != nil {
		return nil
	}
	if a.Storage == nil {
		kv, err := storage.Open(a.Config)
		if err != nil {
			return err
		}
		a.Storage = kv
	}
	opts := append([]apiclient.Option{
		apiclient.WithTokenSource(session.NewTokenSource(a.Storage)),
		apiclient.WithLogger(a.Log),
	}, a.HTTPOptions...)
	a.client = apiclient.New(a.Config.APIBaseURL, opts...)
	a.session = session.New(a.Storage, a.client, session.Options{
		OnExpired: func() { a.expired = true },
		Logger:    a.Log,
	})
	return nil
}

// Client returns the API client, opening storage if needed.
func (a *App) Client() (*apiclient.Client, error) {
	if err := a.open(); err != nil {
		return nil, err
	}
	return a.client, nil
}

// Session returns the session store restored from storage.
func (a *App) Session(ctx context.Context) (*session.Store, error) {
	if err := a.open(); err != nil {
		return nil, err
	}
	if a.session.State() == session.Uninitialized {
		if err := a.session.Init(ctx); err != nil {
			return nil, err
		}
	}
	return a.session, nil
}

// Sink returns the export destination named by kind.
func (a *App) Sink(kind string) (export.Sink, error) {
	switch kind {
	case "local":
		return export.NewLocalSink(a.Config.ExportDir), nil
	case "r2":
		if !a.Config.HasR2() {
			return nil, errors.New("r2 export needs BRISA_R2_ACCESS_KEY_ID, BRISA_R2_SECRET_ACCESS_KEY, BRISA_R2_ENDPOINT and BRISA_R2_BUCKET_NAME")
		}
		c := a.Config
		return export.NewR2Sink(c.R2AccessKeyID, c.R2SecretAccessKey, c.R2Endpoint, c.R2BucketName), nil
	default:
		return nil, errors.New("export must be local or r2")
	}
}

func (a *App) Close() error {
	if a.Storage == nil {
		return nil
	}
	return a.Storage.Close()
}

// translate turns the failure of a request made with a rejected token into
// ErrSessionExpired. Other 401s, like a wrong password, pass through.
func (a *App) translate(err error) error {
	if !a.expired {
		return err
	}
	if err == nil || apiclient.IsUnauthorized(err) || errors.Is(err, session.ErrNoToken) {
		return ErrSessionExpired
	}
	return err
}

package app

import (
	"context"
	"fmt"

	"bulletin/config"
	feed "bulletin/internal/adapter/out/feed/inmemory"
	"bulletin/internal/adapter/out/remote/httpapi"
	"bulletin/internal/adapter/out/remote/inmemory"
	pgsource "bulletin/internal/adapter/out/remote/postgres"
	"bulletin/internal/model"
	"bulletin/internal/service"
	"bulletin/pkg/logger"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const PostsTopic = "posts"

type remotes struct {
	posts    service.PostRemote
	comments service.CommentRemote
	files    service.FileRemote
	users    service.UserRemote
	admin    service.AdminRemote
}

// App is one client session against a board: the remote ports picked by
// the configured source, the services on top of them and the post listing
// that publishes into the feed.
type App struct {
	cfg  config.Config
	pool *pgxpool.Pool

	Session  *service.Session
	Posts    *service.PostService
	Comments *service.CommentService
	Files    *service.FileService
	Users    *service.UserService
	Listing  *service.Listing[model.Post]
	Feed     *feed.Bus[model.Post]
}

func NewApp(ctx context.Context, cfg config.Config) (*App, error) {
	log := logger.FromContext(ctx)

	var (
		r    remotes
		pool *pgxpool.Pool
	)

	switch cfg.Directory.Source {
	case config.SourcePostgres:
		var err error
		pool, err = pgxpool.New(ctx, cfg.Postgres.GetDSN())
		if err != nil {
			return nil, fmt.Errorf("pgxpool: %w", err)
		}
		src := pgsource.New(pool, trmpgx.DefaultCtxGetter, manager.Must(trmpgx.NewDefaultFactory(pool)))

		// accounts and files stay with the board service
		client := httpapi.New(remoteConfig(cfg.Remote))
		r = remotes{posts: src, comments: src, files: client, users: client, admin: client}

	case config.SourceHTTP:
		client := httpapi.New(remoteConfig(cfg.Remote))
		r = remotes{posts: client, comments: client, files: client, users: client, admin: client}

	default:
		board := inmemory.NewBoard()
		if cfg.Directory.AdminEmail != "" {
			if _, err := board.SeedUser(
				cfg.Directory.AdminName,
				cfg.Directory.AdminEmail,
				cfg.Directory.AdminPassword,
				model.RoleAdmin,
			); err != nil {
				return nil, fmt.Errorf("seed admin: %w", err)
			}
		}
		r = remotes{posts: board, comments: board, files: board, users: board, admin: board}
	}

	a := newApp(cfg, r)
	a.pool = pool

	log.Info("app initialized", zap.String("source", cfg.Directory.Source))
	return a, nil
}

func newApp(cfg config.Config, r remotes) *App {
	session := service.NewSession(r.users)
	posts := service.NewPostService(r.posts, r.comments, r.files)
	bus := feed.New[model.Post](feed.DefaultBuffer)

	listing := posts.NewListing(service.ListingConfig{
		Name:     PostsTopic,
		PageSize: cfg.Listing.PageSize,
		Debounce: cfg.Listing.Debounce,
	})
	listing.PublishTo(bus)

	a := &App{
		cfg:      cfg,
		Session:  session,
		Posts:    posts,
		Comments: service.NewCommentService(r.comments),
		Files:    service.NewFileService(r.files),
		Users:    service.NewUserService(r.users, r.admin, session),
		Listing:  listing,
		Feed:     bus,
	}
	return a
}

// Start resolves the session identity and issues the first page fetch.
// Identity changes from then on reload the listing.
func (a *App) Start(ctx context.Context) {
	id := a.Session.Resolve(ctx)
	a.Listing.SetIdentity(ctx, id)
	a.Session.OnChange(func(id *model.Identity) {
		a.Listing.SetIdentity(ctx, id)
	})

	logger.FromContext(ctx).Debug("session resolved", zap.Bool("authenticated", id != nil))
}

func (a *App) Close() {
	a.Listing.Close()
	a.Listing.Wait()
	if a.pool != nil {
		a.pool.Close()
	}
}

func remoteConfig(c config.RemoteConfig) httpapi.Config {
	return httpapi.Config{
		BaseURL:           c.BaseURL,
		Timeout:           c.Timeout,
		RequestsPerSecond: c.RequestsPerSecond,
		Burst:             c.Burst,
		RetryCount:        c.RetryCount,
	}
}

package cli

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"nkeinfinity/internal/apiclient"
	"nkeinfinity/internal/firebase"
	"nkeinfinity/internal/http/handlers"
	applog "nkeinfinity/internal/log"
	"nkeinfinity/internal/notify"
	"nkeinfinity/internal/repos"
	"nkeinfinity/internal/server"
	"nkeinfinity/internal/services"
	"nkeinfinity/internal/session"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "Listen port (overrides PORT)")
}

func runServe(cmd *cobra.Command, args []string) error {
	if servePort != "" {
		cfg.Port = servePort
	}
	if f := logToFile(cfg.LogFile); f != nil {
		defer f.Close()
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := sessionStore(ctx, db)
	if err != nil {
		return err
	}

	api := apiclient.New(cfg.APIBaseURL, cfg.APITimeout)
	auth := &services.AuthService{API: api}
	if cfg.FirebaseAPIKey != "" {
		auth.Identity = firebase.New(cfg.FirebaseAuthURL, cfg.FirebaseAPIKey, cfg.APITimeout)
	}

	var notifier notify.Notifier = notify.Noop{}
	if cfg.SMTPHost != "" {
		notifier = notify.NewMailer(notify.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.MailFrom,
			To:       cfg.SalesEmail,
		})
	}
	contacts := services.NewContactService(repos.NewContactRepo(db), notifier)

	sessions := &handlers.Sessions{Store: store, TTL: cfg.SessionTTL, Secure: cfg.CookieSecure}
	app := server.New(cfg, handlers.NewDeps(api, sessions, auth, contacts))

	go func() {
		<-ctx.Done()
		applog.Event("server.shutdown", nil, nil)
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			applog.Event("server.shutdown", err, nil)
		}
	}()

	applog.Event("server.start", nil, map[string]any{"port": cfg.Port, "api": cfg.APIBaseURL})
	return app.Listen(":" + cfg.Port)
}

// sessionStore picks the token store for cfg.SessionBackend.
func sessionStore(ctx context.Context, db *sqlx.DB) (session.Store, error) {
	switch cfg.SessionBackend {
	case "redis":
		rs, err := session.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			return nil, err
		}
		go func() {
			<-ctx.Done()
			_ = rs.Close()
		}()
		return rs, nil
	case "memory":
		return session.NewMemoryStore(), nil
	case "sql", "":
		repo := repos.NewSessionRepo(db)
		go purgeLoop(ctx, repo, time.Hour)
		return repo, nil
	default:
		return nil, fmt.Errorf("unknown SESSION_BACKEND %q (want sql, redis or memory)", cfg.SessionBackend)
	}
}

func purgeLoop(ctx context.Context, repo *repos.SessionRepo, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := repo.PurgeExpired(ctx)
			if err != nil {
				applog.Event("session.purge", err, nil)
				continue
			}
			if n > 0 {
				log.Printf("[session] purged %d expired sessions", n)
			}
		}
	}
}

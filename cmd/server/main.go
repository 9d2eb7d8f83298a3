// Command server runs the consumer consent service. main wires dependencies
// and owns the process lifecycle; business rules live in the internal
// services.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"assent/internal/applicability"
	consentservice "assent/internal/consent/service"
	"assent/internal/geoip"
	ledgerstore "assent/internal/ledger/store"
	"assent/internal/platform/config"
	"assent/internal/platform/crypto"
	"assent/internal/platform/database"
	"assent/internal/platform/health"
	"assent/internal/platform/logger"
	"assent/internal/platform/metrics"
	profileservice "assent/internal/profile/service"
	profilestore "assent/internal/profile/store"
	"assent/internal/token"
	"assent/internal/tracer"
	httptransport "assent/internal/transport/http"
	wordingservice "assent/internal/wording/service"
	wordingstore "assent/internal/wording/store"
	"assent/migrations"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Optional .env for local development.
	_ = godotenv.Load()

	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel)

	log.Info("initializing consent service",
		"addr", cfg.Addr,
		"established_in_eu", cfg.ControllerEstablishedInEU,
	)

	m := metrics.New()

	pool, err := database.New(database.Config{
		URL:             cfg.DatabaseURL,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	})
	if err != nil {
		log.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	var (
		wordings *wordingservice.Service
		profiles *profileservice.Service
		tx       consentservice.Tx
		reads    ledgerstore.Store
	)

	if pool != nil {
		codec, err := crypto.NewCodec([]byte(cfg.EncryptionKey))
		if err != nil {
			log.Error("invalid encryption key", "error", err)
			os.Exit(1)
		}
		db := pool.DB()
		defer pool.Close() //nolint:errcheck // process is exiting

		if cfg.MigrateOnStart {
			migrateCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := pool.Migrate(migrateCtx, migrations.FS); err != nil {
				log.Error("migrations failed", "error", err)
				os.Exit(1)
			}
			log.Info("migrations applied")
		}

		wordings = wordingservice.NewService(wordingstore.NewPostgres(db), log, wordingservice.WithMetrics(m))
		profiles = profileservice.NewService(profilestore.NewPostgres(db, codec), log)
		tx = newConsentPostgresTx(db, codec)
		reads = ledgerstore.NewPostgres(db)
		log.Info("using postgres storage")
	} else {
		wordingMem := wordingstore.NewMemory()
		ledgerMem := ledgerstore.NewMemory()
		wordingMem.SetAttachmentCheck(ledgerMem.AttachmentCheck())
		profileMem := profilestore.NewMemory()

		wordings = wordingservice.NewService(wordingMem, log, wordingservice.WithMetrics(m))
		profiles = profileservice.NewService(profileMem, log)
		memTx := consentservice.NewMemoryTx(ledgerMem, profileMem)
		memTx.SetCatalogGate(wordingMem.TxGate())
		tx = memTx
		reads = ledgerMem
		log.Warn("no database configured, using in-memory storage")
	}

	resolver := geoip.NewHTTPClient(cfg.GeoIPBaseURL, cfg.GeoIPTimeout)
	applicable := applicability.NewService(
		applicability.Config{
			ControllerEstablishedInEU: cfg.ControllerEstablishedInEU,
			EUContinentCode:           cfg.EUContinentCode,
		},
		resolver,
		log,
		applicability.WithMetrics(m),
		applicability.WithTracer(tracer.NewOTel()),
	)

	consents := consentservice.NewService(tx, reads, wordings, applicable, log, consentservice.WithMetrics(m))
	tokens := token.NewIssuer([]byte(cfg.JWTSigningKey), "assent", cfg.TokenTTL)

	healthHandler := health.New()
	if pool != nil {
		healthHandler.RegisterCheck("database", func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return pool.Health(ctx)
		})
	}

	handler := httptransport.NewHandler(wordings, consents, profiles, tokens, log)
	router := httptransport.NewRouter(handler,
		httptransport.RouterConfig{JWTSigningKey: []byte(cfg.JWTSigningKey)},
		log,
		func(r chi.Router) {
			healthHandler.Register(r)
			r.Method(http.MethodGet, "/metrics", promhttp.Handler())
		},
	)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting http server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down server gracefully")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

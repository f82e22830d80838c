package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jpillora/backoff"
	"github.com/nemesia-app/villaindex-backend/internal/custody"
	"github.com/nemesia-app/villaindex-backend/internal/favorites"
	"github.com/nemesia-app/villaindex-backend/internal/identity"
	"github.com/nemesia-app/villaindex-backend/internal/pkg/middleware"
	"github.com/nemesia-app/villaindex-backend/internal/pkg/model"
	pkgws "github.com/nemesia-app/villaindex-backend/internal/pkg/ws"
	"github.com/nemesia-app/villaindex-backend/internal/stats"
	"github.com/nemesia-app/villaindex-backend/internal/ws"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	setupViper()
	setupZerolog()
	stores := setupStores()
	apiRouter := setupApiRouter(stores)

	port := viper.GetString("PORT")
	if port == "" {
		port = ":3000"
	}

	server := &http.Server{
		Addr:         port,
		Handler:      apiRouter,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Info().Str("port", port).Msg("Server listening")
	if err := server.ListenAndServe(); err != nil {
		log.Fatal().Err(err).Msg("Server stopped")
	}
}

type stores struct {
	directory identity.Directory
	registry  custody.Registry
	ledger    stats.Ledger
	favorites favorites.Store
}

// setupStores wires the postgres-backed stores, or the in-memory ones when no
// DB_URL is configured (dev mode).
func setupStores() stores {
	dbUrl := viper.GetString("DB_URL")
	if dbUrl == "" {
		log.Info().Msg("DB_URL not set, using in-memory stores")
		return stores{
			directory: identity.NewMemoryDirectory(),
			registry:  custody.NewMemoryRegistry(),
			ledger:    stats.NewMemoryLedger(),
			favorites: favorites.NewMemoryStore(),
		}
	}

	db := setupDb(dbUrl)
	return stores{
		directory: identity.NewPostgresDirectory(db),
		registry:  custody.NewPostgresRegistry(db),
		ledger:    stats.NewPostgresLedger(db),
		favorites: favorites.NewPostgresStore(db),
	}
}

func setupDb(dbUrl string) *gorm.DB {
	b := &backoff.Backoff{
		Min:    250 * time.Millisecond,
		Max:    10 * time.Second,
		Factor: 2,
		Jitter: true,
	}
	deadline := time.Now().Add(60 * time.Second)

	var db *gorm.DB
	var err error
	for {
		db, err = gorm.Open(postgres.Open(dbUrl), &gorm.Config{})
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			log.Fatal().Err(err).Msg("Failed to initialize database")
		}
		log.Warn().Err(err).Msg("Database not reachable yet, will retry")
		time.Sleep(b.Duration())
	}

	sqlDb, _ := db.DB()
	sqlDb.SetMaxOpenConns(50)
	sqlDb.SetConnMaxLifetime(time.Minute * 10)

	if err := db.AutoMigrate(&model.User{}, &model.Villain{}, &model.UserStats{}, &model.Favorite{}); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate database schema")
	}

	return db
}

func setupApiRouter(s stores) *gin.Engine {
	apiRouter := gin.New()
	routerGroup := apiRouter.Group("")

	middleware.RegisterGlobalMiddleware(apiRouter)

	hub := pkgws.NewNotificationHub()
	custodyService := custody.NewService(s.registry, s.ledger, hub)
	statsService := stats.NewService(s.ledger, s.directory)
	identityService := identity.NewService(s.directory, s.ledger)

	ws.RegisterRoutes(routerGroup)
	identity.RegisterRoutes(routerGroup, identityService)
	favorites.RegisterRoutes(routerGroup, s.favorites, s.directory)
	custody.RegisterRoutes(routerGroup, custodyService, s.directory)
	stats.RegisterRoutes(routerGroup, statsService)

	return apiRouter
}

func setupViper() {
	viper.AutomaticEnv()
	viper.SetConfigFile("./.env")
	_ = viper.ReadInConfig()
}

func setupZerolog() {
	zerolog.LevelFieldName = "severity"
	zerolog.TimestampFieldName = "time"
	zerolog.TimeFieldFormat = time.RFC3339Nano
}

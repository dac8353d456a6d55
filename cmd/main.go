package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"

	"statchat-backend/config"
	_ "statchat-backend/docs" // Generated by swag
	"statchat-backend/internal/analyzer"
	"statchat-backend/internal/catalog"
	"statchat-backend/internal/controller"
	"statchat-backend/internal/kafka"
	"statchat-backend/internal/neo4j"
	"statchat-backend/internal/postgres"
	"statchat-backend/internal/query"
	"statchat-backend/internal/repository"
	"statchat-backend/internal/responder"
	"statchat-backend/internal/scheduler"
	"statchat-backend/internal/service"
)

// @title           Statchat API
// @version         1.0
// @description     Answers free-text questions about club sports statistics. Extracts structured intent from a question, runs a parameterized graph query, and renders the result as a natural-language sentence.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /
// @schemes   http https

// @tag.name         chat
// @tag.description  Question answering operations

// @tag.name         health
// @tag.description  API health check operations

func main() {
	app := fx.New(
		// Core Dependencies
		fx.Provide(
			NewConfig,
		),
		// Infrastructure Dependencies
		fx.Provide(
			NewGinEngine,
			neo4j.ProvideDriver,
			neo4j.NewGraphExecutor,
			postgres.NewQuestionLog,
			kafka.NewQuestionEventProducer,
			catalog.NewCatalog,
			catalog.NewZeroRuleEngine,
			service.NewPlayerDirectory,
			NewSubjectSource,
			analyzer.NewAnalyzer,
			query.NewBuilder,
			responder.NewResponder,
			service.NewChatbotService,
			controller.NewChatController,
			controller.NewHealthController,
		),
		fx.Invoke(
			RegisterAPIRoutes,
			RegisterScheduler,
		),
	)

	startCtx, cancelStart := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelStart()
	if err := app.Start(startCtx); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}
	<-app.Done()

	stopCtx, cancelStop := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStop()
	log.Info().Msg("Shutting down application...")
	if err := app.Stop(stopCtx); err != nil {
		log.Error().Err(err).Msg("Forced shutdown due to error or timeout")
	}
}

func NewConfig() (*config.Config, error) {
	return config.NewConfig()
}

func NewGinEngine() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	// Configure CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Add swagger route
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// --- Factory Functions ---

func NewSubjectSource(directory *service.PlayerDirectory) analyzer.SubjectSource {
	return directory
}

// --- Invoker Functions ---

func RegisterAPIRoutes(
	lifecycle fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	chatController *controller.ChatController,
	healthController *controller.HealthController,
) {
	controller.RegisterChatRoutes(router, chatController)
	controller.RegisterHealthRoutes(router, healthController)

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}
	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Starting HTTP server on port %s", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Error().Err(err).Msg("HTTP server ListenAndServe error")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Shutting down HTTP server...")
			return server.Shutdown(ctx)
		},
	})
}

func RegisterScheduler(lc fx.Lifecycle, cfg *config.Config, graph repository.GraphExecutor) {
	scheduler.NewScheduler(lc, cfg, graph)
}

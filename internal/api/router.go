package api

import (
	"log/slog"
	"net/http"
	"time"

	"netbattle_api/internal/api/handler"
	"netbattle_api/internal/api/middleware"
	"netbattle_api/internal/app/service"
	"netbattle_api/internal/common/security"
	"netbattle_api/internal/platform/config"
	"netbattle_api/internal/platform/session"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Services collects everything the router needs to wire its handlers.
type Services struct {
	Auth    *service.AuthService
	Reset   *service.ResetService
	User    *service.UserService
	Admin   *service.AdminService
	Card    *service.CardService
	Combo   *service.ComboService
	Folder  *service.FolderService
	KeyItem *service.KeyItemService
	Product *service.ProductService
}

func NewRouter(svc Services, sessions *session.Store, mask *security.Mask, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	gate := middleware.NewAuth(svc.Auth, sessions, config.AppConfig.SignupWhiteList, logger)

	r.Get("/heartbeat", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(config.AppConfig.ServerName))
	})

	r.Route("/v1", func(v1 chi.Router) {
		authHandler := handler.NewAuthHandler(sessions, mask, svc.Reset)
		authHandler.RegisterRoutes(v1, gate)

		userHandler := handler.NewUserHandler(svc.User)
		v1.Route("/users", func(r chi.Router) { userHandler.RegisterRoutes(r, gate) })

		adminHandler := handler.NewAdminHandler(svc.Admin)
		v1.Route("/admin", func(r chi.Router) { adminHandler.RegisterRoutes(r, gate) })

		cardHandler := handler.NewCardHandler(svc.Card)
		v1.Route("/cards", func(r chi.Router) { cardHandler.RegisterRoutes(r, gate) })

		cardModelHandler := handler.NewCardModelHandler(svc.Card)
		v1.Route("/card-properties", func(r chi.Router) { cardModelHandler.RegisterRoutes(r, gate) })

		comboHandler := handler.NewComboHandler(svc.Combo)
		v1.Route("/combos", func(r chi.Router) { comboHandler.RegisterRoutes(r, gate) })

		folderHandler := handler.NewFolderHandler(svc.Folder)
		v1.Route("/folders", func(r chi.Router) { folderHandler.RegisterRoutes(r, gate) })

		publicFolderHandler := handler.NewPublicFolderHandler(svc.Folder)
		v1.Route("/public-folders", func(r chi.Router) { publicFolderHandler.RegisterRoutes(r, gate) })

		keyItemHandler := handler.NewKeyItemHandler(svc.KeyItem)
		v1.Route("/keyitems", func(r chi.Router) { keyItemHandler.RegisterRoutes(r, gate) })

		productHandler := handler.NewProductHandler(svc.Product)
		v1.Route("/products", func(r chi.Router) { productHandler.RegisterRoutes(r, gate) })
		v1.Route("/tx", func(r chi.Router) { productHandler.RegisterTxRoutes(r, gate) })

		settingsHandler := handler.NewSettingsHandler(config.AppConfig.Preferences())
		v1.Route("/settings", func(r chi.Router) { settingsHandler.RegisterRoutes(r, gate) })
	})

	return r
}

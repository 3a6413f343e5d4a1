package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"nexus/internal/config"
	"nexus/internal/database"
	"nexus/internal/presence"
	postgresrepo "nexus/internal/repository/postgres"
	"nexus/internal/service"
	"nexus/internal/storage"
	"nexus/internal/transport/http/handlers"
	"nexus/internal/transport/http/middleware"
	"nexus/internal/transport/ws"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// Database
	pool, err := database.Connect(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()
	log.Println("Connected to database")

	// Repositories
	userRepo := postgresrepo.NewUserRepo(pool)
	messageRepo := postgresrepo.NewMessageRepo(pool)

	// Blob store
	blobStore := storage.NewDiskStore(cfg.UploadDir)

	// Services
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	messageService := service.NewMessageService(messageRepo, userRepo, blobStore, cfg.EphemeralTTL)
	userService := service.NewUserService(userRepo)

	// Real-time layer
	registry := presence.NewRegistry()
	hub := ws.NewHub(registry)
	messageService.SetNotifier(ws.NewHubNotifier(hub))
	router := ws.NewRouter(messageService)
	gate := ws.NewGate(authService, cfg.WSAuthHeader)

	// Expired-message cleanup
	cleanup := service.NewCleanupService(messageRepo, cfg.CleanupInterval)
	cleanup.Start()
	defer cleanup.Stop()

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService, registry)
	messageHandler := handlers.NewMessageHandler(messageService)
	adminHandler := handlers.NewAdminHandler(userService, messageService)
	fileHandler := handlers.NewFileHandler(blobStore)

	// Middleware
	auth := middleware.Auth(cfg.JWTSecret)
	admin := func(h http.Handler) http.Handler { return auth(middleware.RequireAdmin(h)) }

	// Routes
	mux := http.NewServeMux()

	// Public
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ok"}`))
	})
	mux.HandleFunc("POST /api/v1/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/v1/auth/login", authHandler.Login)

	// Real-time endpoint; carries its own credential channel.
	mux.HandleFunc("GET /ws", ws.ServeWS(hub, router, gate))

	// Protected - Users
	mux.Handle("GET /api/v1/users/search", auth(http.HandlerFunc(userHandler.Search)))
	mux.Handle("GET /api/v1/users/contacts", auth(http.HandlerFunc(userHandler.Contacts)))
	mux.Handle("GET /api/v1/users/online", auth(http.HandlerFunc(userHandler.Online)))

	// Protected - Messages
	mux.Handle("GET /api/v1/messages/{senderId}/{recipientId}", auth(http.HandlerFunc(messageHandler.History)))
	mux.Handle("DELETE /api/v1/messages/{id}", auth(http.HandlerFunc(messageHandler.SoftDelete)))

	// Protected - Files
	mux.Handle("POST /api/v1/files/upload", auth(http.HandlerFunc(fileHandler.Upload)))

	// Admin
	mux.Handle("GET /api/v1/admin/users", admin(http.HandlerFunc(adminHandler.ListUsers)))
	mux.Handle("GET /api/v1/admin/users/{id}", admin(http.HandlerFunc(adminHandler.GetUser)))
	mux.Handle("GET /api/v1/admin/media", admin(http.HandlerFunc(adminHandler.ListMedia)))
	mux.Handle("DELETE /api/v1/admin/media/{id}", admin(http.HandlerFunc(adminHandler.HardDelete)))

	// Start server with CORS
	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	log.Printf("Starting server on %s", addr)
	log.Fatal(http.ListenAndServe(addr, middleware.CORS(mux)))
}

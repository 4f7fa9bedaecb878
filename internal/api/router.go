package api

import (
	"database/sql"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/naresh-2026/warehouseProducts/internal/api/handlers"
	"github.com/naresh-2026/warehouseProducts/internal/auth"
	"github.com/naresh-2026/warehouseProducts/internal/services"
	"github.com/naresh-2026/warehouseProducts/internal/websocket"
)

// RouterDeps bundles everything the router needs.
type RouterDeps struct {
	DB              *sql.DB
	Hub             *websocket.Hub
	UserService     services.UserServiceProvider
	ProductService  services.ProductServiceProvider
	ActivityService services.ActivityServiceProvider
	AllowedOrigins  []string
	StaticDir       string
}

// NewRouter creates and configures a new Chi router.
func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	userHandler := handlers.NewUserHandler(deps.UserService)
	productHandler := handlers.NewProductHandler(deps.ProductService)
	activityHandler := handlers.NewActivityHandler(deps.ActivityService)
	statusHandler := handlers.NewStatusHandler(deps.DB)
	wsHandler := handlers.NewWebSocketHandler(deps.Hub)

	r.Post("/signup", userHandler.Signup)
	r.Post("/login", userHandler.Login)

	r.Route("/api", func(r chi.Router) {
		r.Post("/add-product", productHandler.Add)
		r.Put("/update-product", productHandler.Update)
		r.Route("/products", func(r chi.Router) {
			r.Get("/recent/{username}", productHandler.GetRecent)
			r.Get("/all/{username}", productHandler.GetAll)
		})
		r.With(auth.JWTMiddleware()).Get("/activity/recent", activityHandler.GetRecent)
		r.Get("/status", statusHandler.Get)
	})

	r.Get("/ws/{username}", wsHandler.Serve)

	if deps.StaticDir != "" {
		mountStatic(r, deps.StaticDir)
	}

	return r
}

// mountStatic serves a built frontend from dir, falling back to index.html
// for client-side routes.
func mountStatic(r *chi.Mux, dir string) {
	fs := http.FileServer(http.Dir(dir))
	r.Get("/*", func(w http.ResponseWriter, req *http.Request) {
		path := filepath.Join(dir, filepath.Clean("/"+req.URL.Path))
		if info, err := os.Stat(path); err != nil || info.IsDir() {
			http.ServeFile(w, req, filepath.Join(dir, "index.html"))
			return
		}
		fs.ServeHTTP(w, req)
	})
}

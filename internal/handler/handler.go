package handlers

import (
	"io/fs"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"personalblog/internal/config"
	"personalblog/internal/middleware"
	"personalblog/internal/service"
	"personalblog/web"
)

type Handlers struct {
	AuthService    service.AuthService
	PostService    service.PostService
	CommentService service.CommentService
	ContactService service.ContactService
	StatsService   service.StatsService
	Cfg            *config.Config
	Validate       *validator.Validate

	views  *renderer
	static fs.FS
}

func NewHandlers(service *service.Service, config *config.Config) (*Handlers, error) {
	views, err := newRenderer(web.Templates)
	if err != nil {
		return nil, err
	}

	return &Handlers{
		AuthService:    service.Auth,
		PostService:    service.Post,
		CommentService: service.Comment,
		ContactService: service.Contact,
		StatsService:   service.Stats,
		Cfg:            config,
		Validate:       newValidator(),
		views:          views,
		static:         web.Static,
	}, nil
}

// Router builds the full HTTP handler with routes and middleware.
func (h *Handlers) Router() http.Handler {
	r := mux.NewRouter()
	protected := func(f http.HandlerFunc) http.Handler {
		return middleware.RequireSession(f)
	}

	r.HandleFunc("/", h.Home).Methods(http.MethodGet)
	r.HandleFunc("/about", h.About).Methods(http.MethodGet)
	r.HandleFunc("/contact", h.ContactForm).Methods(http.MethodGet)
	r.HandleFunc("/contact", h.Contact).Methods(http.MethodPost)

	r.HandleFunc("/register", h.RegisterForm).Methods(http.MethodGet)
	r.HandleFunc("/register", h.Register).Methods(http.MethodPost)
	r.HandleFunc("/login", h.LoginForm).Methods(http.MethodGet)
	r.HandleFunc("/login", h.Login).Methods(http.MethodPost)
	r.HandleFunc("/logout", h.Logout).Methods(http.MethodGet)

	r.HandleFunc("/post/{postId}", h.ShowPost).Methods(http.MethodGet)
	r.HandleFunc("/post/{postId}", h.CreateComment).Methods(http.MethodPost)
	r.HandleFunc("/user/{userId}", h.AuthorPage).Methods(http.MethodGet)

	r.Handle("/new-post", protected(h.NewPostForm)).Methods(http.MethodGet)
	r.Handle("/new-post", protected(h.CreatePost)).Methods(http.MethodPost)
	r.Handle("/edit-post/{postId}", protected(h.EditPostForm)).Methods(http.MethodGet)
	r.Handle("/edit-post/{postId}", protected(h.EditPost)).Methods(http.MethodPost)
	r.Handle("/delete/{postId}", protected(h.DeletePost)).Methods(http.MethodGet)
	r.Handle("/delete/post/{postId}/comments/{commentId}", protected(h.DeleteComment)).Methods(http.MethodGet)

	r.HandleFunc("/health", h.HealthHandler).Methods(http.MethodGet)
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.FS(h.static))))

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.renderError(w, r, http.StatusNotFound, "The page you are looking for does not exist.")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.renderError(w, r, http.StatusMethodNotAllowed, "Method not allowed.")
	})

	return middleware.Chain(
		r,
		middleware.SessionMiddleware(h.AuthService, h.Cfg.CookieSecure),
		middleware.SecurityHeaders,
		middleware.Recover,
		middleware.LoggingMiddleware,
	)
}

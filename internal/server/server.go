package web

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"strings"
	"time"

	"ariss-articles/internal/metrics"
	"ariss-articles/internal/model"
	"ariss-articles/internal/pipeline"
	"ariss-articles/internal/store"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yuin/goldmark"
	"go.uber.org/zap"
)

// moreMarker is the blog excerpt break, meaningless on the article page.
const moreMarker = "<!-- more -->"

//go:embed templates/*.html
var templateFS embed.FS

type Server struct {
	store     store.Store
	generator *pipeline.Generator
	source    string
	logger    *zap.Logger
	router    *mux.Router
	server    *http.Server
	pages     map[string]*template.Template
	markdown  goldmark.Markdown
	flash     *flashes
}

// NewServer serves the articles rendered from the latest snapshot of source.
func NewServer(st store.Store, generator *pipeline.Generator, source string, logger *zap.Logger) *Server {
	s := &Server{
		store:     st,
		generator: generator,
		source:    source,
		logger:    logger,
		router:    mux.NewRouter(),
		pages: map[string]*template.Template{
			"index": template.Must(template.ParseFS(templateFS, "templates/layout.html", "templates/index.html")),
			"view":  template.Must(template.ParseFS(templateFS, "templates/layout.html", "templates/view.html")),
		},
		markdown: goldmark.New(),
		flash:    newFlashes(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.HandleFunc("/", s.handleIndex).Methods("GET")
	s.router.HandleFunc("/articles/{slug}", s.handleView).Methods("GET")
	s.router.HandleFunc("/api/articles", s.handleAPI).Methods("GET")
	s.router.HandleFunc("/refresh", s.handleRefresh).Methods("POST")
	s.router.Handle("/metrics", promhttp.Handler()).Methods("GET")
}

// ServeHTTP lets the server be mounted or tested without listening.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Start launches the HTTP server
func (s *Server) Start(port string) error {
	s.server = &http.Server{
		Addr:         ":" + port,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	s.logger.Info("Web server listening", zap.String("addr", port))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down
func (s *Server) Stop(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// articles renders the latest snapshot. A missing snapshot is not an error:
// the worker may not have run yet.
func (s *Server) articles(ctx context.Context, filter *pipeline.Day) (*model.Snapshot, []model.Article, error) {
	snap, err := s.store.LatestSnapshot(ctx, s.source)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	if snap.Text == "" {
		return snap, nil, nil
	}
	return snap, s.generator.Generate(snap.Text, filter).Articles, nil
}

func dateFilter(r *http.Request) (*pipeline.Day, error) {
	value := r.URL.Query().Get("date")
	if value == "" {
		return nil, nil
	}
	day, err := pipeline.ParseDay(value)
	if err != nil {
		return nil, err
	}
	return &day, nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	filter, err := dateFilter(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	snap, articles, err := s.articles(r.Context(), filter)
	if err != nil {
		s.logger.Error("Failed to load snapshot", zap.Error(err))
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	metrics.ArticlesServed.WithLabelValues("index").Add(float64(len(articles)))

	data := map[string]interface{}{
		"Articles": articles,
		"Snapshot": snap,
		"Flash":    s.flash.pop(r),
		"Date":     r.URL.Query().Get("date"),
	}
	s.render(w, "index", data)
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	_, articles, err := s.articles(r.Context(), nil)
	if err != nil {
		s.logger.Error("Failed to load snapshot", zap.Error(err))
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	for _, a := range articles {
		if a.Slug != slug {
			continue
		}

		// Feed text is untrusted: raw HTML is left to goldmark's safe mode.
		var body bytes.Buffer
		if err := s.markdown.Convert([]byte(strings.Replace(a.Content, moreMarker, "", 1)), &body); err != nil {
			s.logger.Error("Markdown error", zap.String("slug", slug), zap.Error(err))
			http.Error(w, "Render error", http.StatusInternalServerError)
			return
		}
		metrics.ArticlesServed.WithLabelValues("article").Inc()

		data := map[string]interface{}{
			"Title":    a.Title,
			"Category": a.Category,
			"Status":   a.Status,
			"Content":  template.HTML(body.String()),
			"Raw":      a.Content,
		}
		s.render(w, "view", data)
		return
	}
	http.NotFound(w, r)
}

func (s *Server) handleAPI(w http.ResponseWriter, r *http.Request) {
	filter, err := dateFilter(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	_, articles, err := s.articles(r.Context(), filter)
	if err != nil {
		s.logger.Error("Failed to load snapshot", zap.Error(err))
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	if articles == nil {
		articles = []model.Article{}
	}
	metrics.ArticlesServed.WithLabelValues("api").Add(float64(len(articles)))

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(articles); err != nil {
		s.logger.Error("Failed to encode articles", zap.Error(err))
	}
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Enqueue(r.Context(), s.source); err != nil {
		s.logger.Error("Failed to queue refresh", zap.Error(err))
		http.Error(w, "Failed to queue refresh", http.StatusInternalServerError)
		return
	}

	s.flash.set(r, "Actualisation de la newsletter demandée")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) render(w http.ResponseWriter, page string, data map[string]interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.pages[page].ExecuteTemplate(w, "layout", data); err != nil {
		s.logger.Error("Template error", zap.String("page", page), zap.Error(err))
	}
}

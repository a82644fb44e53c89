// Package web serves the portfolio page, its HTMX fragments, the particle
// backdrop options and the admin dashboard.
package web

import (
	"context"
	"crypto/rand"
	"embed"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/neon-portfolio/internal/config"
	"github.com/Zachkp/neon-portfolio/internal/content"
	"github.com/Zachkp/neon-portfolio/internal/mail"
	"github.com/Zachkp/neon-portfolio/internal/store"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// Server owns the gin engine and everything its handlers need.
type Server struct {
	cfg    config.Config
	site   *content.Site
	store  *store.Store
	mailer mail.Sender
	log    *slog.Logger

	adminToken  string
	hashingSalt string

	// background tracks visitor writes and the retention loop so shutdown
	// can wait for them before the store closes.
	background sync.WaitGroup

	engine *gin.Engine
}

// New builds a Server. mailer may be nil, which disables delivery.
func New(cfg config.Config, site *content.Site, st *store.Store, mailer mail.Sender, logger *slog.Logger) (*Server, error) {
	if mailer == nil {
		mailer = mail.Discard{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	token, err := randomHex(32)
	if err != nil {
		return nil, fmt.Errorf("generate admin token: %w", err)
	}
	salt, err := randomHex(32)
	if err != nil {
		return nil, fmt.Errorf("generate hashing salt: %w", err)
	}

	s := &Server{
		cfg:         cfg,
		site:        site,
		store:       st,
		mailer:      mailer,
		log:         logger,
		adminToken:  token,
		hashingSalt: salt,
	}

	s.log.Info("admin access available", "path", "/admin/login")
	if gin.Mode() == gin.DebugMode {
		s.log.Debug("admin token (dev only)", "token", token)
	}
	if cfg.Admin.UsingDefaults {
		s.log.Warn("using default admin credentials; set ADMIN_USERNAME and ADMIN_PASSWORD")
	}

	if err := s.routes(); err != nil {
		return nil, err
	}
	return s, nil
}

// Handler returns the HTTP handler for the site.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Wait blocks until background visitor writes and a running retention loop
// finish.
func (s *Server) Wait() {
	s.background.Wait()
}

func (s *Server) routes() error {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return fmt.Errorf("parse templates: %w", err)
	}
	r.SetHTMLTemplate(tmpl)

	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		return fmt.Errorf("static assets: %w", err)
	}
	r.StaticFS("/static", http.FS(static))
	if info, err := os.Stat("./images"); err == nil && info.IsDir() {
		r.Static("/images", "./images")
	}

	r.Use(s.visitorTracking())

	r.GET("/", s.home)
	r.GET("/contact-form", s.contactForm)
	r.POST("/contact", s.submitContact)
	r.GET("/projects/:id", s.projectDetail)

	r.GET("/particles/:context", s.particleOptions)
	r.GET("/theme/toggle", s.themeToggle)
	r.POST("/theme", s.setTheme)
	r.POST("/theme/toggle", s.toggleTheme)

	s.setupAdminRoutes(r)

	s.engine = r
	return nil
}

// requestLogger replaces gin's text logger with a structured line per request.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()
		c.Next()
		s.log.LogAttrs(c.Request.Context(), slog.LevelInfo, "http request",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Int64("duration_ms", time.Since(started).Milliseconds()),
		)
	}
}

// StartRetention runs RunRetention on a goroutine tracked by Wait.
func (s *Server) StartRetention(ctx context.Context) {
	s.background.Add(1)
	go func() {
		defer s.background.Done()
		s.RunRetention(ctx)
	}()
}

// RunRetention purges visitor rows older than the configured retention once
// at start and then daily until ctx is done.
func (s *Server) RunRetention(ctx context.Context) {
	s.purgeOldVisitors(ctx)

	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.purgeOldVisitors(ctx)
		}
	}
}

func (s *Server) purgeOldVisitors(ctx context.Context) {
	cutoff := time.Now().Add(-s.cfg.VisitorRetention.Duration)
	n, err := s.store.PurgeVisitorsBefore(ctx, cutoff)
	if err != nil {
		s.log.Error("privacy cleanup failed", "err", err)
		return
	}
	if n > 0 {
		s.log.Info("privacy cleanup removed old visitor records", "rows", n, "cutoff", cutoff)
	}
}

var templateFuncs = template.FuncMap{
	"json": func(v any) (template.JS, error) {
		raw, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return template.JS(raw), nil
	},
	"date": func(t time.Time) string {
		return t.Format("Jan 2, 2006 15:04")
	},
}

func randomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

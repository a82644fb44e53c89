package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/neon-portfolio/internal/appearance"
	"github.com/Zachkp/neon-portfolio/internal/particles"
)

const (
	themeCookie     = "theme"
	themeCookieAge  = 365 * 24 * 3600
	colorSchemeHint = "Sec-CH-Prefers-Color-Scheme"
	changedEvent    = "appearanceChanged"
)

// holderFor seeds a holder from the visitor's theme cookie, falling back to
// the color scheme client hint. With neither, the holder stays uninitialized
// and consumers render placeholders instead of guessing.
func (s *Server) holderFor(c *gin.Context) *appearance.Holder {
	if raw, err := c.Cookie(themeCookie); err == nil {
		if m, err := appearance.ParseMode(raw); err == nil {
			return appearance.NewHolderWith(m)
		}
	}
	h := appearance.NewHolder()
	if m, err := appearance.ParseMode(c.GetHeader(colorSchemeHint)); err == nil {
		h.Init(m)
	}
	return h
}

// resolvedSet collects the options every backdrop on the page re-resolves to
// when the mode changes.
type resolvedSet map[particles.Context]particles.Options

// watch registers the consumers of a mode change on h: the cookie that
// persists it, the backdrops that re-resolve against it and the event log.
func (s *Server) watch(c *gin.Context, h *appearance.Holder) resolvedSet {
	resolved := resolvedSet{}
	h.Subscribe(func(m appearance.Mode) {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(themeCookie, m.String(), themeCookieAge, "/", "", false, false)
	})
	h.Subscribe(func(m appearance.Mode) {
		for _, ctx := range particles.Contexts {
			resolved[ctx] = s.resolve(ctx, m)
		}
	})
	h.Subscribe(func(m appearance.Mode) {
		ctx := context.WithoutCancel(c.Request.Context())
		if err := s.store.RecordAppearance(ctx, m.String()); err != nil {
			s.log.Error("recording appearance change", "err", err)
		}
	})
	return resolved
}

// resolve wraps particles.Resolve with the validation pass debug builds run.
func (s *Server) resolve(ctx particles.Context, m appearance.Mode) particles.Options {
	opts := particles.Resolve(ctx, m)
	if gin.Mode() == gin.DebugMode {
		if err := particles.Validate(opts); err != nil {
			s.log.Warn("resolved particle options out of range", "context", ctx, "mode", m, "err", err)
		}
	}
	return opts
}

// particleOptions serves the backdrop options for one page section.
func (s *Server) particleOptions(c *gin.Context) {
	c.Header("Vary", "Cookie, "+colorSchemeHint)
	c.Header("Cache-Control", "no-store")

	mode, ok := s.holderFor(c).Mode()
	if !ok {
		c.Status(http.StatusNoContent)
		return
	}

	ctx, known := particles.ParseContext(c.Param("context"))
	if !known {
		s.log.Debug("unknown particle context, using default", "context", c.Param("context"))
	}
	c.Header("X-Particles-Context", string(ctx))
	c.JSON(http.StatusOK, s.resolve(ctx, mode))
}

type toggleView struct {
	Ready     bool
	Mode      appearance.Mode
	Particles resolvedSet
}

func (v toggleView) IsDark() bool { return v.Mode.IsDark() }

// themeToggle renders the switch for the current mode, or the fixed-size
// placeholder before the mode is known.
func (s *Server) themeToggle(c *gin.Context) {
	mode, ok := s.holderFor(c).Mode()
	c.HTML(http.StatusOK, "theme-toggle.html", toggleView{Ready: ok, Mode: mode})
}

// setTheme applies an explicit mode, which is how the browser initializes the
// holder from prefers-color-scheme on first visit.
func (s *Server) setTheme(c *gin.Context) {
	mode, err := appearance.ParseMode(c.PostForm("mode"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h := s.holderFor(c)
	resolved := s.watch(c, h)
	h.Set(mode)
	s.renderChanged(c, mode, resolved)
}

// toggleTheme inverts the visitor's mode. Every backdrop is re-resolved
// before the response is written so the client can repaint in one pass.
func (s *Server) toggleTheme(c *gin.Context) {
	h := s.holderFor(c)
	resolved := s.watch(c, h)

	mode, err := appearance.Toggle(h)
	if errors.Is(err, appearance.ErrNotReady) {
		c.HTML(http.StatusConflict, "theme-toggle.html", toggleView{})
		return
	}
	s.renderChanged(c, mode, resolved)
}

func (s *Server) renderChanged(c *gin.Context, mode appearance.Mode, resolved resolvedSet) {
	trigger, err := json.Marshal(map[string]any{changedEvent: map[string]string{"mode": mode.String()}})
	if err == nil {
		c.Header("HX-Trigger", string(trigger))
	}
	c.HTML(http.StatusOK, "theme-toggle.html", toggleView{Ready: true, Mode: mode, Particles: resolved})
}

package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/neon-portfolio/internal/particles"
)

func TestParticleOptions_NoModeYet(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/particles/hero", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestParticleOptions_FromCookie(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/particles/hero", nil, withCookie("theme", "dark"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "hero", rec.Header().Get("X-Particles-Context"))

	var opts particles.Options
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &opts))
	assert.Equal(t, []string{"#00FFFF", "#FF00FF", "#FF69B4"}, opts.Particles.Color.Values)
	assert.Equal(t, 0.4, opts.Particles.Links.Opacity)
	assert.Equal(t, 80, opts.Particles.Number.Value)
}

func TestParticleOptions_ClientHintAndFallback(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/particles/sidebar", nil, withHeader("Sec-CH-Prefers-Color-Scheme", "light"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "default", rec.Header().Get("X-Particles-Context"))

	var opts particles.Options
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &opts))
	assert.Equal(t, particles.Resolve(particles.ContextDefault, "light"), opts)
}

func TestParticleOptions_BadCookieIsIgnored(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/particles/contact", nil, withCookie("theme", "sepia"))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestThemeToggle_PlaceholderBeforeInit(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/theme/toggle", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `<div id="theme-toggle" class="h-6 w-11"></div>`)
	assert.NotContains(t, rec.Body.String(), "role=\"switch\"")

	rec = env.do(http.MethodPost, "/theme/toggle", url.Values{})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), `class="h-6 w-11"`)
	assert.NotContains(t, rec.Body.String(), "particles-options")
	_, set := cookieValue(rec, "theme")
	assert.False(t, set)
}

func TestToggleTheme(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/theme/toggle", url.Values{}, withCookie("theme", "dark"))
	require.Equal(t, http.StatusOK, rec.Code)

	mode, ok := cookieValue(rec, "theme")
	require.True(t, ok)
	assert.Equal(t, "light", mode)
	assert.JSONEq(t, `{"appearanceChanged":{"mode":"light"}}`, rec.Header().Get("HX-Trigger"))

	body := rec.Body.String()
	assert.Contains(t, body, `data-mode="light"`)
	assert.Contains(t, body, `id="particles-options"`)
	assert.Contains(t, body, `"#1a1a1a"`)
	assert.NotContains(t, body, `"#FF00FF"`)

	stats, err := env.store.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Toggles["light"])
}

func TestSetTheme(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/theme", url.Values{"mode": {"dark"}})
	require.Equal(t, http.StatusOK, rec.Code)
	mode, ok := cookieValue(rec, "theme")
	require.True(t, ok)
	assert.Equal(t, "dark", mode)
	assert.Contains(t, rec.Body.String(), `"#00FF90"`)

	rec = env.do(http.MethodPost, "/theme", url.Values{"mode": {"system"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

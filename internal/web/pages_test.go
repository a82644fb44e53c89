package web

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHome_WithoutMode(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Sec-CH-Prefers-Color-Scheme", rec.Header().Get("Accept-CH"))

	body := rec.Body.String()
	assert.Contains(t, body, "Jordan Vale")
	assert.Contains(t, body, `<div id="theme-toggle" class="h-6 w-11"></div>`)
	assert.Contains(t, body, `<script type="application/json" id="particles-options">null</script>`)
	assert.NotContains(t, body, `class="dark"`)
}

func TestHome_WithDarkMode(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/", nil, withCookie("theme", "dark"))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `<html lang="en" class="dark">`)
	assert.Contains(t, body, `data-mode="dark"`)
	assert.Contains(t, body, `"#FF69B4"`)
	assert.Contains(t, body, "AI-Powered E-Commerce Platform")
	assert.Contains(t, body, "Tools &amp; Cloud")
}

func TestProjectDetail(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/projects/2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Real-Time Collaboration Tool")

	for _, path := range []string{"/projects/42", "/projects/abc"} {
		rec := env.do(http.MethodGet, path, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
		assert.Contains(t, rec.Body.String(), `id="not-found"`, path)
		assert.Contains(t, rec.Body.String(), "Project not found.", path)
	}
}

func TestContactForm(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/contact-form", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `hx-post="/contact"`)
	assert.Contains(t, rec.Body.String(), "hello@example.com")
}

func validContact() url.Values {
	return url.Values{
		"name":    {"Ada Lovelace"},
		"email":   {"ada@example.com"},
		"subject": {"Collaboration"},
		"message": {"Let's build an engine."},
	}
}

func TestSubmitContact(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/contact", validContact())
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Message sent successfully")

	require.Len(t, env.mailer.sent, 1)
	assert.Equal(t, "Ada Lovelace", env.mailer.sent[0].Name)
	assert.Equal(t, "Collaboration", env.mailer.sent[0].Subject)

	msgs, err := env.store.Messages(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.True(t, msgs[0].Delivered)
	assert.Equal(t, "Let's build an engine.", msgs[0].Body)
}

func TestSubmitContact_MailFailureKeepsMessage(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	env.mailer.err = errors.New("relay down")

	rec := env.do(http.MethodPost, "/contact", validContact())
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Message sent successfully")

	msgs, err := env.store.Messages(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.False(t, msgs[0].Delivered)
}

func TestSubmitContact_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		field string
		value string
	}{
		{name: "missing name", field: "name", value: ""},
		{name: "bad email", field: "email", value: "not-an-email"},
		{name: "missing subject", field: "subject", value: ""},
		{name: "missing message", field: "message", value: ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			env := newTestEnv(t)

			form := validContact()
			form.Set(tt.field, tt.value)
			rec := env.do(http.MethodPost, "/contact", form)
			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			assert.Contains(t, rec.Body.String(), `role="alert"`)
			assert.Empty(t, env.mailer.sent)
		})
	}
}

package web

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/neon-portfolio/internal/content"
	"github.com/Zachkp/neon-portfolio/internal/mail"
	"github.com/Zachkp/neon-portfolio/internal/particles"
	"github.com/Zachkp/neon-portfolio/internal/store"
)

type homeView struct {
	Site     *content.Site
	Projects []content.Project
	Toggle   toggleView
	Year     int
}

// home renders the full page. Backdrop options are inlined when the mode is
// known so the first paint needs no extra request.
func (s *Server) home(c *gin.Context) {
	c.Header("Accept-CH", colorSchemeHint)
	c.Header("Vary", "Cookie, "+colorSchemeHint)

	view := homeView{
		Site:     s.site,
		Projects: s.site.FeaturedFirst(),
		Year:     time.Now().Year(),
	}
	if mode, ok := s.holderFor(c).Mode(); ok {
		view.Toggle = toggleView{Ready: true, Mode: mode, Particles: resolvedSet{}}
		for _, ctx := range particles.Contexts {
			view.Toggle.Particles[ctx] = s.resolve(ctx, mode)
		}
	}
	c.HTML(http.StatusOK, "index.html", view)
}

func (s *Server) contactForm(c *gin.Context) {
	c.HTML(http.StatusOK, "contact.html", gin.H{
		"title":   "Contact Me",
		"contact": s.site.Contact,
	})
}

func (s *Server) projectDetail(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.HTML(http.StatusNotFound, "not-found.html", gin.H{"error": "Project not found."})
		return
	}
	p, ok := s.site.Project(id)
	if !ok {
		c.HTML(http.StatusNotFound, "not-found.html", gin.H{"error": "Project not found."})
		return
	}
	c.HTML(http.StatusOK, "project.html", p)
}

// contactRequest is the contact form as posted by HTMX.
type contactRequest struct {
	Name    string `form:"name" binding:"required,max=100"`
	Email   string `form:"email" binding:"required,email,max=254"`
	Subject string `form:"subject" binding:"required,max=200"`
	Message string `form:"message" binding:"required,max=5000"`
}

// submitContact stores the message and mails it when SMTP is configured. A
// failed delivery still counts as received; the admin inbox keeps it.
func (s *Server) submitContact(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBind(&req); err != nil {
		c.HTML(http.StatusUnprocessableEntity, "contact-error.html", gin.H{
			"error": "Please fill in your name, a valid email, a subject and a message.",
		})
		return
	}

	ctx := c.Request.Context()
	msg, err := s.store.SaveMessage(ctx, store.Message{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Body:    req.Message,
	})
	if err != nil {
		s.log.Error("saving contact message", "err", err)
		c.HTML(http.StatusOK, "contact-error.html", gin.H{
			"error": "Sorry, there was an error sending your message. Please try again later.",
		})
		return
	}

	s.deliver(ctx, msg)

	c.HTML(http.StatusOK, "contact-success.html", gin.H{
		"success": "Message sent successfully! I'll get back to you soon.",
	})
}

func (s *Server) deliver(ctx context.Context, msg store.Message) {
	err := s.mailer.Send(ctx, mail.Contact{
		Name:    msg.Name,
		Email:   msg.Email,
		Subject: msg.Subject,
		Message: msg.Body,
	})
	switch {
	case errors.Is(err, mail.ErrNotConfigured):
		s.log.Debug("mail disabled, message kept in inbox", "id", msg.ID)
	case err != nil:
		s.log.Error("sending contact mail", "id", msg.ID, "err", err)
	default:
		if err := s.store.MarkDelivered(ctx, msg.ID); err != nil {
			s.log.Error("marking message delivered", "id", msg.ID, "err", err)
		}
		s.log.Info("contact mail sent", "id", msg.ID)
	}
}

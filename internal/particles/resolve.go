package particles

import (
	"math"
	"strings"

	"github.com/Zachkp/neon-portfolio/internal/appearance"
)

// Context identifies the page section asking for a backdrop.
type Context string

const (
	ContextDefault  Context = "default"
	ContextHero     Context = "hero"
	ContextProjects Context = "projects"
	ContextContact  Context = "contact"
)

// Contexts lists every known context in page order.
var Contexts = [...]Context{ContextDefault, ContextHero, ContextProjects, ContextContact}

// ParseContext normalises a tag. Unknown tags map to ContextDefault and ok is
// false.
func ParseContext(s string) (ctx Context, ok bool) {
	c := Context(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Contexts {
		if c == known {
			return c, true
		}
	}
	return ContextDefault, false
}

const (
	baseFPSLimit      = 60
	baseCount         = 50
	baseSpeed         = 1.0
	basePushQuantity  = 4
	baseRepulseRadius = 100.0
	baseRepulseTime   = 0.4
	baseLinkDistance  = 150.0
	baseLinkWidth     = 1.0
	baseDensityArea   = 800.0
)

// override carries the fields a context replaces. Nil means keep the base
// value.
type override struct {
	color       *ColorValue
	count       *int
	speed       *float64
	size        *Range
	linkColor   *string
	linkOpacity *float64
}

// Resolve builds the backdrop options for a section in the given mode. It is
// total: unknown contexts get the base options.
func Resolve(ctx Context, mode appearance.Mode) Options {
	palette := PaletteFor(mode)
	particleOpacity, linkOpacity := opacities(mode)

	opts := base(palette, particleOpacity, linkOpacity)
	apply(&opts, overrideFor(ctx, palette, linkOpacity))
	return opts
}

func base(p Palette, particleOpacity, linkOpacity float64) Options {
	return Options{
		Background: Background{Color: Single("transparent")},
		FPSLimit:   baseFPSLimit,
		Interactivity: Interactivity{
			Events: Events{
				OnClick: ModeEvent{Enable: true, Mode: "push"},
				OnHover: ModeEvent{Enable: true, Mode: "repulse"},
				Resize:  true,
			},
			Modes: Modes{
				Push:    Push{Quantity: basePushQuantity},
				Repulse: Repulse{Distance: baseRepulseRadius, Duration: baseRepulseTime},
			},
		},
		Particles: ParticleRules{
			Color: Single(p.Primary),
			Links: Links{
				Color:    p.Primary,
				Distance: baseLinkDistance,
				Enable:   true,
				Opacity:  linkOpacity,
				Width:    baseLinkWidth,
			},
			Move: Move{
				Direction: "none",
				Enable:    true,
				OutModes:  OutModes{Default: "bounce"},
				Speed:     baseSpeed,
			},
			Number: Number{
				Density: Density{Enable: true, Area: baseDensityArea},
				Value:   baseCount,
			},
			Opacity: Opacity{Value: particleOpacity},
			Shape:   Shape{Type: "circle"},
			Size:    Size{Value: Range{Min: 1, Max: 3}},
		},
		DetectRetina: true,
	}
}

func overrideFor(ctx Context, p Palette, linkOpacity float64) override {
	switch ctx {
	case ContextHero:
		return override{
			color:       ptr(Set(p.Primary, p.Secondary, p.Accent)),
			count:       ptr(80),
			speed:       ptr(2.0),
			size:        &Range{Min: 2, Max: 5},
			linkColor:   ptr(p.Secondary),
			linkOpacity: ptr(adjustOpacity(linkOpacity, 0.1)),
		}
	case ContextProjects:
		return override{
			color:       ptr(Single(p.Secondary)),
			count:       ptr(30),
			speed:       ptr(0.5),
			linkOpacity: ptr(adjustOpacity(linkOpacity, -0.1)),
		}
	case ContextContact:
		return override{
			color:       ptr(Single(p.Success)),
			count:       ptr(40),
			speed:       ptr(1.5),
			linkOpacity: ptr(linkOpacity),
		}
	default:
		return override{}
	}
}

func apply(opts *Options, o override) {
	if o.color != nil {
		opts.Particles.Color = *o.color
	}
	if o.count != nil {
		opts.Particles.Number.Value = *o.count
	}
	if o.speed != nil {
		opts.Particles.Move.Speed = *o.speed
	}
	if o.size != nil {
		opts.Particles.Size.Value = *o.size
	}
	if o.linkColor != nil {
		opts.Particles.Links.Color = *o.linkColor
	}
	if o.linkOpacity != nil {
		opts.Particles.Links.Opacity = *o.linkOpacity
	}
}

// adjustOpacity shifts an opacity and keeps it in [0,1], rounded to
// hundredths so 0.3-0.1 encodes as 0.2.
func adjustOpacity(v, delta float64) float64 {
	out := math.Round((v+delta)*100) / 100
	return math.Min(1, math.Max(0, out))
}

func ptr[T any](v T) *T { return &v }

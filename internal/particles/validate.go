package particles

import (
	"errors"
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidOptions wraps every Validate failure.
var ErrInvalidOptions = errors.New("invalid particle options")

// Validate range-checks options before they reach the browser engine. The
// engine accepts anything and renders garbage silently, so this is the only
// place a bad value would show up.
func Validate(o Options) error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidOptions}, args...)...))
		}
	}

	check(o.FPSLimit > 0, "fpsLimit %d must be positive", o.FPSLimit)
	check(o.Interactivity.Modes.Push.Quantity >= 0, "push quantity %d is negative", o.Interactivity.Modes.Push.Quantity)
	check(o.Interactivity.Modes.Repulse.Distance >= 0, "repulse distance %v is negative", o.Interactivity.Modes.Repulse.Distance)
	check(o.Interactivity.Modes.Repulse.Duration >= 0, "repulse duration %v is negative", o.Interactivity.Modes.Repulse.Duration)

	p := o.Particles
	check(p.Number.Value >= 0, "particle count %d is negative", p.Number.Value)
	check(p.Move.Speed >= 0, "speed %v is negative", p.Move.Speed)
	check(inUnit(p.Opacity.Value), "particle opacity %v outside [0,1]", p.Opacity.Value)
	check(inUnit(p.Links.Opacity), "link opacity %v outside [0,1]", p.Links.Opacity)
	check(p.Links.Distance >= 0, "link distance %v is negative", p.Links.Distance)
	check(p.Links.Width >= 0, "link width %v is negative", p.Links.Width)
	check(p.Size.Value.Min >= 0 && p.Size.Value.Min <= p.Size.Value.Max,
		"size range [%v,%v] is not ordered", p.Size.Value.Min, p.Size.Value.Max)

	check(len(p.Color.Values) > 0, "particle color is empty")
	for _, c := range p.Color.Values {
		check(validHex(c), "particle color %q is not a hex color", c)
	}
	check(validHex(p.Links.Color), "link color %q is not a hex color", p.Links.Color)

	return errors.Join(errs...)
}

func inUnit(v float64) bool { return v >= 0 && v <= 1 }

func validHex(s string) bool {
	_, err := colorful.Hex(s)
	return err == nil
}

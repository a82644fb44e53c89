// palette prints the particle backdrop options the server would send for a
// page section, with color swatches when writing to a terminal.
//
// Usage:
//
//	palette -context hero -mode dark
//	palette -context projects | jq .particles.color
//	palette -all -format json
//
// With no -mode the terminal background decides: dark terminals preview the
// dark palette.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/Zachkp/neon-portfolio/internal/appearance"
	"github.com/Zachkp/neon-portfolio/internal/particles"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("palette", flag.ContinueOnError)
	fs.SetOutput(stderr)
	contextFlag := fs.String("context", "default", "Section: default, hero, projects, contact")
	modeFlag := fs.String("mode", "", "Appearance: light or dark (default: detect from terminal)")
	allFlag := fs.Bool("all", false, "Resolve every section")
	formatFlag := fs.String("format", "auto", "Output format: auto, terminal, json")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	mode, err := pickMode(*modeFlag)
	if err != nil {
		fmt.Fprintf(stderr, "palette: %v\n", err)
		return 2
	}

	contexts := particles.Contexts[:]
	if !*allFlag {
		ctx, ok := particles.ParseContext(*contextFlag)
		if !ok {
			fmt.Fprintf(stderr, "palette: unknown context %q, using default\n", *contextFlag)
		}
		contexts = []particles.Context{ctx}
	}

	resolved := make(map[particles.Context]particles.Options, len(contexts))
	failed := false
	for _, ctx := range contexts {
		opts := particles.Resolve(ctx, mode)
		if err := particles.Validate(opts); err != nil {
			fmt.Fprintf(stderr, "palette: %s/%s: %v\n", ctx, mode, err)
			failed = true
		}
		resolved[ctx] = opts
	}

	styled := *formatFlag == "terminal" || (*formatFlag == "auto" && isTTYWriter(stdout))
	if styled {
		fmt.Fprint(stdout, renderSwatches(mode, contexts, resolved))
	} else if err := writeJSON(stdout, contexts, resolved); err != nil {
		fmt.Fprintf(stderr, "palette: %v\n", err)
		return 1
	}

	if failed {
		return 1
	}
	return 0
}

func pickMode(flagValue string) (appearance.Mode, error) {
	if strings.TrimSpace(flagValue) != "" {
		return appearance.ParseMode(flagValue)
	}
	if lipgloss.HasDarkBackground() {
		return appearance.Dark, nil
	}
	return appearance.Light, nil
}

func writeJSON(w io.Writer, contexts []particles.Context, resolved map[particles.Context]particles.Options) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if len(contexts) == 1 {
		return enc.Encode(resolved[contexts[0]])
	}
	return enc.Encode(resolved)
}

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	labelStyle   = lipgloss.NewStyle().Width(10)
	faintStyle   = lipgloss.NewStyle().Faint(true)
)

func swatch(hex string) string {
	return lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("    ") + " " + hex
}

func renderSwatches(mode appearance.Mode, contexts []particles.Context, resolved map[particles.Context]particles.Options) string {
	var b strings.Builder
	p := particles.PaletteFor(mode)

	b.WriteString(headingStyle.Render("palette: "+mode.String()) + "\n")
	for _, role := range []struct{ name, hex string }{
		{"primary", p.Primary}, {"secondary", p.Secondary}, {"accent", p.Accent}, {"success", p.Success},
	} {
		b.WriteString(labelStyle.Render(role.name) + swatch(role.hex) + "\n")
	}

	for _, ctx := range contexts {
		opts := resolved[ctx]
		parts := opts.Particles
		b.WriteString("\n" + headingStyle.Render(string(ctx)) + "\n")

		colors := make([]string, 0, len(parts.Color.Values))
		for _, c := range parts.Color.Values {
			colors = append(colors, swatch(c))
		}
		b.WriteString(labelStyle.Render("color") + strings.Join(colors, "  ") + "\n")
		b.WriteString(labelStyle.Render("links") + swatch(parts.Links.Color) +
			faintStyle.Render(fmt.Sprintf("  opacity %.2f", parts.Links.Opacity)) + "\n")
		b.WriteString(labelStyle.Render("motion") + fmt.Sprintf("%d particles, speed %g, size %g-%g, opacity %.2f\n",
			parts.Number.Value, parts.Move.Speed, parts.Size.Value.Min, parts.Size.Value.Max, parts.Opacity.Value))
	}
	return b.String()
}

func isTTYWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

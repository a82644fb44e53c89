// Package content loads the copy shown on the portfolio page: profile, skills,
// projects and contact details.
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed content.yaml
var defaultContent []byte

type Site struct {
	Profile  Profile         `yaml:"profile"`
	Skills   []SkillCategory `yaml:"skills"`
	Projects []Project       `yaml:"projects"`
	Contact  Contact         `yaml:"contact"`
}

type Profile struct {
	Name       string   `yaml:"name"`
	Title      string   `yaml:"title"`
	Tagline    string   `yaml:"tagline"`
	Highlights []string `yaml:"highlights"`
	About      []string `yaml:"about"`
	Stats      []Stat   `yaml:"stats"`
}

type Stat struct {
	Number string `yaml:"number"`
	Label  string `yaml:"label"`
}

type SkillCategory struct {
	Title  string  `yaml:"title"`
	Skills []Skill `yaml:"skills"`
}

type Skill struct {
	Name  string `yaml:"name"`
	Color string `yaml:"color"`
}

type Project struct {
	ID          int      `yaml:"id"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Tech        []string `yaml:"tech"`
	Image       string   `yaml:"image"`
	LiveURL     string   `yaml:"live_url"`
	SourceURL   string   `yaml:"source_url"`
	Featured    bool     `yaml:"featured"`
}

type Contact struct {
	Intro    string   `yaml:"intro"`
	Email    string   `yaml:"email"`
	Phone    string   `yaml:"phone"`
	Location string   `yaml:"location"`
	Socials  []Social `yaml:"socials"`
}

type Social struct {
	Name  string `yaml:"name"`
	URL   string `yaml:"url"`
	Color string `yaml:"color"`
}

// Default returns the built-in site content.
func Default() (*Site, error) {
	return Parse(defaultContent)
}

// Load reads content from path, or the built-in content when path is empty.
func Load(path string) (*Site, error) {
	if path == "" {
		return Default()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse decodes YAML content and checks it is usable.
func Parse(raw []byte) (*Site, error) {
	var site Site
	if err := yaml.Unmarshal(raw, &site); err != nil {
		return nil, fmt.Errorf("parse content: %w", err)
	}
	if err := site.validate(); err != nil {
		return nil, err
	}
	return &site, nil
}

// FeaturedFirst returns the projects with featured ones first, keeping the
// original order otherwise.
func (s *Site) FeaturedFirst() []Project {
	out := append([]Project(nil), s.Projects...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Featured && !out[j].Featured
	})
	return out
}

// Project looks a project up by id.
func (s *Site) Project(id int) (Project, bool) {
	for _, p := range s.Projects {
		if p.ID == id {
			return p, true
		}
	}
	return Project{}, false
}

func (s *Site) validate() error {
	var errs []error
	if s.Profile.Name == "" {
		errs = append(errs, errors.New("profile.name is required"))
	}
	seen := make(map[int]bool, len(s.Projects))
	for i, p := range s.Projects {
		if p.Title == "" {
			errs = append(errs, fmt.Errorf("projects[%d].title is required", i))
		}
		if seen[p.ID] {
			errs = append(errs, fmt.Errorf("projects[%d] duplicates id %d", i, p.ID))
		}
		seen[p.ID] = true
	}
	for i, c := range s.Skills {
		if c.Title == "" {
			errs = append(errs, fmt.Errorf("skills[%d].title is required", i))
		}
	}
	return errors.Join(errs...)
}

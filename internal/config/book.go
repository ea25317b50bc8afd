// Package config loads schedule books: named cron expressions sharing one
// time zone and fold policy, authored as YAML or JSONC.
//
// A book looks like:
//
//	location: Europe/Berlin
//	fold: earlier
//	schedules:
//	  - name: backup
//	    expr: "0 30 2 * * *"
//	  - name: report
//	    expr: "0 9 * * MON-FRI"
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	cronexp "github.com/netresearch/go-cronexp"
)

// Format is the syntax of a book file.
type Format string

const (
	YAML  Format = "yaml"
	JSONC Format = "jsonc"
)

// ErrUnknownFormat is returned for file extensions that are not YAML or JSON.
var ErrUnknownFormat = errors.New("unknown book format")

// Book is the on-disk form. Empty Location and Fold fall back to the
// environment defaults when compiled.
type Book struct {
	Location  string  `yaml:"location" json:"location"`
	Fold      string  `yaml:"fold" json:"fold"`
	Schedules []Entry `yaml:"schedules" json:"schedules"`
}

// Entry is one named expression.
type Entry struct {
	Name string `yaml:"name" json:"name"`
	Expr string `yaml:"expr" json:"expr"`
}

// FormatFromPath picks the format by file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".json", ".jsonc":
		return JSONC, nil
	}
	return "", fmt.Errorf("%s: %w", path, ErrUnknownFormat)
}

// Parse decodes a book. JSONC input may carry // and /* */ comments and
// trailing commas.
func Parse(data []byte, format Format) (*Book, error) {
	var book Book
	switch format {
	case YAML:
		if err := yaml.Unmarshal(data, &book); err != nil {
			return nil, fmt.Errorf("parsing book: %w", err)
		}
	case JSONC:
		if err := json.Unmarshal(jsonc.ToJSON(data), &book); err != nil {
			return nil, fmt.Errorf("parsing book: %w", err)
		}
	default:
		return nil, fmt.Errorf("%q: %w", format, ErrUnknownFormat)
	}
	return &book, nil
}

// LoadFile reads and parses the book at path.
func LoadFile(path string) (*Book, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	book, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return book, nil
}

// Compiled is a validated book ready for searching.
type Compiled struct {
	Location *time.Location
	Fold     cronexp.FoldPolicy
	Entries  []CompiledEntry
}

// CompiledEntry pairs an entry name with its schedule.
type CompiledEntry struct {
	Name     string
	Schedule cronexp.Schedule
}

// Compile validates every entry and resolves the zone and fold policy,
// using env for whatever the book leaves empty. All problems are reported
// together.
func (b *Book) Compile(env Env) (*Compiled, error) {
	var errs []error

	locName := b.Location
	if locName == "" {
		locName = env.Location
	}
	loc, err := LoadLocation(locName)
	if err != nil {
		errs = append(errs, err)
	}

	foldName := b.Fold
	if foldName == "" {
		foldName = env.Fold
	}
	fold, err := cronexp.ParseFoldPolicy(foldName)
	if err != nil {
		errs = append(errs, fmt.Errorf("fold %q: %w", foldName, err))
	}

	if len(b.Schedules) == 0 {
		errs = append(errs, errors.New("book has no schedules"))
	}

	out := &Compiled{Location: loc, Fold: fold}
	seen := make(map[string]bool, len(b.Schedules))
	for i, entry := range b.Schedules {
		name := strings.TrimSpace(entry.Name)
		switch {
		case name == "":
			errs = append(errs, fmt.Errorf("schedule %d: missing name", i))
			continue
		case seen[name]:
			errs = append(errs, fmt.Errorf("schedule %q: duplicate name", name))
			continue
		}
		seen[name] = true

		s, err := cronexp.Parse(entry.Expr)
		if err != nil {
			errs = append(errs, fmt.Errorf("schedule %q: %w", name, err))
			continue
		}
		out.Entries = append(out.Entries, CompiledEntry{Name: name, Schedule: s})
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return out, nil
}

// Engine returns an engine evaluating in the book's zone with its fold policy.
func (c *Compiled) Engine(logger cronexp.Logger) *cronexp.Engine {
	return cronexp.NewEngine(
		cronexp.WithLocation(c.Location),
		cronexp.WithFoldPolicy(c.Fold),
		cronexp.WithLogger(logger),
	)
}

// LoadLocation resolves a zone name. Empty and "Local" mean the host zone.
func LoadLocation(name string) (*time.Location, error) {
	switch name {
	case "", "Local":
		return time.Local, nil
	case "UTC":
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("location %q: %w", name, err)
	}
	return loc, nil
}

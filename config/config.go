// Package config defines the settings of a layout run, which may be
// read from a YAML file.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	pr "github.com/benoitkugler/folayout/fo/properties"
	"github.com/benoitkugler/folayout/fo/tree"
	"gopkg.in/yaml.v3"
)

// Config stores the settings as written by the user. Lengths use
// the XSL syntax, like "210mm" or "12pt".
type Config struct {
	PageWidth  string `yaml:"page-width"`
	PageHeight string `yaml:"page-height"`
	FontSize   string `yaml:"font-size"`

	// WidowContentLimit and OrphanContentLimit, when not empty,
	// override the values of the table.
	WidowContentLimit  string `yaml:"widow-content-limit"`
	OrphanContentLimit string `yaml:"orphan-content-limit"`

	// FontFile is an optional TrueType or OpenType font used
	// to measure the text. The Go Regular font is used by default.
	FontFile string `yaml:"font-file"`
	Trace    bool   `yaml:"trace"`
}

// Default returns an A4 portrait page, with a 12pt font.
func Default() Config {
	return Config{
		PageWidth:  "210mm",
		PageHeight: "297mm",
		FontSize:   "12pt",
	}
}

// Load reads a YAML configuration. Missing settings keep their
// default value, and unknown settings are rejected.
func Load(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// LoadFile calls [Load] on the content of the file.
func LoadFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()
	return Load(f)
}

// Settings are the resolved values of a [Config], in millipoints.
// Limits are -1 when not overridden.
type Settings struct {
	PageWidth, PageHeight int
	FontSize              int

	WidowContentLimit  int
	OrphanContentLimit int

	FontFile string
	Trace    bool
}

func absoluteLength(name, value string, fontSize int) (int, error) {
	l, err := pr.ParseLength(value, fontSize)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	if l.Kind != pr.LengthAbsolute {
		return 0, fmt.Errorf("invalid %s: %q is not an absolute length", name, value)
	}
	return l.Resolve(0), nil
}

// Resolve parses the lengths of the configuration.
func (cfg Config) Resolve() (Settings, error) {
	out := Settings{WidowContentLimit: -1, OrphanContentLimit: -1, FontFile: cfg.FontFile, Trace: cfg.Trace}
	var err error
	if out.FontSize, err = absoluteLength("font-size", cfg.FontSize, 12*pr.Pt); err != nil {
		return out, err
	}
	if out.PageWidth, err = absoluteLength("page-width", cfg.PageWidth, out.FontSize); err != nil {
		return out, err
	}
	if out.PageHeight, err = absoluteLength("page-height", cfg.PageHeight, out.FontSize); err != nil {
		return out, err
	}
	if cfg.WidowContentLimit != "" {
		if out.WidowContentLimit, err = absoluteLength("widow-content-limit", cfg.WidowContentLimit, out.FontSize); err != nil {
			return out, err
		}
	}
	if cfg.OrphanContentLimit != "" {
		if out.OrphanContentLimit, err = absoluteLength("orphan-content-limit", cfg.OrphanContentLimit, out.FontSize); err != nil {
			return out, err
		}
	}
	return out, nil
}

// Apply sets the overridden properties of table.
func (s Settings) Apply(table *tree.Table) {
	if s.WidowContentLimit >= 0 {
		table.WidowContentLimit = s.WidowContentLimit
	}
	if s.OrphanContentLimit >= 0 {
		table.OrphanContentLimit = s.OrphanContentLimit
	}
}

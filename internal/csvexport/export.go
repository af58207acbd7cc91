package csvexport

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"
)

const (
	defaultPrefix   = "export"
	timestampLayout = "20060102-150405"
)

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

type Config struct {
	Dir    string `mapstructure:"dir"`
	Prefix string `mapstructure:"prefix"`
}

// FileName returns "<prefix>-YYYYMMDD-HHMMSS.csv" with the prefix reduced to
// characters that are safe on every filesystem.
func FileName(prefix string, now time.Time) string {
	p := unsafeChars.ReplaceAllString(prefix, "-")
	p = trimDashes(p)
	if p == "" {
		p = defaultPrefix
	}
	return fmt.Sprintf("%s-%s.csv", p, now.Format(timestampLayout))
}

func trimDashes(s string) string {
	for len(s) > 0 && (s[0] == '-' || s[0] == '.') {
		s = s[1:]
	}
	for len(s) > 0 && s[len(s)-1] == '-' {
		s = s[:len(s)-1]
	}
	return s
}

type Exporter struct {
	c *Config
}

func New(c *Config) *Exporter {
	return &Exporter{c: c}
}

// Write encodes t into a new file under the configured directory and returns
// its path. Nothing is written for an empty table.
func (e *Exporter) Write(t Table, name string, now time.Time) (string, error) {
	b, err := Encode(t)
	if err != nil {
		return "", err
	}
	prefix := e.c.Prefix
	if name != "" {
		prefix = prefix + "-" + name
	}
	dir := e.c.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export dir: %w", err)
	}
	path := filepath.Join(dir, FileName(prefix, now))
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}
	return path, nil
}

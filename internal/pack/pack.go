// Package pack loads exercise packs from YAML or JSON files.
package pack

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/wordiz/internal/exercise"
)

// FormatMajor is the pack format major version this build reads.
const FormatMajor = "v1"

// File is the on-disk shape of a pack.
type File struct {
	Format    string             `json:"format" yaml:"format"`
	Title     string             `json:"title" yaml:"title"`
	Level     int                `json:"level,omitempty" yaml:"level,omitempty"`
	Questions []exercise.Payload `json:"questions" yaml:"questions"`
}

// Pack is a decoded exercise pack. Questions are decoded but not validated;
// a practice session validates them before showing any.
type Pack struct {
	Title     string
	Level     int
	Format    string
	Questions []exercise.Question
}

// FormatError reports a problem with the pack as a whole or one of its
// entries. Index is -1 for pack-level problems.
type FormatError struct {
	Source string
	Index  int
	Err    error
}

func (e *FormatError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("%s: question %d: %v", e.Source, e.Index+1, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// Load reads a pack from path. Files ending in .json are decoded as JSON,
// everything else as YAML.
func Load(path string) (*Pack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pack: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return ParseJSON(filepath.Base(path), data)
	}
	return ParseYAML(filepath.Base(path), data)
}

// ParseYAML decodes a YAML pack. source names the pack in errors.
func ParseYAML(source string, data []byte) (*Pack, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, &FormatError{Source: source, Index: -1, Err: err}
	}
	return build(source, f)
}

// ParseJSON decodes a JSON pack. source names the pack in errors.
func ParseJSON(source string, data []byte) (*Pack, error) {
	var f File
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return nil, &FormatError{Source: source, Index: -1, Err: err}
	}
	return build(source, f)
}

func build(source string, f File) (*Pack, error) {
	if err := checkFormat(f.Format); err != nil {
		return nil, &FormatError{Source: source, Index: -1, Err: err}
	}
	if strings.TrimSpace(f.Title) == "" {
		return nil, &FormatError{Source: source, Index: -1, Err: fmt.Errorf("title is required")}
	}
	if len(f.Questions) == 0 {
		return nil, &FormatError{Source: source, Index: -1, Err: fmt.Errorf("pack has no questions")}
	}

	p := &Pack{
		Title:     f.Title,
		Level:     f.Level,
		Format:    f.Format,
		Questions: make([]exercise.Question, 0, len(f.Questions)),
	}
	seen := make(map[string]int, len(f.Questions))
	for i, payload := range f.Questions {
		if payload.ID == "" {
			payload.ID = fmt.Sprintf("q%d", i+1)
		}
		if first, dup := seen[payload.ID]; dup {
			return nil, &FormatError{Source: source, Index: i,
				Err: fmt.Errorf("id %q already used by question %d", payload.ID, first+1)}
		}
		seen[payload.ID] = i
		q, err := payload.Decode()
		if err != nil {
			return nil, &FormatError{Source: source, Index: i, Err: err}
		}
		if aw, ok := q.(*exercise.ArrangeWords); ok {
			exercise.DeriveTokens(aw)
		}
		p.Questions = append(p.Questions, q)
	}
	return p, nil
}

// checkFormat accepts any semver with the supported major, with or without
// the leading "v".
func checkFormat(format string) error {
	format = strings.TrimSpace(format)
	if format == "" {
		return fmt.Errorf("format is required")
	}
	v := format
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return fmt.Errorf("format %q is not a semantic version", format)
	}
	if semver.Major(v) != FormatMajor {
		return fmt.Errorf("format %s is not supported, want %s.x", format, FormatMajor)
	}
	return nil
}

// Validate runs the content validator over every question and returns the
// findings keyed by question id. Questions without findings are omitted.
func (p *Pack) Validate() map[string][]exercise.ValidationError {
	out := make(map[string][]exercise.ValidationError)
	for _, q := range p.Questions {
		if findings := exercise.Validate(q); len(findings) > 0 {
			out[q.QuestionID()] = findings
		}
	}
	return out
}

// Encode returns the canonical file form of a pack.
func Encode(p *Pack) File {
	f := File{Format: "1.0.0", Title: p.Title, Level: p.Level}
	for _, q := range p.Questions {
		f.Questions = append(f.Questions, exercise.Encode(q))
	}
	return f
}

// Write stores a pack as YAML.
func Write(path string, p *Pack) error {
	data, err := yaml.Marshal(Encode(p))
	if err != nil {
		return fmt.Errorf("encode pack: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write pack: %w", err)
	}
	return nil
}

// Package config loads conflation settings from YAML and validates them
// against an embedded CUE schema, which also supplies the defaults.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaSource string

// Config is a validated configuration with defaults applied.
type Config struct {
	Modules []string       `json:"modules,omitempty"`
	Limits  map[string]int `json:"limits"`
	Output  Output         `json:"output"`
	Store   *Store         `json:"store,omitempty"`
	Strict  bool           `json:"strict"`
}

// Output controls where and how traces are flushed.
type Output struct {
	Dir         string `json:"dir"`
	Parallelism int    `json:"parallelism"`
}

// Store enables the conflation history database.
type Store struct {
	Path string `json:"path"`
}

// Error is a configuration that failed to parse or validate.
type Error struct {
	Code    string `json:"code"`
	Path    string `json:"path,omitempty"`
	Message string `json:"message"`
}

// Error codes.
const (
	ErrCodeRead   = "CONFIG_READ"
	ErrCodeSyntax = "CONFIG_SYNTAX"
	ErrCodeSchema = "CONFIG_SCHEMA"
)

func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Path, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Default returns the configuration of an empty file.
func Default() *Config {
	cfg, err := Parse(nil)
	if err != nil {
		panic(fmt.Sprintf("embedded schema rejects empty config: %v", err))
	}
	return cfg
}

// Load reads and validates the YAML file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Code: ErrCodeRead, Message: err.Error()}
	}
	return Parse(data)
}

// Parse validates YAML data. Every schema violation is reported, joined.
func Parse(data []byte) (*Config, error) {
	raw := map[string]any{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &Error{Code: ErrCodeSyntax, Message: err.Error()}
	}

	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue")).LookupPath(cue.ParsePath("#Config"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	v := schema.Unify(ctx.Encode(raw))
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, schemaError(err)
	}
	var cfg Config
	if err := v.Decode(&cfg); err != nil {
		return nil, schemaError(err)
	}
	return &cfg, nil
}

func schemaError(err error) error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return &Error{Code: ErrCodeSchema, Message: err.Error()}
	}
	first := errs[0]
	format, args := first.Msg()
	e := &Error{Code: ErrCodeSchema, Path: strings.Join(first.Path(), "."), Message: fmt.Sprintf(format, args...)}
	if len(errs) > 1 {
		e.Message = fmt.Sprintf("%s (and %d more)", e.Message, len(errs)-1)
	}
	return e
}


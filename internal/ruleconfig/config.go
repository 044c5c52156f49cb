package ruleconfig

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/autopair/internal/rules"
)

// ErrUnknownField indicates a definition table with an unrecognized
// key.
var ErrUnknownField = errors.New("unknown field")

// ParseError describes a configuration file that failed to parse.
type ParseError struct {
	// Path is the file that failed.
	Path string

	// Err is the underlying TOML error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error { return e.Err }

// file is the TOML surface of a configuration.
type file struct {
	Pairs map[string]any `toml:"pairs"`
}

// Loader reads rule definitions from TOML. It owns the Lua environment
// that compiled predicates run in; keep the Loader alive as long as
// rules compiled from its definitions are in use.
type Loader struct {
	env *LuaEnv
}

// NewLoader creates a Loader with a fresh Lua environment.
func NewLoader() *Loader {
	return &Loader{env: NewLuaEnv()}
}

// Close releases the Loader's Lua environment.
func (l *Loader) Close() {
	l.env.Close()
}

// Load reads definitions from a TOML file. A missing file is not an
// error; it loads as no definitions.
func (l *Loader) Load(path string) (map[string][]rules.Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return l.parse(path, data)
}

// LoadReader reads definitions from an io.Reader.
func (l *Loader) LoadReader(r io.Reader) (map[string][]rules.Definition, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return l.parse("<reader>", data)
}

func (l *Loader) parse(source string, data []byte) (map[string][]rules.Definition, error) {
	var cfg file
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, &ParseError{Path: source, Err: err}
	}

	defs := make(map[string][]rules.Definition, len(cfg.Pairs))
	for key, raw := range cfg.Pairs {
		list, err := l.convertEntry(key, raw)
		if err != nil {
			return nil, err
		}
		defs[key] = list
	}
	return defs, nil
}

// convertEntry turns one [pairs] value into definitions: a bare string
// is shorthand for a plain pair, a table is one definition, and an
// array holds several.
func (l *Loader) convertEntry(key string, raw any) ([]rules.Definition, error) {
	switch v := raw.(type) {
	case string:
		return []rules.Definition{rules.Pair(v)}, nil
	case map[string]any:
		def, err := l.convertDef(key, 0, v)
		if err != nil {
			return nil, err
		}
		return []rules.Definition{def}, nil
	case []any:
		defs := make([]rules.Definition, 0, len(v))
		for i, item := range v {
			switch elem := item.(type) {
			case string:
				defs = append(defs, rules.Pair(elem))
			case map[string]any:
				def, err := l.convertDef(key, i, elem)
				if err != nil {
					return nil, err
				}
				defs = append(defs, def)
			default:
				return nil, defErr(key, i, "", fmt.Errorf("expected string or table, got %T", item))
			}
		}
		return defs, nil
	default:
		return nil, defErr(key, 0, "", fmt.Errorf("expected string, table, or array, got %T", raw))
	}
}

// convertDef builds one Definition from a TOML table.
func (l *Loader) convertDef(key string, index int, tbl map[string]any) (rules.Definition, error) {
	var def rules.Definition

	for field, raw := range tbl {
		var err error
		switch field {
		case "closing":
			def.Closing, err = wantString(raw)
		case "opening":
			def.Opening, err = wantString(raw)
		case "priority":
			var n int
			n, err = wantInt(raw)
			def.Priority = &n
		case "languages":
			def.Languages, err = wantStrings(raw)
		case "cmdline":
			var b bool
			b, err = wantBool(raw)
			def.Cmdline = &b
		case "when":
			def.When, err = l.wantPredicate(raw)
		case "open":
			def.Open, err = l.wantToggle(raw)
		case "close":
			def.Close, err = l.wantToggle(raw)
		case "open_or_close":
			def.OpenOrClose, err = l.wantToggle(raw)
		case "enter":
			def.Enter, err = l.wantToggle(raw)
		case "backspace":
			def.Backspace, err = l.wantToggle(raw)
		case "space":
			def.Space, err = l.wantToggle(raw)
		default:
			err = ErrUnknownField
		}
		if err != nil {
			return rules.Definition{}, defErr(key, index, field, err)
		}
	}
	return def, nil
}

// wantPredicate compiles a Lua `when` condition.
func (l *Loader) wantPredicate(raw any) (rules.Predicate, error) {
	src, err := wantString(raw)
	if err != nil {
		return nil, err
	}
	return l.env.CompilePredicate(src)
}

// wantToggle accepts a boolean or a Lua function source.
func (l *Loader) wantToggle(raw any) (rules.Toggle, error) {
	switch v := raw.(type) {
	case bool:
		return rules.Bool(v), nil
	case string:
		pred, err := l.env.CompilePredicate(v)
		if err != nil {
			return rules.Toggle{}, err
		}
		return rules.Pred(pred), nil
	default:
		return rules.Toggle{}, fmt.Errorf("expected bool or lua function, got %T", raw)
	}
}

func wantString(raw any) (string, error) {
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("expected string, got %T", raw)
	}
	return s, nil
}

func wantBool(raw any) (bool, error) {
	b, ok := raw.(bool)
	if !ok {
		return false, fmt.Errorf("expected bool, got %T", raw)
	}
	return b, nil
}

func wantInt(raw any) (int, error) {
	switch v := raw.(type) {
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	default:
		return 0, fmt.Errorf("expected integer, got %T", raw)
	}
}

func wantStrings(raw any) ([]string, error) {
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("expected array of strings, got %T", raw)
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, err := wantString(item)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func defErr(key string, index int, field string, err error) error {
	return &rules.DefinitionError{Key: key, Index: index, Field: field, Err: err}
}

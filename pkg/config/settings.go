package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

var (
	// ErrMissingKey is returned when a setting is not present
	ErrMissingKey = errors.New("missing setting")
	// ErrInvalidValue is returned when a setting cannot be parsed as the requested type
	ErrInvalidValue = errors.New("invalid setting value")
)

// Settings is a flat KEY -> value source. Keys are case-insensitive and
// stored upper-case. The typed getters never fail: they log the problem and
// fall back to a zero or default value.
type Settings struct {
	values map[string]string
	logger zerolog.Logger
}

// New creates settings from an in-memory map
func New(values map[string]string, logger zerolog.Logger) *Settings {
	s := &Settings{
		values: make(map[string]string, len(values)),
		logger: logger,
	}
	for k, v := range values {
		s.Set(k, v)
	}
	return s
}

// Load reads a YAML file of flat KEY: value pairs
func Load(path string, logger zerolog.Logger) (*Settings, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	s, err := Parse(b, logger)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes YAML settings. Values must be scalars; nested mappings and
// lists are rejected.
func Parse(data []byte, logger zerolog.Logger) (*Settings, error) {
	var nodes map[string]yaml.Node
	if err := yaml.Unmarshal(data, &nodes); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}

	s := New(nil, logger)
	for k, node := range nodes {
		if node.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("key %s (line %d) must be a scalar: %w", k, node.Line, ErrInvalidValue)
		}
		s.Set(k, node.Value)
	}
	return s, nil
}

// Set stores value under key, replacing any previous value
func (s *Settings) Set(key, value string) {
	s.values[normalizeKey(key)] = strings.TrimSpace(value)
}

// ApplyOverrides sets each KEY=VALUE pair in order
func (s *Settings) ApplyOverrides(overrides []string) error {
	for _, o := range overrides {
		key, value, ok := strings.Cut(o, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return fmt.Errorf("override %q is not KEY=VALUE: %w", o, ErrInvalidValue)
		}
		s.Set(key, value)
	}
	return nil
}

// Has reports whether key is set
func (s *Settings) Has(key string) bool {
	_, ok := s.values[normalizeKey(key)]
	return ok
}

// Keys returns the sorted set of keys
func (s *Settings) Keys() []string {
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// LookupString returns the raw value of key
func (s *Settings) LookupString(key string) (string, error) {
	v, ok := s.values[normalizeKey(key)]
	if !ok {
		return "", fmt.Errorf("%s: %w", normalizeKey(key), ErrMissingKey)
	}
	return v, nil
}

// LookupInt parses key as a base-10 integer
func (s *Settings) LookupInt(key string) (int, error) {
	v, err := s.LookupString(key)
	if err != nil {
		return 0, err
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s=%q is not an integer: %w", normalizeKey(key), v, ErrInvalidValue)
	}
	return i, nil
}

// LookupFloat parses key as a 64-bit float
func (s *Settings) LookupFloat(key string) (float64, error) {
	v, err := s.LookupString(key)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s=%q is not a number: %w", normalizeKey(key), v, ErrInvalidValue)
	}
	return f, nil
}

// String returns key's value, or "" after logging when it is missing
func (s *Settings) String(key string) string {
	v, err := s.LookupString(key)
	if err != nil {
		s.logger.Error().Err(err).Msg("Using empty string")
	}
	return v
}

// Int returns key as an integer, or 0 after logging when missing or malformed
func (s *Settings) Int(key string) int {
	i, err := s.LookupInt(key)
	if err != nil {
		s.logger.Error().Err(err).Msg("Using 0")
	}
	return i
}

// Float returns key as a float, or 0 after logging when missing or malformed
func (s *Settings) Float(key string) float64 {
	f, err := s.LookupFloat(key)
	if err != nil {
		s.logger.Error().Err(err).Msg("Using 0")
	}
	return f
}

// StringOr returns key's value, or def when it is missing
func (s *Settings) StringOr(key, def string) string {
	v, err := s.LookupString(key)
	if err != nil {
		return def
	}
	return v
}

// IntOr returns key as an integer. A missing key silently yields def, a
// malformed one is logged first.
func (s *Settings) IntOr(key string, def int) int {
	i, err := s.LookupInt(key)
	if err != nil {
		s.logDefault(err, def)
		return def
	}
	return i
}

// FloatOr returns key as a float. A missing key silently yields def, a
// malformed one is logged first.
func (s *Settings) FloatOr(key string, def float64) float64 {
	f, err := s.LookupFloat(key)
	if err != nil {
		s.logDefault(err, def)
		return def
	}
	return f
}

func (s *Settings) logDefault(err error, def any) {
	if errors.Is(err, ErrMissingKey) {
		return
	}
	s.logger.Warn().Err(err).Interface("default", def).Msg("Using default")
}

func normalizeKey(key string) string {
	return strings.ToUpper(strings.TrimSpace(key))
}

// Overrides collects repeated -set KEY=VALUE command line flags
type Overrides []string

func (o *Overrides) String() string {
	return strings.Join(*o, ",")
}

func (o *Overrides) Set(value string) error {
	*o = append(*o, value)
	return nil
}

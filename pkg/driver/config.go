package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/The-Code-In-Sheep-s-Clothing/TomProtoype/pkg/interpreter"
)

// ConfigFileName is looked up next to the program document.
const ConfigFileName = "boardlang.yml"

// ConfigEnv names the environment variable holding a config path.
const ConfigEnv = "BOARDLANG_CONFIG"

// CaptureMode selects whether place may capture an occupied cell.
type CaptureMode string

const (
	CaptureExplicit CaptureMode = "explicit"
	CaptureImplicit CaptureMode = "implicit"
)

// Config is the parsed contents of boardlang.yml.
type Config struct {
	Path     string
	MaxTurns int
	Capture  CaptureMode
	Seed     int64
	Moves    []interpreter.Move
	LogLevel logrus.Level
}

type configFile struct {
	MaxTurns *int     `yaml:"max_turns"`
	Capture  string   `yaml:"capture"`
	Seed     int64    `yaml:"seed"`
	Moves    []string `yaml:"moves"`
	LogLevel string   `yaml:"log_level"`
}

// DefaultConfig is used when no configuration file is found.
func DefaultConfig() *Config {
	return &Config{Capture: CaptureExplicit, LogLevel: logrus.WarnLevel}
}

// ValidationError aggregates configuration validation failures.
type ValidationError struct {
	Path   string
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("config validation failed")
	if e.Path != "" {
		b.WriteString(" for ")
		b.WriteString(e.Path)
	}
	b.WriteString(":")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// ResolveConfigPath picks the configuration for programPath: the explicit
// path first, then $BOARDLANG_CONFIG, then boardlang.yml beside the
// program. It returns "" when none applies.
func ResolveConfigPath(explicit, programPath string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv(ConfigEnv); env != "" {
		return env
	}
	if programPath == "" {
		return ""
	}
	candidate := filepath.Join(filepath.Dir(programPath), ConfigFileName)
	if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
		return candidate
	}
	return ""
}

// LoadConfig parses and validates the configuration at path. An empty path
// yields the defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", absPath, err)
	}
	defer file.Close()
	return DecodeConfig(file, absPath)
}

// DecodeConfig parses a configuration document from r; path is used in
// messages only.
func DecodeConfig(r io.Reader, path string) (*Config, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var raw configFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			cfg := DefaultConfig()
			cfg.Path = path
			return cfg, nil
		}
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return raw.toConfig(path)
}

func (raw configFile) toConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.Path = path
	cfg.Seed = raw.Seed
	errs := ValidationError{Path: path}

	if raw.MaxTurns != nil {
		if *raw.MaxTurns < 0 {
			errs.Issues = append(errs.Issues, fmt.Sprintf("max_turns must be zero or positive, got %d", *raw.MaxTurns))
		} else {
			cfg.MaxTurns = *raw.MaxTurns
		}
	}
	switch CaptureMode(strings.ToLower(raw.Capture)) {
	case "", CaptureExplicit:
	case CaptureImplicit:
		cfg.Capture = CaptureImplicit
	default:
		errs.Issues = append(errs.Issues, fmt.Sprintf("capture must be %q or %q, got %q", CaptureExplicit, CaptureImplicit, raw.Capture))
	}
	for idx, move := range raw.Moves {
		m, err := ParseMove(move)
		if err != nil {
			errs.Issues = append(errs.Issues, fmt.Sprintf("moves[%d]: %v", idx, err))
			continue
		}
		cfg.Moves = append(cfg.Moves, m)
	}
	if raw.LogLevel != "" {
		level, err := logrus.ParseLevel(raw.LogLevel)
		if err != nil {
			errs.Issues = append(errs.Issues, fmt.Sprintf("log_level: %v", err))
		} else {
			cfg.LogLevel = level
		}
	}

	if len(errs.Issues) > 0 {
		return nil, &errs
	}
	return cfg, nil
}

// ParseMove reads a cell written as "x,y".
func ParseMove(text string) (interpreter.Move, error) {
	xs, ys, ok := strings.Cut(strings.TrimSpace(text), ",")
	if !ok {
		return interpreter.Move{}, fmt.Errorf("expected x,y, got %q", text)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return interpreter.Move{}, fmt.Errorf("bad x in %q", text)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return interpreter.Move{}, fmt.Errorf("bad y in %q", text)
	}
	return interpreter.Move{X: x, Y: y}, nil
}

// Options turns the configuration into interpreter options. Scripted moves
// become the input unless input is non-nil.
func (c *Config) Options(logger *logrus.Logger, out io.Writer, input interpreter.CellInput) interpreter.Options {
	if input == nil && len(c.Moves) > 0 {
		input = interpreter.NewScriptedInput(c.Moves...)
	}
	return interpreter.Options{
		Logger:          logger,
		Output:          out,
		Input:           input,
		MaxTurns:        c.MaxTurns,
		ImplicitCapture: c.Capture == CaptureImplicit,
		Seed:            uint64(c.Seed),
	}
}

// Package config loads modalnorm settings from YAML with MODALNORM_*
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/rfielding/kripke-modal/formula"
	"github.com/rfielding/kripke-modal/generator"
	"github.com/rfielding/kripke-modal/normalize"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "MODALNORM_"

type Config struct {
	Axiom      string   `yaml:"axiom" validate:"oneof=K T B 4 5 k t b"`
	Passes     []string `yaml:"passes" validate:"min=1,dive,oneof=nnf simplify flatten axiom"`
	MaxRounds  int      `yaml:"max_rounds" validate:"gte=1,lte=64"`
	InternSize int      `yaml:"intern_size" validate:"gte=1"`
	Workers    int      `yaml:"workers" validate:"gte=1,lte=256"`
	LogLevel   string   `yaml:"log_level" validate:"oneof=debug info warn error"`

	Generator GeneratorConfig `yaml:"generator"`
}

type GeneratorConfig struct {
	Depth      int           `yaml:"depth" validate:"gte=0,lte=8"`
	Clauses    int           `yaml:"clauses" validate:"gte=1"`
	Variables  int           `yaml:"variables" validate:"gte=1"`
	Modalities int           `yaml:"modalities" validate:"gte=1"`
	S5         bool          `yaml:"s5"`
	Seed       uint64        `yaml:"seed"`
	ClauseDist [][]float64   `yaml:"clause_dist" validate:"dive,dive,gte=0"`
	PropDist   [][][]float64 `yaml:"prop_dist" validate:"dive,dive,dive,gte=0"`
}

var validate = validator.New()

func Default() *Config {
	gp := generator.DefaultParams()
	passes := make([]string, len(normalize.DefaultPasses))
	for i, p := range normalize.DefaultPasses {
		passes[i] = string(p)
	}
	return &Config{
		Axiom:      formula.AxiomK.String(),
		Passes:     passes,
		MaxRounds:  8,
		InternSize: 4096,
		Workers:    4,
		LogLevel:   "info",
		Generator: GeneratorConfig{
			Depth:      gp.Depth,
			Clauses:    gp.Clauses,
			Variables:  gp.Variables,
			Modalities: gp.Modalities,
			Seed:       1,
			ClauseDist: gp.ClauseDist,
			PropDist:   gp.PropDist,
		},
	}
}

// Load reads the YAML file at path over the defaults, then applies the
// environment. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok {
			*dst = v
		}
	}
	num := func(name string, dst *int) error {
		v, ok := lookup(EnvPrefix + name)
		if !ok {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parsing %s%s: %w", EnvPrefix, name, err)
		}
		*dst = n
		return nil
	}

	str("AXIOM", &c.Axiom)
	str("LOG_LEVEL", &c.LogLevel)
	if v, ok := lookup(EnvPrefix + "PASSES"); ok {
		c.Passes = splitList(v)
	}
	for name, dst := range map[string]*int{
		"MAX_ROUNDS":  &c.MaxRounds,
		"INTERN_SIZE": &c.InternSize,
		"WORKERS":     &c.Workers,
		"DEPTH":       &c.Generator.Depth,
		"CLAUSES":     &c.Generator.Clauses,
	} {
		if err := num(name, dst); err != nil {
			return err
		}
	}
	if v, ok := lookup(EnvPrefix + "SEED"); ok {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("parsing %sSEED: %w", EnvPrefix, err)
		}
		c.Generator.Seed = seed
	}
	if v, ok := lookup(EnvPrefix + "S5"); ok {
		s5, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("parsing %sS5: %w", EnvPrefix, err)
		}
		c.Generator.S5 = s5
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate checks the struct tags and reports every failing field.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

// PipelineOptions converts the normalization settings. Logger and registry
// are left for the caller.
func (c *Config) PipelineOptions() (normalize.Options, error) {
	axiom, err := formula.ParseAxiom(c.Axiom)
	if err != nil {
		return normalize.Options{}, err
	}
	passes, err := normalize.ParsePasses(c.Passes)
	if err != nil {
		return normalize.Options{}, err
	}
	return normalize.Options{
		Passes:     passes,
		Axiom:      axiom,
		MaxRounds:  c.MaxRounds,
		InternSize: c.InternSize,
		Workers:    c.Workers,
	}, nil
}

func (c *Config) GeneratorParams() generator.Params {
	return generator.Params{
		Depth:      c.Generator.Depth,
		Clauses:    c.Generator.Clauses,
		Variables:  c.Generator.Variables,
		Modalities: c.Generator.Modalities,
		ClauseDist: c.Generator.ClauseDist,
		PropDist:   c.Generator.PropDist,
		S5:         c.Generator.S5,
	}
}

func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Package config resolves devkit settings from built-in defaults, an
// optional ~/.devkit/config.toml, an optional ./devkit.yml and DEVKIT_*
// environment variables, in increasing order of precedence.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/RowanDark/devkit/internal/digest"
)

const (
	// HomeDirName is the per-user configuration directory under $HOME.
	HomeDirName = ".devkit"
	// HomeFileName is the TOML file inside HomeDirName.
	HomeFileName = "config.toml"
	// LocalFileName is the YAML file looked up in the working directory.
	LocalFileName = "devkit.yml"
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "DEVKIT_"
)

// Config captures the devkit configuration.
type Config struct {
	Output OutputConfig `yaml:"output" toml:"output"`
	JSON   JSONConfig   `yaml:"json" toml:"json"`
	Crypto CryptoConfig `yaml:"crypto" toml:"crypto"`
	Hash   HashConfig   `yaml:"hash" toml:"hash"`
	Random RandomConfig `yaml:"random" toml:"random"`
	Text   TextConfig   `yaml:"text" toml:"text"`
	Log    LogConfig    `yaml:"log" toml:"log"`
	Trace  TraceConfig  `yaml:"trace" toml:"trace"`
}

// OutputConfig controls how the CLI prints results.
type OutputConfig struct {
	// JSON wraps every result in a JSON envelope.
	JSON bool `yaml:"json" toml:"json"`
	// Newline appends a trailing newline to text results.
	Newline bool `yaml:"newline" toml:"newline"`
}

// JSONConfig holds the default indent of json_format and yaml_to_json.
type JSONConfig struct {
	Indent int `yaml:"indent" toml:"indent" validate:"gte=0,lte=10"`
}

// CryptoConfig holds the default AES mode and key scheme.
type CryptoConfig struct {
	Mode   string `yaml:"mode" toml:"mode" validate:"oneof=CBC ECB cbc ecb"`
	Scheme string `yaml:"scheme" toml:"scheme" validate:"oneof=raw passphrase"`
}

// HashConfig holds the default digest algorithm of hash and hmac.
type HashConfig struct {
	Algorithm string `yaml:"algorithm" toml:"algorithm" validate:"required,digest_algorithm"`
}

// RandomConfig holds random_string and password_generate defaults.
type RandomConfig struct {
	Length int  `yaml:"length" toml:"length" validate:"gte=1,lte=4096"`
	Secure bool `yaml:"secure" toml:"secure"`
}

// TextConfig holds the default collation locale of text_sort.
type TextConfig struct {
	Locale string `yaml:"locale" toml:"locale" validate:"omitempty,bcp47_language_tag"`
}

// LogConfig controls the audit log. Events go to stderr unless File is set.
type LogConfig struct {
	Enabled bool   `yaml:"enabled" toml:"enabled"`
	File    string `yaml:"file" toml:"file"`
}

// TraceConfig controls span export. Tracing is off while File is empty.
type TraceConfig struct {
	File        string  `yaml:"file" toml:"file"`
	SampleRatio float64 `yaml:"sample_ratio" toml:"sample_ratio" validate:"gte=0,lte=1"`
}

// Default returns the built-in devkit configuration.
func Default() Config {
	return Config{
		Output: OutputConfig{JSON: false, Newline: true},
		JSON:   JSONConfig{Indent: 2},
		Crypto: CryptoConfig{Mode: "CBC", Scheme: "raw"},
		Hash:   HashConfig{Algorithm: string(digest.SHA256)},
		Random: RandomConfig{Length: 16, Secure: false},
		Text:   TextConfig{Locale: ""},
		Log:    LogConfig{Enabled: false, File: ""},
		Trace:  TraceConfig{File: "", SampleRatio: 1},
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("digest_algorithm", func(fl validator.FieldLevel) bool {
		_, err := digest.ParseAlgorithm(fl.Field().String())
		return err == nil
	})
	return v
}

// Validate checks every field against its constraints.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fmt.Sprintf("%s: invalid value %v (%s)", fe.Namespace(), fe.Value(), fe.Tag()))
		}
		return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
	}
	return nil
}

// Sources lists the files that contributed to a loaded configuration.
type Sources struct {
	Files []string
}

// Load resolves the configuration using defaults, configuration files and
// environment overrides, then validates the result.
func Load() (Config, Sources, error) {
	cfg := Default()
	var src Sources

	home, err := os.UserHomeDir()
	if err == nil {
		path := filepath.Join(home, HomeDirName, HomeFileName)
		ok, err := applyFile(&cfg, path, "toml")
		if err != nil {
			return Config{}, src, err
		}
		if ok {
			src.Files = append(src.Files, path)
		}
	}

	wd, err := os.Getwd()
	if err != nil {
		return Config{}, src, fmt.Errorf("determine working directory: %w", err)
	}
	path := filepath.Join(wd, LocalFileName)
	ok, err := applyFile(&cfg, path, "yaml")
	if err != nil {
		return Config{}, src, err
	}
	if ok {
		src.Files = append(src.Files, path)
	}

	if err := applyEnvOverrides(&cfg, os.Getenv); err != nil {
		return Config{}, src, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, src, err
	}
	return cfg, src, nil
}

func applyFile(cfg *Config, path, format string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := applyFileConfig(cfg, data, format); err != nil {
		return false, fmt.Errorf("parse config %s: %w", path, err)
	}
	return true, nil
}

type fileConfig struct {
	Output *fileOutputConfig `yaml:"output" toml:"output"`
	JSON   *fileJSONConfig   `yaml:"json" toml:"json"`
	Crypto *fileCryptoConfig `yaml:"crypto" toml:"crypto"`
	Hash   *fileHashConfig   `yaml:"hash" toml:"hash"`
	Random *fileRandomConfig `yaml:"random" toml:"random"`
	Text   *fileTextConfig   `yaml:"text" toml:"text"`
	Log    *fileLogConfig    `yaml:"log" toml:"log"`
	Trace  *fileTraceConfig  `yaml:"trace" toml:"trace"`
}

type fileOutputConfig struct {
	JSON    *bool `yaml:"json" toml:"json"`
	Newline *bool `yaml:"newline" toml:"newline"`
}

type fileJSONConfig struct {
	Indent *int `yaml:"indent" toml:"indent"`
}

type fileCryptoConfig struct {
	Mode   *string `yaml:"mode" toml:"mode"`
	Scheme *string `yaml:"scheme" toml:"scheme"`
}

type fileHashConfig struct {
	Algorithm *string `yaml:"algorithm" toml:"algorithm"`
}

type fileRandomConfig struct {
	Length *int  `yaml:"length" toml:"length"`
	Secure *bool `yaml:"secure" toml:"secure"`
}

type fileTextConfig struct {
	Locale *string `yaml:"locale" toml:"locale"`
}

type fileLogConfig struct {
	Enabled *bool   `yaml:"enabled" toml:"enabled"`
	File    *string `yaml:"file" toml:"file"`
}

type fileTraceConfig struct {
	File        *string  `yaml:"file" toml:"file"`
	SampleRatio *float64 `yaml:"sample_ratio" toml:"sample_ratio"`
}

func applyFileConfig(cfg *Config, data []byte, format string) error {
	var fc fileConfig
	var err error
	switch format {
	case "yaml":
		fc, err = parseYAML(data)
	case "toml":
		fc, err = parseTOML(data)
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
	if err != nil {
		return err
	}

	if fc.Output != nil {
		setBool(&cfg.Output.JSON, fc.Output.JSON)
		setBool(&cfg.Output.Newline, fc.Output.Newline)
	}
	if fc.JSON != nil && fc.JSON.Indent != nil {
		cfg.JSON.Indent = *fc.JSON.Indent
	}
	if fc.Crypto != nil {
		setString(&cfg.Crypto.Mode, fc.Crypto.Mode)
		setString(&cfg.Crypto.Scheme, fc.Crypto.Scheme)
	}
	if fc.Hash != nil {
		setString(&cfg.Hash.Algorithm, fc.Hash.Algorithm)
	}
	if fc.Random != nil {
		if fc.Random.Length != nil {
			cfg.Random.Length = *fc.Random.Length
		}
		setBool(&cfg.Random.Secure, fc.Random.Secure)
	}
	if fc.Text != nil {
		setString(&cfg.Text.Locale, fc.Text.Locale)
	}
	if fc.Log != nil {
		setBool(&cfg.Log.Enabled, fc.Log.Enabled)
		setString(&cfg.Log.File, fc.Log.File)
	}
	if fc.Trace != nil {
		setString(&cfg.Trace.File, fc.Trace.File)
		if fc.Trace.SampleRatio != nil {
			cfg.Trace.SampleRatio = *fc.Trace.SampleRatio
		}
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func parseYAML(data []byte) (fileConfig, error) {
	var fc fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return fileConfig{}, err
	}
	return fc, nil
}

func parseTOML(data []byte) (fileConfig, error) {
	var fc fileConfig
	md, err := toml.Decode(string(data), &fc)
	if err != nil {
		return fileConfig{}, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return fileConfig{}, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return fc, nil
}

type envOverride struct {
	name  string
	apply func(cfg *Config, val string) error
}

var envOverrides = []envOverride{
	{"OUTPUT_JSON", boolEnv(func(c *Config) *bool { return &c.Output.JSON })},
	{"OUTPUT_NEWLINE", boolEnv(func(c *Config) *bool { return &c.Output.Newline })},
	{"JSON_INDENT", intEnv(func(c *Config) *int { return &c.JSON.Indent })},
	{"CRYPTO_MODE", stringEnv(func(c *Config) *string { return &c.Crypto.Mode })},
	{"CRYPTO_SCHEME", stringEnv(func(c *Config) *string { return &c.Crypto.Scheme })},
	{"HASH_ALGORITHM", stringEnv(func(c *Config) *string { return &c.Hash.Algorithm })},
	{"RANDOM_LENGTH", intEnv(func(c *Config) *int { return &c.Random.Length })},
	{"RANDOM_SECURE", boolEnv(func(c *Config) *bool { return &c.Random.Secure })},
	{"TEXT_LOCALE", stringEnv(func(c *Config) *string { return &c.Text.Locale })},
	{"LOG_ENABLED", boolEnv(func(c *Config) *bool { return &c.Log.Enabled })},
	{"LOG_FILE", stringEnv(func(c *Config) *string { return &c.Log.File })},
	{"TRACE_FILE", stringEnv(func(c *Config) *string { return &c.Trace.File })},
	{"TRACE_SAMPLE_RATIO", floatEnv(func(c *Config) *float64 { return &c.Trace.SampleRatio })},
}

// EnvNames lists every environment variable Load reads.
func EnvNames() []string {
	names := make([]string, len(envOverrides))
	for i, o := range envOverrides {
		names[i] = EnvPrefix + o.name
	}
	return names
}

func applyEnvOverrides(cfg *Config, getenv func(string) string) error {
	for _, o := range envOverrides {
		val := strings.TrimSpace(getenv(EnvPrefix + o.name))
		if val == "" {
			continue
		}
		if err := o.apply(cfg, val); err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, o.name, err)
		}
	}
	return nil
}

func stringEnv(field func(*Config) *string) func(*Config, string) error {
	return func(cfg *Config, val string) error {
		*field(cfg) = val
		return nil
	}
}

func boolEnv(field func(*Config) *bool) func(*Config, string) error {
	return func(cfg *Config, val string) error {
		parsed, err := parseBool(val)
		if err != nil {
			return err
		}
		*field(cfg) = parsed
		return nil
	}
}

func intEnv(field func(*Config) *int) func(*Config, string) error {
	return func(cfg *Config, val string) error {
		parsed, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid integer: %s", val)
		}
		*field(cfg) = parsed
		return nil
	}
}

func floatEnv(field func(*Config) *float64) func(*Config, string) error {
	return func(cfg *Config, val string) error {
		parsed, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return fmt.Errorf("invalid number: %s", val)
		}
		*field(cfg) = parsed
		return nil
	}
}

func parseBool(val string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "true", "1", "yes", "on":
		return true, nil
	case "false", "0", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean: %s", val)
	}
}

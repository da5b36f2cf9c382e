package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

type File struct {
	Version int    `yaml:"version" json:"version"`
	Server  Server `yaml:"server" json:"server"`
	Auth    Auth   `yaml:"auth" json:"auth"`
	Flash   Flash  `yaml:"flash" json:"flash"`
	MDNS    MDNS   `yaml:"mdns" json:"mdns"`
	Model   Model  `yaml:"model" json:"model"`
}

type Server struct {
	Addr        string   `yaml:"addr" json:"addr"`
	GRPCAddr    string   `yaml:"grpc_addr,omitempty" json:"grpc_addr,omitempty"`
	DBPath      string   `yaml:"db_path" json:"db_path"`
	StaticDir   string   `yaml:"static_dir,omitempty" json:"static_dir,omitempty"`
	StaticAllow []string `yaml:"static_allow,omitempty" json:"static_allow,omitempty"`
}

type Auth struct {
	JWTSecret string        `yaml:"jwt_secret" json:"-"`
	TokenTTL  time.Duration `yaml:"token_ttl" json:"token_ttl"`
}

// Flash controls notification lifetimes. TTL is the auto-dismiss delay and
// Exit the length of the exit animation that precedes removal.
type Flash struct {
	TTL  time.Duration `yaml:"ttl" json:"ttl"`
	Exit time.Duration `yaml:"exit" json:"exit"`
}

type MDNS struct {
	Enable   bool   `yaml:"enable" json:"enable"`
	Instance string `yaml:"instance,omitempty" json:"instance,omitempty"`
}

type Model struct {
	Version       string  `yaml:"version" json:"version"`
	RainThreshold float64 `yaml:"rain_threshold" json:"rain_threshold"`
	MaxConfidence float64 `yaml:"max_confidence" json:"max_confidence"`
}

const (
	DefaultAddr          = ":8080"
	DefaultDBPath        = "raincast.db"
	DefaultJWTSecret     = "raincast-dev-secret-change-me"
	DefaultTokenTTL      = 7 * 24 * time.Hour
	DefaultFlashTTL      = 5 * time.Second
	DefaultFlashExit     = 300 * time.Millisecond
	DefaultModelVersion  = "v1.0.0"
	DefaultRainThreshold = 60
	DefaultMaxConfidence = 95
)

func Default() File {
	return File{
		Version: 1,
		Server: Server{
			Addr:        DefaultAddr,
			DBPath:      DefaultDBPath,
			StaticAllow: []string{"css/**/*.css", "img/**/*.{png,svg,ico}"},
		},
		Auth: Auth{
			JWTSecret: DefaultJWTSecret,
			TokenTTL:  DefaultTokenTTL,
		},
		Flash: Flash{
			TTL:  DefaultFlashTTL,
			Exit: DefaultFlashExit,
		},
		MDNS: MDNS{Enable: true},
		Model: Model{
			Version:       DefaultModelVersion,
			RainThreshold: DefaultRainThreshold,
			MaxConfidence: DefaultMaxConfidence,
		},
	}
}

// Load reads path when it is set, otherwise starts from Default. Environment
// overrides are applied last and the result is validated.
func Load(path string) (File, error) {
	cfg := Default()
	source := "defaults"
	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return File{}, fmt.Errorf("read config file %q: %w", path, err)
		}
		cfg, err = decode(data, path)
		if err != nil {
			return cfg, err
		}
		source = path
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return cfg, fmt.Errorf("invalid config in %q: %s", source, strings.Join(errs, "; "))
	}
	return cfg, nil
}

func Parse(data []byte, source string) (File, error) {
	cfg, err := decode(data, source)
	if err != nil {
		return cfg, err
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return cfg, fmt.Errorf("invalid config in %q: %s", source, strings.Join(errs, "; "))
	}
	return cfg, nil
}

func decode(data []byte, source string) (File, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parse YAML in %q: %w", source, err)
	}
	return cfg, nil
}

// ApplyEnv overrides file values with RAINCAST_* variables. lookup is
// os.LookupEnv outside of tests.
func (cfg *File) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	str("RAINCAST_ADDR", &cfg.Server.Addr)
	str("RAINCAST_GRPC_ADDR", &cfg.Server.GRPCAddr)
	str("RAINCAST_DB", &cfg.Server.DBPath)
	str("RAINCAST_STATIC_DIR", &cfg.Server.StaticDir)
	str("RAINCAST_JWT_SECRET", &cfg.Auth.JWTSecret)
	str("RAINCAST_MDNS_INSTANCE", &cfg.MDNS.Instance)

	if v, ok := lookup("RAINCAST_MDNS_ENABLE"); ok && strings.TrimSpace(v) != "" {
		enable, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("RAINCAST_MDNS_ENABLE: %w", err)
		}
		cfg.MDNS.Enable = enable
	}
	return nil
}

func (cfg File) Validate() []string {
	var errs []string

	if cfg.Version != 1 {
		errs = append(errs, fmt.Sprintf("unsupported config version %d", cfg.Version))
	}
	if strings.TrimSpace(cfg.Server.Addr) == "" {
		errs = append(errs, "server.addr is required")
	}
	if strings.TrimSpace(cfg.Server.DBPath) == "" {
		errs = append(errs, "server.db_path is required")
	}
	if cfg.Server.GRPCAddr != "" && cfg.Server.GRPCAddr == cfg.Server.Addr {
		errs = append(errs, "server.grpc_addr must differ from server.addr")
	}
	for i, pattern := range cfg.Server.StaticAllow {
		if strings.TrimSpace(pattern) == "" || !doublestar.ValidatePattern(pattern) {
			errs = append(errs, fmt.Sprintf("server.static_allow[%d] invalid pattern %q", i, pattern))
		}
	}

	if strings.TrimSpace(cfg.Auth.JWTSecret) == "" {
		errs = append(errs, "auth.jwt_secret is required")
	}
	if cfg.Auth.TokenTTL <= 0 {
		errs = append(errs, "auth.token_ttl must be > 0")
	}

	if cfg.Flash.TTL <= 0 {
		errs = append(errs, "flash.ttl must be > 0")
	}
	if cfg.Flash.Exit < 0 {
		errs = append(errs, "flash.exit must be >= 0")
	} else if cfg.Flash.TTL > 0 && cfg.Flash.Exit >= cfg.Flash.TTL {
		errs = append(errs, "flash.exit must be shorter than flash.ttl")
	}

	if !semver.IsValid(cfg.Model.Version) {
		errs = append(errs, fmt.Sprintf("model.version %q is not a valid semantic version", cfg.Model.Version))
	}
	if cfg.Model.RainThreshold < 0 {
		errs = append(errs, "model.rain_threshold must be >= 0")
	}
	if cfg.Model.MaxConfidence <= 0 || cfg.Model.MaxConfidence > 100 {
		errs = append(errs, "model.max_confidence must be in (0, 100]")
	}

	return errs
}

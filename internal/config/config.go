package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	BackendMemory    = "memory"
	BackendMongo     = "mongo"
	BackendPostgres  = "postgres"
	BackendFirestore = "firestore"
)

type Config struct {
	Port     string `yaml:"port"`
	LogLevel string `yaml:"log_level"`

	// Store selects the backend. Empty means mongo when MongoURI is set,
	// otherwise memory.
	Store string `yaml:"store"`

	MongoURI                   string `yaml:"mongo_uri"`
	MongoDatabase              string `yaml:"mongo_db"`
	MongoCollectionContractors string `yaml:"mongo_collection_contractors"`
	MongoCollectionSnapshots   string `yaml:"mongo_collection_snapshots"`

	PostgresDSN string `yaml:"postgres_dsn"`

	FirestoreProject               string `yaml:"firestore_project"`
	FirestoreCollectionContractors string `yaml:"firestore_collection_contractors"`
	FirestoreCollectionSnapshots   string `yaml:"firestore_collection_snapshots"`

	NATSURL           string `yaml:"nats_url"`
	NATSSubjectPrefix string `yaml:"nats_subject_prefix"`
	WebhookURL        string `yaml:"webhook_url"`

	APIKeys            []string `yaml:"api_keys"`
	RateLimitPerMinute int      `yaml:"rate_limit_per_minute"`
	RateLimitBurstSize int      `yaml:"rate_limit_burst_size"`

	DefaultMatchLimit int `yaml:"default_match_limit"`

	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`
}

func Defaults() Config {
	return Config{
		Port:                           "8080",
		LogLevel:                       "info",
		MongoDatabase:                  "bidroom",
		MongoCollectionContractors:     "contractors",
		MongoCollectionSnapshots:       "snapshots",
		FirestoreCollectionContractors: "contractors",
		FirestoreCollectionSnapshots:   "snapshots",
		NATSSubjectPrefix:              "bidroom.events",
		RateLimitPerMinute:             600,
		RateLimitBurstSize:             50,
		DefaultMatchLimit:              10,
		ReadTimeout:                    10 * time.Second,
		WriteTimeout:                   20 * time.Second,
		IdleTimeout:                    60 * time.Second,
	}
}

// Load starts from defaults, applies the YAML file named by BIDROOM_CONFIG
// if set, then environment overrides.
func Load() (Config, error) {
	cfg := Defaults()
	if path := strings.TrimSpace(os.Getenv("BIDROOM_CONFIG")); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return Config{}, err
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Port = getenv("PORT", c.Port)
	c.LogLevel = getenv("LOG_LEVEL", c.LogLevel)
	c.Store = strings.ToLower(getenv("STORE_BACKEND", c.Store))

	c.MongoURI = getenv("MONGO_URI", c.MongoURI)
	c.MongoDatabase = getenv("MONGO_DB", c.MongoDatabase)
	c.MongoCollectionContractors = getenv("MONGO_COLLECTION_CONTRACTORS", c.MongoCollectionContractors)
	c.MongoCollectionSnapshots = getenv("MONGO_COLLECTION_SNAPSHOTS", c.MongoCollectionSnapshots)

	c.PostgresDSN = getenv("POSTGRES_DSN", c.PostgresDSN)

	c.FirestoreProject = getenv("FIRESTORE_PROJECT", c.FirestoreProject)
	c.FirestoreCollectionContractors = getenv("FIRESTORE_COLLECTION_CONTRACTORS", c.FirestoreCollectionContractors)
	c.FirestoreCollectionSnapshots = getenv("FIRESTORE_COLLECTION_SNAPSHOTS", c.FirestoreCollectionSnapshots)

	c.NATSURL = getenv("NATS_URL", c.NATSURL)
	c.NATSSubjectPrefix = getenv("NATS_SUBJECT_PREFIX", c.NATSSubjectPrefix)
	c.WebhookURL = getenv("EVENTS_WEBHOOK_URL", c.WebhookURL)

	if v := strings.TrimSpace(os.Getenv("API_KEYS")); v != "" {
		c.APIKeys = splitList(v)
	}
	c.RateLimitPerMinute = getenvInt("RATE_LIMIT_PER_MINUTE", c.RateLimitPerMinute)
	c.RateLimitBurstSize = getenvInt("RATE_LIMIT_BURST_SIZE", c.RateLimitBurstSize)
	c.DefaultMatchLimit = getenvInt("DEFAULT_MATCH_LIMIT", c.DefaultMatchLimit)

	c.ReadTimeout = getenvDuration("READ_TIMEOUT", c.ReadTimeout)
	c.WriteTimeout = getenvDuration("WRITE_TIMEOUT", c.WriteTimeout)
	c.IdleTimeout = getenvDuration("IDLE_TIMEOUT", c.IdleTimeout)
}

// Backend resolves the store backend.
func (c Config) Backend() string {
	if c.Store != "" {
		return c.Store
	}
	if c.MongoURI != "" {
		return BackendMongo
	}
	return BackendMemory
}

func (c Config) Validate() error {
	switch c.Backend() {
	case BackendMemory:
	case BackendMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("store %q requires MONGO_URI", BackendMongo)
		}
	case BackendPostgres:
		if c.PostgresDSN == "" {
			return fmt.Errorf("store %q requires POSTGRES_DSN", BackendPostgres)
		}
	case BackendFirestore:
		if c.FirestoreProject == "" {
			return fmt.Errorf("store %q requires FIRESTORE_PROJECT", BackendFirestore)
		}
	default:
		return fmt.Errorf("unknown store backend %q", c.Store)
	}
	if c.DefaultMatchLimit <= 0 {
		return fmt.Errorf("default match limit must be positive, got %d", c.DefaultMatchLimit)
	}
	return nil
}

func getenv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func getenvInt(k string, def int) int {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getenvDuration(k string, def time.Duration) time.Duration {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

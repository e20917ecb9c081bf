package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"dispatch/internal/core/domain/model/zone"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/jobs"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTPPort string

	HubLat                 float64
	HubLon                 float64
	MaxBatchSize           int
	MaxWait                time.Duration
	SequenceKey            string
	BatchFormationSchedule string
	QueueReportSchedule    string

	OperatorJWTSecret string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	RabbitMQURL string
	RedisURL    string

	LogLevel string
	LogFile  string
}

// PolicyFile is the optional YAML document named by DISPATCH_POLICY_FILE.
//
// Example:
//
//	hub:
//	  lat: -31.3833
//	  lon: -57.9667
//	batching:
//	  max_batch_size: 7
//	  max_wait: 45m
//	sequencing:
//	  key: distance
//	schedule:
//	  batch_formation: "* * * * * *"
//	  queue_report: "0 * * * * *"
type PolicyFile struct {
	Hub *struct {
		Lat float64 `yaml:"lat"`
		Lon float64 `yaml:"lon"`
	} `yaml:"hub"`
	Batching struct {
		MaxBatchSize int    `yaml:"max_batch_size"`
		MaxWait      string `yaml:"max_wait"`
	} `yaml:"batching"`
	Sequencing struct {
		Key string `yaml:"key"`
	} `yaml:"sequencing"`
	Schedule struct {
		BatchFormation string `yaml:"batch_formation"`
		QueueReport    string `yaml:"queue_report"`
	} `yaml:"schedule"`
}

// DefaultConfig is the configuration with nothing set.
func DefaultConfig() Config {
	return Config{
		HTTPPort:               "8080",
		HubLat:                 zone.DefaultHubLat,
		HubLon:                 zone.DefaultHubLon,
		MaxBatchSize:           services.DefaultMaxBatchSize,
		MaxWait:                services.DefaultMaxWait,
		BatchFormationSchedule: jobs.DefaultBatchFormationSchedule,
		QueueReportSchedule:    jobs.DefaultQueueReportSchedule,
		DBPort:                 "5432",
		DBSslMode:              "disable",
		LogLevel:               "info",
	}
}

// LoadConfig reads the policy file, when DISPATCH_POLICY_FILE names one, and the
// environment on top of it. getenv is usually os.Getenv.
func LoadConfig(getenv func(string) string) (Config, error) {
	cfg := DefaultConfig()

	if path := getenv("DISPATCH_POLICY_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read policy file: %w", err)
		}
		if err = cfg.applyPolicy(data); err != nil {
			return Config{}, fmt.Errorf("failed to parse policy file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(getenv); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyPolicy(data []byte) error {
	var p PolicyFile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return err
	}

	if p.Hub != nil {
		c.HubLat, c.HubLon = p.Hub.Lat, p.Hub.Lon
	}
	if p.Batching.MaxBatchSize != 0 {
		c.MaxBatchSize = p.Batching.MaxBatchSize
	}
	if p.Batching.MaxWait != "" {
		d, err := time.ParseDuration(p.Batching.MaxWait)
		if err != nil {
			return fmt.Errorf("batching.max_wait: %w", err)
		}
		c.MaxWait = d
	}
	if p.Sequencing.Key != "" {
		c.SequenceKey = p.Sequencing.Key
	}
	if p.Schedule.BatchFormation != "" {
		c.BatchFormationSchedule = p.Schedule.BatchFormation
	}
	if p.Schedule.QueueReport != "" {
		c.QueueReportSchedule = p.Schedule.QueueReport
	}
	return nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	str := func(key string, dst *string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}

	str("HTTP_PORT", &c.HTTPPort)
	str("SEQUENCE_KEY", &c.SequenceKey)
	str("BATCH_FORMATION_SCHEDULE", &c.BatchFormationSchedule)
	str("QUEUE_REPORT_SCHEDULE", &c.QueueReportSchedule)
	str("OPERATOR_JWT_SECRET", &c.OperatorJWTSecret)
	str("DB_HOST", &c.DBHost)
	str("DB_PORT", &c.DBPort)
	str("DB_USER", &c.DBUser)
	str("DB_PASSWORD", &c.DBPassword)
	str("DB_NAME", &c.DBName)
	str("DB_SSLMODE", &c.DBSslMode)
	str("RABBITMQ_URL", &c.RabbitMQURL)
	str("REDIS_URL", &c.RedisURL)
	str("LOG_LEVEL", &c.LogLevel)
	str("LOG_FILE", &c.LogFile)

	var errs []error
	if v := getenv("HUB_LAT"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		errs = append(errs, wrapEnv("HUB_LAT", err))
		c.HubLat = f
	}
	if v := getenv("HUB_LON"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		errs = append(errs, wrapEnv("HUB_LON", err))
		c.HubLon = f
	}
	if v := getenv("MAX_BATCH_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		errs = append(errs, wrapEnv("MAX_BATCH_SIZE", err))
		c.MaxBatchSize = n
	}
	if v := getenv("MAX_WAIT"); v != "" {
		d, err := time.ParseDuration(v)
		errs = append(errs, wrapEnv("MAX_WAIT", err))
		c.MaxWait = d
	}
	return errors.Join(errs...)
}

func wrapEnv(key string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", key, err)
}

// DatabaseEnabled reports whether the PostgreSQL journal is configured.
func (c Config) DatabaseEnabled() bool {
	return c.DBHost != "" && c.DBName != ""
}

// DSN is the PostgreSQL connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

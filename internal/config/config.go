package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const DefaultDatasetURL = "https://streamlit-demo-data.s3-us-west-2.amazonaws.com/agri.csv.gz"

type Config struct {
	Addr            string
	TLSCert         string
	TLSKey          string
	RateLimit       float64
	RateBurst       int
	ShutdownTimeout time.Duration
	DatasetEnabled  bool
	DatasetURL      string
}

func Default() Config {
	return Config{
		Addr:            ":8080",
		RateLimit:       5,
		RateBurst:       10,
		ShutdownTimeout: 5 * time.Second,
		DatasetURL:      DefaultDatasetURL,
	}
}

// TLS reports whether both certificate and key are configured.
func (c Config) TLS() bool {
	return c.TLSCert != "" && c.TLSKey != ""
}

// Load reads .env files (when present) into the environment, then builds the
// config from it.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load env: %w", err)
		}
		log.Println("No .env file, using process environment")
	}
	return FromEnv()
}

func FromEnv() (Config, error) {
	cfg := Default()
	if v := os.Getenv("ADDR"); v != "" {
		cfg.Addr = v
	}
	cfg.TLSCert = os.Getenv("TLS_CERT")
	cfg.TLSKey = os.Getenv("TLS_KEY")

	if v := os.Getenv("RATE_LIMIT"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 {
			return Config{}, fmt.Errorf("RATE_LIMIT: invalid value %q", v)
		}
		cfg.RateLimit = f
	}
	if v := os.Getenv("RATE_BURST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("RATE_BURST: invalid value %q", v)
		}
		cfg.RateBurst = n
	}
	if v := os.Getenv("SHUTDOWN_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("SHUTDOWN_TIMEOUT: %w", err)
		}
		cfg.ShutdownTimeout = d
	}
	if v := os.Getenv("DATASET_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("DATASET_ENABLED: %w", err)
		}
		cfg.DatasetEnabled = b
	}
	if v := os.Getenv("DATASET_URL"); v != "" {
		cfg.DatasetURL = v
	}
	return cfg, nil
}

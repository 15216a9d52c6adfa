package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/metdatasystem/cwa/pkg/cwa"
)

// Distribution targets for operational products.
const (
	DistributionNone   = "none"
	DistributionRabbit = "rabbit"
	DistributionKafka  = "kafka"
	DistributionSQS    = "sqs"
)

// Config holds the office and service settings, populated from environment variables.
type Config struct {
	CWSU        string
	KCWSU       string
	AWIPSNode   string
	CWATTAAII   string
	CWSTTAAII   string
	Zone        *time.Location
	Operational bool
	RetainDays  int

	DatabaseURL   string
	Distribution  string
	RabbitURL     string
	KafkaBrokers  []string
	KafkaTopic    string
	SQSQueueURL   string
	ReportBucket  string
	StatePolygons string

	HTTPAddr       string
	StatusInterval time.Duration
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	cwsu := strings.ToUpper(strings.TrimSpace(os.Getenv("CWSU_ID")))
	if len(cwsu) != 3 {
		return nil, errors.New("CWSU_ID is required and must be three letters")
	}

	zone, err := cwa.LoadZone(envOrDefault("LOCAL_TIME_ZONE", "UTC"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOCAL_TIME_ZONE: %w", err)
	}

	operational, err := parseBool("OPERATIONAL", false)
	if err != nil {
		return nil, err
	}

	retainDays, err := strconv.Atoi(envOrDefault("RETAIN_DAYS", "30"))
	if err != nil || retainDays <= 0 {
		return nil, errors.New("invalid RETAIN_DAYS")
	}

	statusInterval, err := time.ParseDuration(envOrDefault("STATUS_INTERVAL", "30s"))
	if err != nil || statusInterval <= 0 {
		return nil, errors.New("invalid STATUS_INTERVAL")
	}

	cfg := &Config{
		CWSU:        cwsu,
		KCWSU:       envOrDefault("CWSU_K_ID", "K"+cwsu),
		AWIPSNode:   envOrDefault("AWIPS_NODE", cwsu),
		CWATTAAII:   os.Getenv("CWA_TTAAII"),
		CWSTTAAII:   os.Getenv("CWS_TTAAII"),
		Zone:        zone,
		Operational: operational,
		RetainDays:  retainDays,

		DatabaseURL:   os.Getenv("DATABASE_URL"),
		Distribution:  strings.ToLower(envOrDefault("DISTRIBUTION", DistributionNone)),
		RabbitURL:     os.Getenv("RABBIT_URL"),
		KafkaBrokers:  parseBrokers(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:    envOrDefault("KAFKA_TOPIC", "us-cwa-products"),
		SQSQueueURL:   os.Getenv("SQS_QUEUE_URL"),
		ReportBucket:  os.Getenv("REPORT_BUCKET"),
		StatePolygons: os.Getenv("STATE_POLYGONS"),

		HTTPAddr:       envOrDefault("HTTP_ADDR", ":8000"),
		StatusInterval: statusInterval,
	}

	switch cfg.Distribution {
	case DistributionNone:
	case DistributionRabbit:
		if cfg.RabbitURL == "" {
			return nil, errors.New("DISTRIBUTION is rabbit but RABBIT_URL is not set")
		}
	case DistributionKafka:
		if len(cfg.KafkaBrokers) == 0 {
			return nil, errors.New("DISTRIBUTION is kafka but KAFKA_BROKERS is not set")
		}
	case DistributionSQS:
		if cfg.SQSQueueURL == "" {
			return nil, errors.New("DISTRIBUTION is sqs but SQS_QUEUE_URL is not set")
		}
	default:
		return nil, fmt.Errorf("unknown DISTRIBUTION %q", cfg.Distribution)
	}

	return cfg, nil
}

// Office returns the issuing office described by the configuration.
func (c *Config) Office() cwa.Office {
	return cwa.Office{
		CWSU:        c.CWSU,
		KCWSU:       c.KCWSU,
		AWIPSNode:   c.AWIPSNode,
		CWATTAAII:   c.CWATTAAII,
		CWSTTAAII:   c.CWSTTAAII,
		Zone:        c.Zone,
		Operational: c.Operational,
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s", key)
	}
	return b, nil
}

func parseBrokers(s string) []string {
	var brokers []string
	for _, b := range strings.Split(s, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"podowl/internal/adapters/out/postgres"
	"podowl/internal/adapters/out/sms"
	"podowl/internal/core/domain/model/job"
)

const defaultHTTPPort = "8080"

// Config is everything the service reads from its environment. It is built
// once in main and passed down; nothing below cmd reads the environment.
type Config struct {
	HTTPPort string
	DB       postgres.Settings

	// Phones replace the placeholder numbers of the job defaults.
	Phones job.PhoneOverrides

	PodBaseURL string
	SMS        sms.GatewayConfig

	// NotifyOnComplete lists the roles told about a completed delivery,
	// comma separated. Empty keeps the sender only.
	NotifyOnComplete     string
	NotifyMaxConcurrency int

	ConnectivityCheckSchedule string
	LogLevel                  slog.Level
}

// ConfigFromEnv reads Config through getenv, usually os.Getenv. All invalid
// values are reported together.
func ConfigFromEnv(getenv func(string) string) (Config, error) {
	get := func(key string) string {
		return strings.TrimSpace(getenv(key))
	}

	config := Config{
		HTTPPort: get("HTTP_PORT"),
		DB: postgres.Settings{
			Host:     get("DB_HOST"),
			Port:     get("DB_PORT"),
			User:     get("DB_USER"),
			Password: getenv("DB_PASSWORD"),
			Name:     get("DB_NAME"),
			SSLMode:  get("DB_SSLMODE"),
			Schema:   get("DB_SCHEMA"),
		},
		Phones: job.PhoneOverrides{
			Sender:   get("SENDER_PHONE"),
			Receiver: get("RECEIVER_PHONE"),
			Courier:  get("COURIER_PHONE"),
		},
		PodBaseURL: get("POD_BASE_URL"),
		SMS: sms.GatewayConfig{
			URL:    get("SMS_GATEWAY_URL"),
			APIKey: get("SMS_API_KEY"),
			From:   get("SMS_FROM"),
		},
		NotifyOnComplete:          get("NOTIFY_ON_COMPLETE"),
		ConnectivityCheckSchedule: get("CONNECTIVITY_CHECK_SCHEDULE"),
	}
	if config.HTTPPort == "" {
		config.HTTPPort = defaultHTTPPort
	}

	var errList []error
	if v := get("SMS_RATE_PER_SECOND"); v != "" {
		rate, err := strconv.ParseFloat(v, 64)
		if err != nil || rate < 0 {
			errList = append(errList, fmt.Errorf("SMS_RATE_PER_SECOND: %q is not a non-negative number", v))
		}
		config.SMS.RatePerSecond = rate
	}
	if v := get("SMS_TIMEOUT"); v != "" {
		timeout, err := time.ParseDuration(v)
		if err != nil || timeout < 0 {
			errList = append(errList, fmt.Errorf("SMS_TIMEOUT: %q is not a duration", v))
		}
		config.SMS.Timeout = timeout
	}
	if v := get("NOTIFY_MAX_CONCURRENCY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			errList = append(errList, fmt.Errorf("NOTIFY_MAX_CONCURRENCY: %q is not a non-negative integer", v))
		}
		config.NotifyMaxConcurrency = n
	}
	if v := get("LOG_LEVEL"); v != "" {
		if err := config.LogLevel.UnmarshalText([]byte(v)); err != nil {
			errList = append(errList, fmt.Errorf("LOG_LEVEL: %w", err))
		}
	}

	if err := errors.Join(errList...); err != nil {
		return Config{}, err
	}
	return config, nil
}

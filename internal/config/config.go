package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds application configuration
type Config struct {
	Port            string
	APIURL          string
	LogLevel        string
	DirectoryLimit  int
	RefreshCron     string
	StreamReconnect bool
	DBConn          string
	SMTPHost        string
	SMTPPort        string
	SMTPUsername    string
	SMTPPassword    string
	SenderEmail     string
	AlertRecipient  string
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	limit, err := strconv.Atoi(getEnv("DIRECTORY_LIMIT", "100"))
	if err != nil || limit <= 0 {
		return nil, fmt.Errorf("DIRECTORY_LIMIT must be a positive integer")
	}

	cfg := &Config{
		Port:            getEnv("PORT", "8090"),
		APIURL:          getEnv("API_URL", "http://localhost:8000"),
		LogLevel:        getEnv("LOG_LEVEL", "INFO"),
		DirectoryLimit:  limit,
		RefreshCron:     getEnv("REFRESH_CRON", "@every 5m"),
		StreamReconnect: getEnv("STREAM_RECONNECT", "false") == "true",
		DBConn:          getEnv("DB_CONN", ""),
		SMTPHost:        getEnv("SMTP_HOST", ""),
		SMTPPort:        getEnv("SMTP_PORT", "587"),
		SMTPUsername:    getEnv("SMTP_USERNAME", ""),
		SMTPPassword:    getEnv("SMTP_PASSWORD", ""),
		SenderEmail:     getEnv("SENDER_EMAIL", "riskwatch@localhost"),
		AlertRecipient:  getEnv("ALERT_RECIPIENT", ""),
	}

	if cfg.APIURL == "" {
		return nil, fmt.Errorf("API_URL is required")
	}

	return cfg, nil
}

// StreamURL derives the websocket endpoint from the backend base URL
// (http -> ws scheme swap).
func (c *Config) StreamURL() string {
	url := c.APIURL
	if strings.HasPrefix(url, "https") {
		url = "wss" + strings.TrimPrefix(url, "https")
	} else if strings.HasPrefix(url, "http") {
		url = "ws" + strings.TrimPrefix(url, "http")
	}
	return url + "/ws/simulate"
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

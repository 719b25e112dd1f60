// Package config handles configuration for the daylog server,
// including defaults, JSON overlay, environment overlay and command-line flags.
package config

import "time"

// Config holds runtime settings for the daylog server.
//
// Fields:
//   - EndpointAddr: bind address for the HTTP API.
//   - DatabaseDSN: SQLite DSN for the local store.
//   - SecretKey: HMAC secret for signing session JWTs (HS256). Do not use test defaults in prod.
//   - SessionValidityDuration: lifetime of the session cookie.
//   - LogFile: optional rotated log file path ("" = stdout only).
//   - Users: username -> bcrypt password hash.
//   - RemoteRoot: top folder of the remote namespace.
//   - S3AccessKey / S3SecretKey: credentials for the S3-compatible backend.
//   - S3Bucket / S3Region / S3BaseEndpoint: object storage settings.
type Config struct {
	EndpointAddr            string
	DatabaseDSN             string
	SecretKey               string
	SessionValidityDuration time.Duration
	LogFile                 string
	Users                   map[string]string
	RemoteRoot              string
	S3AccessKey             string
	S3SecretKey             string
	S3Bucket                string
	S3Region                string
	S3BaseEndpoint          string
}

// LoadDefaults populates Config with sensible development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":8080"
	c.DatabaseDSN = "daylog.db"
	c.SecretKey = "secretKey"
	c.SessionValidityDuration = 30 * 24 * time.Hour
	c.Users = map[string]string{}
	c.RemoteRoot = "daylog"
	c.S3AccessKey = "admin"
	c.S3SecretKey = "secretpassword"
	c.S3Bucket = "journal"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment, and finally command-line
// flags. Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}

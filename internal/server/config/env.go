package config

import (
	"encoding/json"
	"os"
)

// parseEnv overlays Config with values from the environment. Secrets usually
// arrive this way (a .env file is loaded by the entrypoint).
//
// Recognized variables:
//
//	DAYLOG_ADDR, DAYLOG_DB, DAYLOG_SECRET_KEY, DAYLOG_LOG_FILE,
//	DAYLOG_REMOTE_ROOT, DAYLOG_USERS (JSON object: username -> bcrypt hash),
//	S3_ACCESS_KEY, S3_SECRET_KEY, S3_BUCKET, S3_REGION, S3_BASE_ENDPOINT
func parseEnv(cfg *Config) {
	if v := os.Getenv("DAYLOG_ADDR"); v != "" {
		cfg.EndpointAddr = v
	}
	if v := os.Getenv("DAYLOG_DB"); v != "" {
		cfg.DatabaseDSN = v
	}
	if v := os.Getenv("DAYLOG_SECRET_KEY"); v != "" {
		cfg.SecretKey = v
	}
	if v := os.Getenv("DAYLOG_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("DAYLOG_REMOTE_ROOT"); v != "" {
		cfg.RemoteRoot = v
	}
	if v := os.Getenv("DAYLOG_USERS"); v != "" {
		users := map[string]string{}
		if err := json.Unmarshal([]byte(v), &users); err == nil {
			cfg.Users = users
		}
	}
	if v := os.Getenv("S3_ACCESS_KEY"); v != "" {
		cfg.S3AccessKey = v
	}
	if v := os.Getenv("S3_SECRET_KEY"); v != "" {
		cfg.S3SecretKey = v
	}
	if v := os.Getenv("S3_BUCKET"); v != "" {
		cfg.S3Bucket = v
	}
	if v := os.Getenv("S3_REGION"); v != "" {
		cfg.S3Region = v
	}
	if v := os.Getenv("S3_BASE_ENDPOINT"); v != "" {
		cfg.S3BaseEndpoint = v
	}
}

package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/daylog/internal/flagx"
	"github.com/dmitrijs2005/daylog/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify durations either as
// strings like "720h" or as integer nanoseconds. After parsing, values
// are copied into the runtime Config.
type JsonConfig struct {
	EndpointAddr            string            `json:"endpoint_addr"`
	DatabaseDSN             string            `json:"database_dsn"`
	SecretKey               string            `json:"secret_key"`
	SessionValidityDuration timex.Duration    `json:"session_validity_duration"`
	LogFile                 string            `json:"log_file"`
	Users                   map[string]string `json:"users"`
	RemoteRoot              string            `json:"remote_root"`
	S3AccessKey             string            `json:"s3_access_key"`
	S3SecretKey             string            `json:"s3_secret_key"`
	S3Bucket                string            `json:"s3_bucket"`
	S3Region                string            `json:"s3_region"`
	S3BaseEndpoint          string            `json:"s3_base_endpoint"`
}

// parseJson overlays Config with values loaded from a JSON file whose path
// is given via the -c/-config flags. Absent file path means no JSON overlay.
// Panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.EndpointAddr != "" {
		cfg.EndpointAddr = jc.EndpointAddr
	}
	if jc.DatabaseDSN != "" {
		cfg.DatabaseDSN = jc.DatabaseDSN
	}
	if jc.SecretKey != "" {
		cfg.SecretKey = jc.SecretKey
	}
	if jc.SessionValidityDuration.Duration != 0 {
		cfg.SessionValidityDuration = time.Duration(jc.SessionValidityDuration.Duration)
	}
	if jc.LogFile != "" {
		cfg.LogFile = jc.LogFile
	}
	if len(jc.Users) > 0 {
		cfg.Users = jc.Users
	}
	if jc.RemoteRoot != "" {
		cfg.RemoteRoot = jc.RemoteRoot
	}
	if jc.S3AccessKey != "" {
		cfg.S3AccessKey = jc.S3AccessKey
	}
	if jc.S3SecretKey != "" {
		cfg.S3SecretKey = jc.S3SecretKey
	}
	if jc.S3Bucket != "" {
		cfg.S3Bucket = jc.S3Bucket
	}
	if jc.S3Region != "" {
		cfg.S3Region = jc.S3Region
	}
	if jc.S3BaseEndpoint != "" {
		cfg.S3BaseEndpoint = jc.S3BaseEndpoint
	}
}

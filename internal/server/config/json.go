package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/pagekeeper/internal/flagx"
	"github.com/dmitrijs2005/pagekeeper/internal/timex"
)

// JsonConfig is the on-disk shape of Config. Durations accept "15m" or
// integer nanoseconds.
type JsonConfig struct {
	EndpointAddrGRPC             string         `json:"endpoint_addr_grpc"`
	DatabaseDSN                  string         `json:"database_dsn"`
	SecretKey                    string         `json:"secret_key"`
	AccessTokenValidityDuration  timex.Duration `json:"access_token_validity_duration"`
	RefreshTokenValidityDuration timex.Duration `json:"refresh_token_validity_duration"`
	S3RootUser                   string         `json:"s3_root_user"`
	S3RootPassword               string         `json:"s3_root_password"`
	S3Bucket                     string         `json:"s3_bucket"`
	S3Region                     string         `json:"s3_region"`
	S3BaseEndpoint               string         `json:"s3_base_endpoint"`
}

// parseJson overlays config with the non-empty fields of the file named by
// -c or -config. It panics when the file cannot be read or decoded.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	for dst, v := range map[*string]string{
		&config.EndpointAddrGRPC: c.EndpointAddrGRPC,
		&config.DatabaseDSN:      c.DatabaseDSN,
		&config.SecretKey:        c.SecretKey,
		&config.S3RootUser:       c.S3RootUser,
		&config.S3RootPassword:   c.S3RootPassword,
		&config.S3Bucket:         c.S3Bucket,
		&config.S3Region:         c.S3Region,
		&config.S3BaseEndpoint:   c.S3BaseEndpoint,
	} {
		if v != "" {
			*dst = v
		}
	}
	if c.AccessTokenValidityDuration.Duration > 0 {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.RefreshTokenValidityDuration.Duration > 0 {
		config.RefreshTokenValidityDuration = c.RefreshTokenValidityDuration.Duration
	}
}

package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/pagekeeper/internal/flagx"
	"github.com/dmitrijs2005/pagekeeper/internal/timex"
)

// JsonConfig is the on-disk shape of Config.
type JsonConfig struct {
	ServerEndpointAddr  string         `json:"server_endpoint_addr"`
	DataDir             string         `json:"data_dir"`
	LocalDatabaseDSN    string         `json:"local_database_dsn"`
	RetryDelay          timex.Duration `json:"retry_delay"`
	UploadTimeout       timex.Duration `json:"upload_timeout"`
	ViewerAddr          string         `json:"viewer_addr"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
}

// parseJson overlays cfg with the fields present in the file named by -c or
// -config. It panics on read or decode errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.ServerEndpointAddr, jc.ServerEndpointAddr)
	setString(&cfg.DataDir, jc.DataDir)
	setString(&cfg.LocalDatabaseDSN, jc.LocalDatabaseDSN)
	setString(&cfg.ViewerAddr, jc.ViewerAddr)
	if jc.RetryDelay.Duration > 0 {
		cfg.RetryDelay = jc.RetryDelay.Duration
	}
	if jc.UploadTimeout.Duration > 0 {
		cfg.UploadTimeout = jc.UploadTimeout.Duration
	}
	if jc.OnlineCheckInterval.Duration > 0 {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

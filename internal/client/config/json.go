package config

import (
	"encoding/json"
	"os"

	"github.com/nishant0207/online-filesharing/internal/flagx"
	"github.com/nishant0207/online-filesharing/internal/timex"
)

// JsonConfig is the DTO for JSON unmarshalling. Durations accept either
// strings like "3h" or integer nanoseconds (see timex.Duration).
type JsonConfig struct {
	ServerEndpointAddr      string         `json:"server_endpoint_addr"`
	InactivityTimeout       timex.Duration `json:"inactivity_timeout"`
	RevocationCheckInterval timex.Duration `json:"revocation_check_interval"`
	CredentialStorePath     string         `json:"credential_store_path"`
}

// parseJson overlays cfg with values from the JSON file named by -c/-config.
// No flag, no overlay. Read or unmarshal errors panic; the config stage has
// nothing sensible to fall back to.
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

	if jc.ServerEndpointAddr != "" {
		cfg.ServerEndpointAddr = jc.ServerEndpointAddr
	}
	if jc.InactivityTimeout.Duration > 0 {
		cfg.InactivityTimeout = jc.InactivityTimeout.Duration
	}
	if jc.RevocationCheckInterval.Duration > 0 {
		cfg.RevocationCheckInterval = jc.RevocationCheckInterval.Duration
	}
	if jc.CredentialStorePath != "" {
		cfg.CredentialStorePath = jc.CredentialStorePath
	}
}

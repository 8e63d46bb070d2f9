package config

import "time"

// Config holds runtime settings for the file-sharing client.
//
// Fields:
//   - ServerEndpointAddr: base URL of the backend REST service.
//   - InactivityTimeout: idle period after which the session is ended.
//   - RevocationCheckInterval: how often the credential store is checked
//     for an externally cleared credential.
//   - CredentialStorePath: sqlite file holding the session credential.
type Config struct {
	ServerEndpointAddr      string
	InactivityTimeout       time.Duration
	RevocationCheckInterval time.Duration
	CredentialStorePath     string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "http://127.0.0.1:8000"
	c.InactivityTimeout = 3 * time.Hour
	c.RevocationCheckInterval = 2 * time.Second
	c.CredentialStorePath = "session.db"
}

// LoadConfig builds a Config from defaults, then a JSON file (if given),
// then command-line flags. Later sources win.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

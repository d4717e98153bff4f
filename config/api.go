package config

// APIConfig controls the HTTP server started by the serve command.
type APIConfig struct {
	Addr string `json:"addr"`
	// Token, when set, is required as a Bearer token on /api routes.
	Token string `json:"token"`
}

// SetDefaults applies sane defaults.
func (c *APIConfig) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
}

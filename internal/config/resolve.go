package config

// Environment variable names recognized by the resolution functions.
// Each overrides the corresponding persisted setting when non-empty.
const (
	EnvHubURL      = "NYX_HUB_URL"
	EnvGroupKey    = "NYX_GROUP_KEY"
	EnvAPIUsername = "NYX_API_USERNAME"
	EnvAPIPassword = "NYX_API_PASSWORD"
)

// DefaultAPIUsername is used when neither environment nor settings carry
// Basic auth credentials. The default password is empty.
const DefaultAPIUsername = "api_sync"

// Env is a snapshot of the environment variables the resolver consults.
// The resolution functions take it as a plain struct and never reach for
// os.Getenv themselves.
type Env struct {
	HubURL      string
	GroupKey    string
	APIUsername string
	APIPassword string
}

// Credentials is a resolved Basic auth pair for the hub.
type Credentials struct {
	Username string
	Password string
}

// ResolveHubURL returns the hub base URL, environment taking precedence
// over the persisted setting. Empty when neither is set.
func ResolveHubURL(env Env, s *Settings) string {
	if env.HubURL != "" {
		return env.HubURL
	}
	return s.HubURL
}

// ResolveGroupKey returns the authorization key with the same precedence.
func ResolveGroupKey(env Env, s *Settings) string {
	if env.GroupKey != "" {
		return env.GroupKey
	}
	return s.GroupKey
}

// ResolveCredentials returns the Basic auth credentials. Unlike the URL and
// group key these are never persisted; only the environment carries them.
func ResolveCredentials(env Env) Credentials {
	c := Credentials{Username: env.APIUsername, Password: env.APIPassword}
	if c.Username == "" {
		c.Username = DefaultAPIUsername
	}
	return c
}

// EnvFromOS snapshots the recognized variables from the process environment.
func EnvFromOS() Env {
	return Env{
		HubURL:      getEnv(EnvHubURL, ""),
		GroupKey:    getEnv(EnvGroupKey, ""),
		APIUsername: getEnv(EnvAPIUsername, ""),
		APIPassword: getEnv(EnvAPIPassword, ""),
	}
}

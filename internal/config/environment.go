package config

import (
	"errors"
	"fmt"
)

// Target environments
const (
	EnvLocal   = "local"
	EnvDev     = "dev"
	EnvStaging = "staging"
	EnvProd    = "prod"
)

// ErrUnknownEnvironment is returned for an ENVIRONMENT value without a URL mapping
var ErrUnknownEnvironment = errors.New("unknown environment")

// Environments lists the accepted --env values
var Environments = []string{EnvLocal, EnvDev, EnvStaging, EnvProd}

type environmentURL struct {
	variable string
	fallback string
}

var environmentURLs = map[string]environmentURL{
	EnvLocal:   {variable: "LOCAL_URL", fallback: "http://localhost:3000"},
	EnvDev:     {variable: "DEV_URL", fallback: "https://dev-automationexercise.com"},
	EnvStaging: {variable: "STAGING_URL", fallback: DefaultBaseURL},
	EnvProd:    {variable: "PROD_URL", fallback: DefaultBaseURL},
}

// ResolveBaseURL returns the base URL for env, preferring its per-environment
// variable (LOCAL_URL, DEV_URL, STAGING_URL, PROD_URL) over the built-in default.
func ResolveBaseURL(env string, getenv func(string) string) (string, error) {
	target, ok := environmentURLs[env]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownEnvironment, env)
	}
	if v := getenv(target.variable); v != "" {
		return v, nil
	}
	return target.fallback, nil
}

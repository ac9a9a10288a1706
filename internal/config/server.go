package config

import "os"

// ServerConfig holds configuration for the local storefront server
type ServerConfig struct {
	Port string
}

// LoadServerConfig loads storefront server configuration from environment variables
func LoadServerConfig() ServerConfig {
	port := os.Getenv("STOREFRONT_PORT")
	if port == "" {
		port = "3000" // Matches the LOCAL_URL default
	}

	return ServerConfig{
		Port: port,
	}
}

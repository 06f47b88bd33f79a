package config

import "os"

type OAuthClient struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
}

type Config struct {
	Port          string
	PostgresURI   string
	RedisURI      string
	FrontendURL   string
	SecretKey     string
	EncryptionKey string
	DemoMode      bool

	Twitter  OAuthClient
	LinkedIn OAuthClient
}

func LoadConfig() *Config {
	return &Config{
		Port:          getEnv("PORT", "3000"),
		PostgresURI:   getEnv("POSTGRES_URI", ""),
		RedisURI:      getEnv("REDIS_URI", "localhost:6379"),
		FrontendURL:   getEnv("FRONTEND_URL", "http://localhost:5173"),
		SecretKey:     getEnv("SECRET_KEY", ""),
		EncryptionKey: getEnv("ENCRYPTION_KEY", ""),
		DemoMode:      getEnv("DEMO_MODE", "false") == "true",
		Twitter: OAuthClient{
			ClientID:     getEnv("TWITTER_CLIENT_ID", ""),
			ClientSecret: getEnv("TWITTER_CLIENT_SECRET", ""),
			RedirectURI:  getEnv("TWITTER_REDIRECT_URI", ""),
		},
		LinkedIn: OAuthClient{
			ClientID:     getEnv("LINKEDIN_CLIENT_ID", ""),
			ClientSecret: getEnv("LINKEDIN_CLIENT_SECRET", ""),
			RedirectURI:  getEnv("LINKEDIN_REDIRECT_URI", ""),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

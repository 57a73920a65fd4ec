package config

import "os"

type FarmbizServiceConfig struct {
	Port        string
	PostgresCfg PostgresConfig
	RedisCfg    RedisConfig
	MinioCfg    MinioConfig
	RabbitMQCfg RabbitMQConfig
	AuthCfg     AuthConfig
	WeatherCfg  WeatherConfig
}

type PostgresConfig struct {
	DBname   string
	Username string
	Password string
	Host     string
	Port     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type MinioConfig struct {
	MinioUrl         string
	MinioAccessKey   string
	MinioSecretKey   string
	MinioLocation    string
	MinioSecure      string
	MinioResourceUrl string
}

type RabbitMQConfig struct {
	Host     string
	Username string
	Password string
	Port     string
}

type AuthConfig struct {
	JWTSecret         string
	AccessTTLMinutes  int
	RefreshTTLMinutes int
}

type WeatherConfig struct {
	APIKey string
}

func New() *FarmbizServiceConfig {
	return &FarmbizServiceConfig{
		Port: getEnvOrDefault("FARMBIZ_SERVICE_PORT", "8090"),
		PostgresCfg: PostgresConfig{
			DBname:   getEnvOrDefault("POSTGRES_DB", "farmbiz"),
			Username: getEnvOrDefault("POSTGRES_USER", "user"),
			Password: getEnvOrDefault("POSTGRES_PASSWORD", "password"),
			Host:     getEnvOrDefault("POSTGRES_HOST", "localhost"),
			Port:     getEnvOrDefault("POSTGRES_PORT", "5432"),
		},
		RedisCfg: RedisConfig{
			Host:     getEnvOrDefault("REDIS_HOST", "localhost"),
			Port:     getEnvOrDefault("REDIS_PORT", "6379"),
			Password: getEnvOrDefault("REDIS_PASSWORD", ""),
			DB:       0,
		},
		MinioCfg: MinioConfig{
			MinioUrl:         getEnvOrDefault("MINIO_ENDPOINT", "localhost:9000"),
			MinioAccessKey:   getEnvOrDefault("MINIO_ACCESS_KEY", "minio"),
			MinioSecretKey:   getEnvOrDefault("MINIO_SECRET_KEY", "minio123"),
			MinioLocation:    getEnvOrDefault("MINIO_LOCATION", "us-east-1"),
			MinioSecure:      getEnvOrDefault("MINIO_SECURE", "false"),
			MinioResourceUrl: getEnvOrDefault("MINIO_RESOURCE_URL", "http://localhost:9000/"),
		},
		RabbitMQCfg: RabbitMQConfig{
			Host:     getEnvOrDefault("RABBITMQ_HOST", "rabbitmq"),
			Username: getEnvOrDefault("RABBITMQ_USER", "admin"),
			Password: getEnvOrDefault("RABBITMQ_PWD", "admin"),
			Port:     getEnvOrDefault("RABBITMQ_PORT", "5672"),
		},
		AuthCfg: AuthConfig{
			JWTSecret:         getEnvOrDefault("JWT_SECRET", "farmbiz-dev-secret"),
			AccessTTLMinutes:  60,
			RefreshTTLMinutes: 7 * 24 * 60,
		},
		WeatherCfg: WeatherConfig{
			APIKey: getEnvOrDefault("OPENWEATHERMAP_API_KEY", ""),
		},
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

package ifsc_integration_config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const DefaultBaseURL = "https://ifsc.razorpay.com"

// IFSCConfig is used to store the upstream lookup service settings
type IFSCConfig struct {
	BaseURL        string        `validate:"required,url"` // Base URL of the IFSC lookup API, the code is appended as a path segment
	RequestTimeout time.Duration `validate:"gte=0"`        // Zero means the transport default is used
}

type ForwardProxyConfig struct {
	ProxyAddress string `validate:"omitempty,url"`
}

type LoggingConfig struct {
	Level  string `validate:"omitempty,oneof=debug info warn warning error"`
	Format string `validate:"omitempty,oneof=text json"`
}

type HTTPConfig struct {
	AppHost         string
	AppPort         int           `validate:"gte=1,lte=65535"`
	ShutdownTimeout time.Duration `validate:"gte=0"`
}

type TracingConfig struct {
	Enabled     bool
	ServiceName string `validate:"required_if=Enabled true"`
}

type InternalConfig struct {
	IFSCConfig
	ForwardProxyConfig
	LoggingConfig
	HTTPConfig
	TracingConfig
	Mode string // To control wether the application is running in production or development or debug mode
}

var config *InternalConfig

func New(envPath string) *InternalConfig {

	if err := godotenv.Load(envPath); err != nil {
		log.Println("Failed to locate .env file, program will proceed with provided env if any is provided")
	}

	config = &InternalConfig{
		IFSCConfig: IFSCConfig{
			BaseURL:        getEnv("IFSC_BASE_URL", DefaultBaseURL),
			RequestTimeout: time.Duration(getEnvAsInt("IFSC_REQUEST_TIMEOUT", 0)) * time.Second,
		},
		ForwardProxyConfig: ForwardProxyConfig{
			ProxyAddress: getEnv("PROXY_ADDRESS", ""),
		},
		LoggingConfig: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
		HTTPConfig: HTTPConfig{
			AppHost:         getEnv("APP_HOST", "0.0.0.0"),
			AppPort:         getEnvAsInt("APP_PORT", 8080),
			ShutdownTimeout: time.Duration(getEnvAsInt("APP_SHUTDOWN_TIMEOUT", 10)) * time.Second,
		},
		TracingConfig: TracingConfig{
			Enabled:     getEnvAsBool("TRACING_ENABLED", false),
			ServiceName: getEnv("TRACING_SERVICE_NAME", "ifsc-integration"),
		},
		Mode: getEnv("MODE", "prod"),
	}

	return config
}

func GetConfig() *InternalConfig {
	return config
}

// Simple helper function to read an environment or return a default value.
func getEnv(key string, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}

	return defaultVal
}

// Simple helper function to read an environment variable into integer or return a default value.
func getEnvAsInt(name string, defaultVal int) int {
	valueStr := getEnv(name, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}

	return defaultVal
}

// Helper to read an environment variable into a bool or return default value.
func getEnvAsBool(name string, defaultVal bool) bool {
	valStr := getEnv(name, "")
	if val, err := strconv.ParseBool(valStr); err == nil {
		return val
	}

	return defaultVal
}

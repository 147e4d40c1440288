// config/config.go
package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Configuration stores all the configurations
type Configuration struct {
	Server   ServerConfiguration
	Services ServicesConfiguration
	Redis    RedisConfiguration
	Minio    MinioConfiguration
	LDAP     LDAPConfiguration
}

// ServerConfiguration stores the port and other web server settings
type ServerConfiguration struct {
	Port string
}

// ServicesConfiguration stores the base URLs of the downstream services
type ServicesConfiguration struct {
	Auth         string
	Project      string
	Metadata     string
	Dataset      string
	Notification string
	Approval     string
	Download     string
	Provenance   string
}

// RedisConfiguration stores data for Redis connection
type RedisConfiguration struct {
	Addr            string
	DefaultCacheTTL string
}

// MinioConfiguration stores object store coordinates
type MinioConfiguration struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseHTTPS  bool
}

// LDAPConfiguration stores directory service coordinates
type LDAPConfiguration struct {
	URL          string
	BindDN       string
	BindPassword string
	OU           string
	DC1          string
	DC2          string
	ObjectClass  string
	Prefix       string
}

var config *Configuration

func InitConfig() error {
	viper.AddConfigPath("config") // path to look for the config file in
	viper.SetConfigName("config") // name of the config file (without extension)
	viper.SetConfigType("yaml")

	viper.AutomaticEnv() // read in environment variables that match

	// Set default configurations
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("log.dir", "logging")

	viper.SetDefault("services.auth", "http://auth-service:5061/v1")
	viper.SetDefault("services.project", "http://project-service:5064/v1")
	viper.SetDefault("services.metadata", "http://metadata-service:5066/v1")
	viper.SetDefault("services.dataset", "http://dataset-service:5081/v1")
	viper.SetDefault("services.notification", "http://notification-service:5065/v1")
	viper.SetDefault("services.approval", "http://approval-service:8000/v1")
	viper.SetDefault("services.download", "http://download-service:5077/v2")
	viper.SetDefault("services.provenance", "http://provenance-service:5078/v1")

	viper.SetDefault("auth.realm", "vre")
	viper.SetDefault("auth.verifySignatures", false)
	viper.SetDefault("auth.jwksUrl", "")

	viper.SetDefault("zones.greenroomLabel", "greenroom")
	viper.SetDefault("zones.coreLabel", "core")
	viper.SetDefault("zones.greenroomPrefix", "gr-")
	viper.SetDefault("zones.corePrefix", "core-")

	viper.SetDefault("project.codeRegex", "^[a-z][a-z0-9]{0,31}$")
	viper.SetDefault("project.nameRegex", "^.{1,100}$")
	viper.SetDefault("project.iconMaxBytes", 500*1024)

	viper.SetDefault("resourceRequest.options", []string{"SuperSet", "Guacamole"})

	viper.SetDefault("email.sender", "notification@vre-platform.local")
	viper.SetDefault("email.support", "support@vre-platform.local")
	viper.SetDefault("email.portalURL", "https://portal.vre-platform.local")

	viper.SetDefault("ldap.url", "ldap://directory:389")
	viper.SetDefault("ldap.bindDN", "")
	viper.SetDefault("ldap.bindPassword", "")
	viper.SetDefault("ldap.ou", "VRE")
	viper.SetDefault("ldap.dc1", "vre")
	viper.SetDefault("ldap.dc2", "local")
	viper.SetDefault("ldap.objectClass", "group")
	viper.SetDefault("ldap.prefix", "vre")

	viper.SetDefault("minio.endpoint", "minio:9000")
	viper.SetDefault("minio.accessKey", "")
	viper.SetDefault("minio.secretKey", "")
	viper.SetDefault("minio.useHTTPS", false)

	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.defaultCacheTTL", "10m")
	viper.SetDefault("redis.projectCacheTTL", "30s")

	viper.SetDefault("tracing.enabled", false)
	viper.SetDefault("tracing.serviceName", "portal-bff")
	viper.SetDefault("tracing.agentHostPort", "jaeger-agent:6831")

	viper.SetDefault("client.timeout", "30s")

	viper.SetDefault("rateLimit.requests", 100)
	viper.SetDefault("rateLimit.window", "1m")

	// Attempt to read the config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("No config file found. Using default settings and environment variables.")
		} else {
			return err
		}
	}

	// Unmarshal the configuration into the Configuration struct
	err := viper.Unmarshal(&config)
	if err != nil {
		return err
	}

	return nil
}

// GetConfig returns the loaded configuration
func GetConfig() *Configuration {
	return config
}

// GetString retrieves a string value from the configuration
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt retrieves an integer value from the configuration
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool retrieves a boolean value from the configuration
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetDuration retrieves a duration value from the configuration
func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}

// GetStringSlice retrieves a string slice value from the configuration
func GetStringSlice(key string) []string {
	return viper.GetStringSlice(key)
}

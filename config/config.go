package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const configFilePath = "config.json"

// Cfg holds the loaded application configuration.
var Cfg *Config

// Config is the application's configuration. Environment variables
// take precedence over the optional config.json file.
type Config struct {
	Port     string `json:"port" mapstructure:"port"`
	LogLevel string `json:"log-level" mapstructure:"log-level"`

	// DataSource selects where the two survey tables come from:
	// "csv" (default), "postgres" or "mongo".
	DataSource       string `json:"data-source" mapstructure:"data-source"`
	DemographicsCSV  string `json:"demographics-csv" mapstructure:"demographics-csv"`
	ServicesCSV      string `json:"services-csv" mapstructure:"services-csv"`

	DBHost            string `json:"db-host" mapstructure:"db-host"`
	DBPort            string `json:"db-port" mapstructure:"db-port"`
	DBUser            string `json:"db-user" mapstructure:"db-user"`
	DBPassword        string `json:"db-password" mapstructure:"db-password"`
	DBName            string `json:"db-name" mapstructure:"db-name"`
	DBSSLMode         string `json:"db-ssl-mode" mapstructure:"db-ssl-mode"`
	DemographicsTable string `json:"demographics-table" mapstructure:"demographics-table"`
	ServicesTable     string `json:"services-table" mapstructure:"services-table"`

	MongoURI               string `json:"mongo-uri" mapstructure:"mongo-uri"`
	MongoDBName            string `json:"mongo-db-name" mapstructure:"mongo-db-name"`
	DemographicsCollection string `json:"demographics-collection" mapstructure:"demographics-collection"`
	ServicesCollection     string `json:"services-collection" mapstructure:"services-collection"`

	CORSAllowedOrigins []string `json:"cors-allowed-origins" mapstructure:"cors-allowed-origins"`
}

var configKeys = []string{
	"port",
	"log-level",
	"data-source",
	"demographics-csv",
	"services-csv",
	"db-host",
	"db-port",
	"db-user",
	"db-password",
	"db-name",
	"db-ssl-mode",
	"demographics-table",
	"services-table",
	"mongo-uri",
	"mongo-db-name",
	"demographics-collection",
	"services-collection",
	"cors-allowed-origins",
}

// InitConfig reads configuration from config.json and environment
// variables. Environment variables take precedence over the file.
func InitConfig() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(configFilePath)
	v.SetConfigType("json")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	for _, key := range configKeys {
		v.BindEnv(key)
	}

	v.SetDefault("port", "8080")
	v.SetDefault("log-level", "INFO")
	v.SetDefault("data-source", "csv")
	v.SetDefault("demographics-csv", "demographics.csv")
	v.SetDefault("services-csv", "financial_services.csv")
	v.SetDefault("db-host", "localhost")
	v.SetDefault("db-port", "5432")
	v.SetDefault("db-user", "postgres")
	v.SetDefault("db-password", "")
	v.SetDefault("db-name", "finclusion")
	v.SetDefault("db-ssl-mode", "disable")
	v.SetDefault("demographics-table", "demographics")
	v.SetDefault("services-table", "financial_services")
	v.SetDefault("mongo-uri", "mongodb://localhost:27017")
	v.SetDefault("mongo-db-name", "finclusion")
	v.SetDefault("demographics-collection", "demographics")
	v.SetDefault("services-collection", "financial_services")
	v.SetDefault("cors-allowed-origins", []string{"http://localhost:3000", "http://localhost:5173"})

	if err := v.ReadInConfig(); err != nil {
		// the config file is optional; env vars and defaults suffice
		if !strings.Contains(err.Error(), configFilePath) {
			return nil, fmt.Errorf("could not read config: %w", err)
		}
	}

	if s := v.GetString("cors-allowed-origins"); strings.Contains(s, ",") {
		parts := strings.Split(s, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		v.Set("cors-allowed-origins", parts)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("could not unmarshal config: %w", err)
	}

	switch config.DataSource {
	case "csv", "postgres", "mongo":
	default:
		return nil, fmt.Errorf("invalid data-source %q: must be csv, postgres or mongo", config.DataSource)
	}

	Cfg = &config
	return &config, nil
}

// PostgresConnString builds the lib/pq connection string.
func (c *Config) PostgresConnString() string {
	return "host=" + c.DBHost + " port=" + c.DBPort + " user=" + c.DBUser +
		" password=" + c.DBPassword + " dbname=" + c.DBName + " sslmode=" + c.DBSSLMode
}

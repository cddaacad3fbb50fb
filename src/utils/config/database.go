package config

import (
	"time"

	"github.com/spf13/viper"
)

type Database struct {
	Port        uint16
	Host        string
	User        string
	Password    string
	Name        string
	SslMode     string
	PingTimeout time.Duration

	// TLS configuration, PEM contents
	ClientKey  string
	ClientCert string
	CaCert     string
}

func setDatabaseDefaults() {
	viper.SetDefault("Database.Port", "5432")
	viper.SetDefault("Database.Host", "127.0.0.1")
	viper.SetDefault("Database.User", "postgres")
	viper.SetDefault("Database.Password", "postgres")
	viper.SetDefault("Database.Name", "mirror")
	viper.SetDefault("Database.SslMode", "disable")
	viper.SetDefault("Database.PingTimeout", "15s")
}

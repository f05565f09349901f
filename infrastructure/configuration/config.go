package configuration

import (
	"fmt"
	"os"
	"strconv"

	"hireboard/infrastructure/logger"

	"github.com/spf13/viper"
)

type Config struct {
	App         App         `json:"app"`
	Database    Database    `json:"database"`
	Pubsub      Pubsub      `json:"pubsub"`
	ServiceBus  ServiceBus  `json:"serviceBus"`
	RedisClient RedisClient `json:"redisClient"`
	Logger      Logger      `json:"logger"`
	Social      Social      `json:"social"`
}

type App struct {
	Port      int    `json:"port"`
	SecretKey string `json:"secretKey"`
}

type Database struct {
	Psql  Db `json:"psql"`
	MySql Db `json:"mysql"`
	Mongo Db `json:"mongo"`
	Mssql Db `json:"mssql"`
}

type Db struct {
	Name     string `json:"name"`
	Host     string `json:"host"`
	Port     string `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
}

type Pubsub struct {
	ProjectID       string `json:"projectID"`
	OutcomeTopic    string `json:"outcomeTopic"`
	CredentialsFile string `json:"credentialsFile"`
}

type ServiceBus struct {
	Namespace    string `json:"namespace"`
	RequeueQueue string `json:"requeueQueue"`
}

type RedisClient struct {
	Host     string `json:"host"`
	Port     string `json:"port"`
	Password string `json:"password"`
	Username string `json:"username"`
}

type Logger struct {
	Format string `json:"format"`
}

// Social holds dispatch configuration: the enabled platform set, the sealing
// key for stored credentials, the per-branch timeout, and per-platform OAuth
// client credentials used for token refresh.
type Social struct {
	Platforms        []string    `json:"platforms"`
	SealKey          string      `json:"sealKey"` // hex or base64, 32 bytes decoded
	BranchTimeoutSec int         `json:"branchTimeoutSec"`
	OAuth            SocialOAuth `json:"oauth"`
}

type SocialOAuth struct {
	LinkedIn OAuthClient `json:"linkedin"`
	Facebook OAuthClient `json:"facebook"`
	X        OAuthClient `json:"x"`
}

type OAuthClient struct {
	ClientID     string `json:"clientId"`
	ClientSecret string `json:"clientSecret"`
	RedirectURI  string `json:"redirectURI"`
}

var C Config

func init() {
	LoadConfig()
	initDatabase(&C)
	initApp(&C)
	initSocial(&C)
}

func LoadConfig() {
	name := getConfig()
	viper.SetConfigName(name)
	viper.SetConfigType("json")
	viper.AddConfigPath(".")
	viper.AddConfigPath("../")
	viper.AddConfigPath("../../")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logger.GetLogger().Warn("Config file not found")
		} else {
			logger.GetLogger().WithField("error", err).Error("Error reading config file")
		}
	}

	logger.GetLogger().WithField("config", name).Info("Config set up successfully")
	if err := viper.Unmarshal(&C); err != nil {
		logger.GetLogger().WithField("error", err).Error("Viper unable to decode into struct")
	}
}

func getConfig() string {
	name := "config"
	env := os.Getenv("ENV")
	if env != "" {
		name = fmt.Sprintf("%s-%s", name, env)
	}
	return name
}

func initDatabase(C *Config) {
	if C.Database.Psql.Name == "" {
		C.Database.Psql.Name = os.Getenv("DB_NAME")
	}
	if C.Database.Psql.Host == "" {
		C.Database.Psql.Host = os.Getenv("DB_HOST")
	}
	if C.Database.Psql.User == "" {
		C.Database.Psql.User = os.Getenv("DB_USER")
	}
	if C.Database.Psql.Password == "" {
		C.Database.Psql.Password = os.Getenv("DB_PASSWORD")
	}
	if C.Database.Psql.Port == "" {
		C.Database.Psql.Port = os.Getenv("DB_PORT")
	}

	// Optional MSSQL config via environment (Azure SQL in production)
	if v := os.Getenv("MSSQL_DB_NAME"); v != "" && C.Database.Mssql.Name == "" {
		C.Database.Mssql.Name = v
	}
	if v := os.Getenv("MSSQL_HOST"); v != "" && C.Database.Mssql.Host == "" {
		C.Database.Mssql.Host = v
	}
	if v := os.Getenv("MSSQL_USER"); v != "" && C.Database.Mssql.User == "" {
		C.Database.Mssql.User = v
	}
	if v := os.Getenv("MSSQL_PASSWORD"); v != "" && C.Database.Mssql.Password == "" {
		C.Database.Mssql.Password = v
	}
	if C.Database.Mssql.Port == "" {
		C.Database.Mssql.Port = "1433"
	}

	// MySQL hosts the ATS jobs table; read-only from this service
	if v := os.Getenv("JOBS_DB_NAME"); v != "" && C.Database.MySql.Name == "" {
		C.Database.MySql.Name = v
	}
	if v := os.Getenv("JOBS_DB_HOST"); v != "" && C.Database.MySql.Host == "" {
		C.Database.MySql.Host = v
	}
}

func initApp(C *Config) {
	// SECRET_KEY from environment overrides the config file when provided
	if v := os.Getenv("SECRET_KEY"); v != "" {
		C.App.SecretKey = v
	}
	// Port resolution order (env overrides config): APP_PORT -> PORT -> config -> default 10002
	if v := os.Getenv("APP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			C.App.Port = p
		}
	} else if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			C.App.Port = p
		}
	}
	if C.App.Port == 0 {
		C.App.Port = 10002
	}
	if C.App.SecretKey == "" {
		logger.GetLogger().Warn("App.SecretKey not set; JWT authentication will fail. Provide SECRET_KEY via environment.")
	}
}

func initSocial(C *Config) {
	if v := os.Getenv("SOCIAL_SEAL_KEY"); v != "" {
		C.Social.SealKey = v
	}
	if len(C.Social.Platforms) == 0 {
		C.Social.Platforms = []string{"website", "linkedin", "facebook", "x"}
	}
	if C.Social.BranchTimeoutSec == 0 {
		C.Social.BranchTimeoutSec = 30
	}
	if C.Social.SealKey == "" {
		logger.GetLogger().Warn("Social.SealKey not set; sealed credentials cannot be decrypted. Provide SOCIAL_SEAL_KEY via environment.")
	}
}

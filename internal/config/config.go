package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App          App          `mapstructure:",squash"`
	Server       Server       `mapstructure:",squash"`
	Database     Database     `mapstructure:",squash"`
	Redis        Redis        `mapstructure:",squash"`
	Auth         Auth         `mapstructure:",squash"`
	Artifacts    Artifacts    `mapstructure:",squash"`
	Model        Model        `mapstructure:",squash"`
	Forecast     Forecast     `mapstructure:",squash"`
	CurationSync CurationSync `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
	Version  string `mapstructure:"app_version"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type Database struct {
	Enabled         bool          `mapstructure:"database_enabled"`
	DSN             string        `mapstructure:"-"`
	Driver          string        `mapstructure:"database_driver"`
	Password        string        `mapstructure:"database_password"`
	URL             string        `mapstructure:"database_url"`
	User            string        `mapstructure:"database_user"`
	MaxOpenConns    int           `mapstructure:"database_max_open_conns"`
	MaxIdleConns    int           `mapstructure:"database_max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"database_conn_max_lifetime"`
}

type Redis struct {
	Enabled  bool          `mapstructure:"redis_enabled"`
	Addr     string        `mapstructure:"redis_addr"`
	Password string        `mapstructure:"redis_password"`
	DB       int           `mapstructure:"redis_db"`
	TTL      time.Duration `mapstructure:"redis_forecast_ttl"`
}

type Auth struct {
	Enabled  bool          `mapstructure:"auth_enabled"`
	Secret   string        `mapstructure:"auth_secret"`
	TokenTTL time.Duration `mapstructure:"auth_token_ttl"`
	// Clients no formato id:papel:hash_bcrypt, separados por vírgula
	Clients []string `mapstructure:"auth_clients"`
}

// Artifacts aponta para os arquivos produzidos pela curadoria
type Artifacts struct {
	Dir            string `mapstructure:"artifacts_dir"`
	LedgerPath     string `mapstructure:"ledger_path"`
	SnapshotSource string `mapstructure:"snapshot_source"` // file | postgres
}

type Model struct {
	Kind    string        `mapstructure:"model_kind"` // linear | remote
	Path    string        `mapstructure:"model_path"`
	URL     string        `mapstructure:"model_url"`
	Timeout time.Duration `mapstructure:"model_timeout"`
	// impressão digital da codificação de treino do modelo remoto; vazio não verifica
	SchemaFingerprint string `mapstructure:"model_schema_fingerprint"`
}

type Forecast struct {
	MaxWorkers int `mapstructure:"forecast_max_workers"`
	MaxHorizon int `mapstructure:"forecast_max_horizon"`
}

type CurationSync struct {
	CronSchedule    string  `mapstructure:"curation_sync_cron"`
	Enabled         bool    `mapstructure:"curation_sync_enabled"`
	ParetoThreshold float64 `mapstructure:"curation_pareto_threshold"`
	KitMarker       string  `mapstructure:"curation_kit_marker"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8001)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:8050")

	viper.SetDefault("DATABASE_ENABLED", false)
	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/forecast?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_MAX_OPEN_CONNS", 10)
	viper.SetDefault("DATABASE_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DATABASE_CONN_MAX_LIFETIME", "30m")

	viper.SetDefault("REDIS_ENABLED", false)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("REDIS_FORECAST_TTL", "6h")

	viper.SetDefault("AUTH_ENABLED", true)
	viper.SetDefault("AUTH_SECRET", "your_secret_key") // ONLY LOCAL
	viper.SetDefault("AUTH_TOKEN_TTL", "12h")
	viper.SetDefault("AUTH_CLIENTS", "")

	viper.SetDefault("ARTIFACTS_DIR", "./data/gold")
	viper.SetDefault("LEDGER_PATH", "./data/bronze/ledger.csv")
	viper.SetDefault("SNAPSHOT_SOURCE", "file")

	viper.SetDefault("MODEL_KIND", "linear")
	viper.SetDefault("MODEL_PATH", "./data/gold/model.json")
	viper.SetDefault("MODEL_URL", "http://localhost:5001")
	viper.SetDefault("MODEL_TIMEOUT", "5s")
	viper.SetDefault("MODEL_SCHEMA_FINGERPRINT", "")

	viper.SetDefault("FORECAST_MAX_WORKERS", 4)
	viper.SetDefault("FORECAST_MAX_HORIZON", 120)

	viper.SetDefault("CURATION_SYNC_CRON", "0 2 1 * *") // Primeiro dia de cada mês às 2h
	viper.SetDefault("CURATION_SYNC_ENABLED", false)
	viper.SetDefault("CURATION_PARETO_THRESHOLD", 0.80)
	viper.SetDefault("CURATION_KIT_MARKER", "KIT")

	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("APP_VERSION", "0.1.0")
}

func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

func (c *Config) validate() error {
	switch c.Artifacts.SnapshotSource {
	case "file":
	case "postgres":
		if !c.Database.Enabled {
			return fmt.Errorf("snapshot_source=postgres exige DATABASE_ENABLED=true")
		}
	default:
		return fmt.Errorf("snapshot_source inválido: %q", c.Artifacts.SnapshotSource)
	}

	switch c.Model.Kind {
	case "linear", "remote":
	default:
		return fmt.Errorf("model_kind inválido: %q", c.Model.Kind)
	}

	if c.CurationSync.ParetoThreshold <= 0 || c.CurationSync.ParetoThreshold > 1 {
		return fmt.Errorf("curation_pareto_threshold deve estar em (0, 1]: %v", c.CurationSync.ParetoThreshold)
	}

	if c.Forecast.MaxWorkers < 1 {
		c.Forecast.MaxWorkers = 1
	}

	return nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado, usando apenas variáveis de ambiente")
}

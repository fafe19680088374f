package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App       AppConfig
	Office    OfficeConfig
	DB        DBConfig
	Mongo     MongoConfig
	JWT       JWTConfig
	HTTP      HTTPConfig
	SMS       SMSConfig
	Scheduler SchedulerConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// OfficeConfig datos de la oficina que aparecen en los formularios impresos.
type OfficeConfig struct {
	Name       string // ej. "Swasthya Shakha, Gaunpalika"
	Address    string
	FiscalYear string // año fiscal activo, ej. "2081/082"
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	MaxConns    int
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// MongoConfig configuración del registro de la clínica de rabia (MongoDB).
// URI vacío deshabilita el módulo de clínica.
type MongoConfig struct {
	URI    string
	DBName string
}

// Enabled indica si hay URI configurada.
func (c MongoConfig) Enabled() bool { return c.URI != "" }

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// SMSConfig pasarela SMS para recordatorios de dosis. BaseURL vacío = solo se registran en log.
type SMSConfig struct {
	BaseURL  string
	Token    string
	SenderID string
}

// SchedulerConfig expresiones cron de las tareas programadas.
type SchedulerConfig struct {
	ReminderCron string // recordatorio de dosis antirrábicas
	Timezone     string // zona horaria de las expresiones cron
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, MONGO_URI, JWT_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // el archivo es opcional

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "swasthya-api"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		Office: OfficeConfig{
			Name:       getString(v, "OFFICE_NAME", "Swasthya Shakha"),
			Address:    getString(v, "OFFICE_ADDRESS", ""),
			FiscalYear: getString(v, "OFFICE_FISCAL_YEAR", ""),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "swasthya"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			MaxConns:    getInt(v, "DB_MAX_CONNS", 10),
		},
		Mongo: MongoConfig{
			URI:    getString(v, "MONGO_URI", ""),
			DBName: getString(v, "MONGO_DB", "swasthya_clinic"),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 480),
			Issuer:     getString(v, "JWT_ISSUER", "swasthya-api"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		SMS: SMSConfig{
			BaseURL:  getString(v, "SMS_BASE_URL", ""),
			Token:    getString(v, "SMS_TOKEN", ""),
			SenderID: getString(v, "SMS_SENDER_ID", ""),
		},
		Scheduler: SchedulerConfig{
			ReminderCron: getString(v, "REMINDER_CRON", "0 7 * * *"),
			Timezone:     getString(v, "SCHEDULER_TZ", "Asia/Kathmandu"),
		},
	}

	if cfg.JWT.Secret == "" && cfg.App.Env == "production" {
		return nil, fmt.Errorf("config: JWT_SECRET es obligatorio en producción")
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if !v.IsSet(key) {
		return def
	}
	if s, ok := v.Get(key).(string); ok {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return def
		}
		return n
	}
	return v.GetInt(key)
}

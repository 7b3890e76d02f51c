package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "TILEVISTA"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv                 = "TILEVISTA_APP_ENV"
	EnvPort                   = "TILEVISTA_APP_PORT"
	EnvDBDSN                  = "TILEVISTA_DB_DSN"
	EnvDBHost                 = "TILEVISTA_DB_HOST"
	EnvDBUser                 = "TILEVISTA_DB_USER"
	EnvDBName                 = "TILEVISTA_DB_NAME"
	EnvRedisURL               = "TILEVISTA_REDIS_URL"
	EnvJWTSecret              = "TILEVISTA_JWT_SECRET"
	EnvJWTIssuer              = "TILEVISTA_JWT_ISSUER"
	EnvJWTExpMins             = "TILEVISTA_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "TILEVISTA_REFRESH_TOKEN_TTL_MINUTES"
	EnvGCPProjectID           = "TILEVISTA_GCP_PROJECT_ID"
	EnvGCSBucket              = "TILEVISTA_GCS_BUCKET_NAME"
	EnvPubSubAnalyticsTopic   = "TILEVISTA_PUBSUB_ANALYTICS_TOPIC"
	EnvPubSubAnalyticsSub     = "TILEVISTA_PUBSUB_ANALYTICS_SUBSCRIPTION"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App           AppConfig
	Service       ServiceConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	Eventing      EventingConfig
	GCP           GCPConfig
	GCS           GCSConfig
	Media         MediaConfig
	PubSub        PubSubConfig
	BigQuery      BigQueryConfig
	QR            QRConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"TILEVISTA_APP_ENV" required:"true"`
	Port         string `envconfig:"TILEVISTA_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"TILEVISTA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"TILEVISTA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"TILEVISTA_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"TILEVISTA_DB_DSN"`
	Driver string `envconfig:"TILEVISTA_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"TILEVISTA_DB_HOST"`
	LegacyPort     int    `envconfig:"TILEVISTA_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"TILEVISTA_DB_USER"`
	LegacyPassword string `envconfig:"TILEVISTA_DB_PASSWORD"`
	LegacyName     string `envconfig:"TILEVISTA_DB_NAME"`
	LegacySSLMode  string `envconfig:"TILEVISTA_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"TILEVISTA_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"TILEVISTA_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"TILEVISTA_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"TILEVISTA_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"TILEVISTA_REDIS_URL" required:"true"`
	Address      string        `envconfig:"TILEVISTA_REDIS_ADDR"`
	Password     string        `envconfig:"TILEVISTA_REDIS_PASSWORD"`
	DB           int           `envconfig:"TILEVISTA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"TILEVISTA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"TILEVISTA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"TILEVISTA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"TILEVISTA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"TILEVISTA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"TILEVISTA_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"TILEVISTA_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"TILEVISTA_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"TILEVISTA_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"TILEVISTA_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"TILEVISTA_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"TILEVISTA_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"TILEVISTA_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"TILEVISTA_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"TILEVISTA_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"TILEVISTA_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"TILEVISTA_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"TILEVISTA_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"TILEVISTA_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"TILEVISTA_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	UseSQLite     bool   `envconfig:"TILEVISTA_USE_SQLITE" default:"false"`
	AutoMigrate   bool   `envconfig:"TILEVISTA_AUTO_MIGRATE" default:"false"`
	GCSAccessMode string `envconfig:"TILEVISTA_GCS_ACCESS_MODE" default:"public"`
}

type EventingConfig struct {
	IdempotencyTTL time.Duration `envconfig:"TILEVISTA_EVENTING_IDEMPOTENCY_TTL" default:"720h"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"TILEVISTA_GCP_PROJECT_ID" required:"true"`
	CredentialsJSON        string `envconfig:"TILEVISTA_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"TILEVISTA_GOOGLE_APPLICATION_CREDENTIALS"`
}

type GCSConfig struct {
	BucketName        string        `envconfig:"TILEVISTA_GCS_BUCKET_NAME" required:"true"`
	UploadURLExpiry   time.Duration `envconfig:"TILEVISTA_GCS_UPLOAD_URL_EXPIRY" default:"15m"`
	DownloadURLExpiry time.Duration `envconfig:"TILEVISTA_GCS_DOWNLOAD_URL_EXPIRY" default:"1h"`
}

type MediaConfig struct {
	MaxUploadMB    int `envconfig:"TILEVISTA_MAX_UPLOAD_MB" default:"25"`
	ImageMaxWidth  int `envconfig:"TILEVISTA_MEDIA_IMAGE_MAX_WIDTH" default:"1920"`
	ImageMaxHeight int `envconfig:"TILEVISTA_MEDIA_IMAGE_MAX_HEIGHT" default:"1080"`
}

type PubSubConfig struct {
	AnalyticsTopic        string `envconfig:"TILEVISTA_PUBSUB_ANALYTICS_TOPIC" required:"true"`
	AnalyticsSubscription string `envconfig:"TILEVISTA_PUBSUB_ANALYTICS_SUBSCRIPTION" required:"true"`
}

type BigQueryConfig struct {
	Dataset         string `envconfig:"TILEVISTA_BIGQUERY_DATASET" default:"tilevista"`
	TileEventsTable string `envconfig:"TILEVISTA_BIGQUERY_TILE_EVENTS_TABLE" default:"tile_events"`
}

type QRConfig struct {
	ImageSize     int    `envconfig:"TILEVISTA_QR_IMAGE_SIZE" default:"256"`
	RecoveryLevel string `envconfig:"TILEVISTA_QR_RECOVERY_LEVEL" default:"medium"`
	WebBaseURL    string `envconfig:"TILEVISTA_QR_WEB_BASE_URL" default:"https://tilevista.app"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}

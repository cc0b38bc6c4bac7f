package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/poethra-leaderboard/internal/platform/logging"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                     string
	ServiceName                string
	ServiceVersion             string
	HTTPAddr                   string
	ReadTimeout                time.Duration
	WriteTimeout               time.Duration
	LogLevel                   logging.Level
	CORSAllowedOrigins         []string
	SwaggerEnabled             bool
	MetricsEnabled             bool
	StorageDriver              string
	DBURL                      string
	DBDisablePreparedBinary    bool
	MongoURI                   string
	MongoDatabase              string
	MongoTransactionsEnabled   bool
	MongoTimeout               time.Duration
	StoreCircuitEnabled        bool
	StoreCircuitFailureCount   int
	StoreCircuitOpenTimeout    time.Duration
	StoreCircuitHalfOpenMaxReq int
	CacheEnabled               bool
	CacheTTL                   time.Duration
	PointsFirstPlace           int
	PointsSecondPlace          int
	PointsThirdPlace           int
	PointsParticipation        int
	AdminPasswordHash          string
	AdminTokenSecret           string
	AdminSessionTTL            time.Duration
	UptraceEnabled             bool
	UptraceDSN                 string
	UptraceLogsEnabled         bool
	PprofEnabled               bool
	PprofAddr                  string
	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageMongo    = "mongo"
)

// Load reads the optional APP_CONFIG_FILE and the process environment, then parses and
// validates every setting. Environment values win over the file.
func Load() (Config, error) {
	src, err := newSource(os.Getenv("APP_CONFIG_FILE"))
	if err != nil {
		return Config{}, err
	}

	appEnv, err := parseAppEnv(src.get("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	swaggerDefault := "true"
	if appEnv == EnvProd {
		swaggerDefault = "false"
	}
	swaggerEnabled, err := strconv.ParseBool(src.get("SWAGGER_ENABLED", swaggerDefault))
	if err != nil {
		return Config{}, fmt.Errorf("parse SWAGGER_ENABLED: %w", err)
	}
	metricsEnabled, err := strconv.ParseBool(src.get("METRICS_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse METRICS_ENABLED: %w", err)
	}

	readTimeout, err := time.ParseDuration(src.get("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := time.ParseDuration(src.get("APP_WRITE_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	storageDriver, err := parseStorageDriver(src.get("STORAGE_DRIVER", StorageMemory))
	if err != nil {
		return Config{}, err
	}
	dbURL := strings.TrimSpace(src.get("DB_URL", ""))
	if storageDriver == StoragePostgres && dbURL == "" {
		return Config{}, fmt.Errorf("DB_URL is required when STORAGE_DRIVER=%s", StoragePostgres)
	}
	dbDisablePreparedBinary, err := strconv.ParseBool(src.get("DB_DISABLE_PREPARED_BINARY_RESULT", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}

	mongoURI := strings.TrimSpace(src.get("MONGO_URI", ""))
	if storageDriver == StorageMongo && mongoURI == "" {
		return Config{}, fmt.Errorf("MONGO_URI is required when STORAGE_DRIVER=%s", StorageMongo)
	}
	mongoTransactionsEnabled, err := strconv.ParseBool(src.get("MONGO_TRANSACTIONS_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse MONGO_TRANSACTIONS_ENABLED: %w", err)
	}
	mongoTimeout, err := time.ParseDuration(src.get("MONGO_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse MONGO_TIMEOUT: %w", err)
	}
	if mongoTimeout <= 0 {
		return Config{}, fmt.Errorf("MONGO_TIMEOUT must be > 0")
	}

	storeCircuitEnabled, err := strconv.ParseBool(src.get("STORE_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse STORE_CIRCUIT_ENABLED: %w", err)
	}
	storeCircuitFailureCount, err := src.getInt("STORE_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse STORE_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if storeCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("STORE_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	storeCircuitOpenTimeout, err := time.ParseDuration(src.get("STORE_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse STORE_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if storeCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("STORE_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	storeCircuitHalfOpenMaxReq, err := src.getInt("STORE_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse STORE_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if storeCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("STORE_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	cacheEnabled, err := strconv.ParseBool(src.get("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheTTL, err := time.ParseDuration(src.get("CACHE_TTL", "60s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if cacheTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be > 0")
	}

	points := map[string]int{
		"POINTS_FIRST_PLACE":   10,
		"POINTS_SECOND_PLACE":  7,
		"POINTS_THIRD_PLACE":   5,
		"POINTS_PARTICIPATION": 2,
	}
	for key, fallback := range points {
		value, err := src.getInt(key, fallback)
		if err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", key, err)
		}
		if value < 0 {
			return Config{}, fmt.Errorf("%s must be >= 0", key)
		}
		points[key] = value
	}

	adminPasswordHash := strings.TrimSpace(src.get("ADMIN_PASSWORD_HASH", ""))
	if adminPasswordHash != "" && !strings.HasPrefix(adminPasswordHash, "$2") {
		return Config{}, fmt.Errorf("ADMIN_PASSWORD_HASH must be a bcrypt hash")
	}
	if appEnv == EnvProd && adminPasswordHash == "" {
		return Config{}, fmt.Errorf("ADMIN_PASSWORD_HASH is required when APP_ENV=%s", EnvProd)
	}
	adminTokenSecret := strings.TrimSpace(src.get("ADMIN_TOKEN_SECRET", ""))
	if adminTokenSecret != "" && len(adminTokenSecret) < 32 {
		return Config{}, fmt.Errorf("ADMIN_TOKEN_SECRET must be at least 32 characters")
	}
	if appEnv == EnvProd && adminTokenSecret == "" {
		return Config{}, fmt.Errorf("ADMIN_TOKEN_SECRET is required when APP_ENV=%s", EnvProd)
	}
	adminSessionTTL, err := time.ParseDuration(src.get("ADMIN_SESSION_TTL", "12h"))
	if err != nil {
		return Config{}, fmt.Errorf("parse ADMIN_SESSION_TTL: %w", err)
	}
	if adminSessionTTL <= 0 {
		return Config{}, fmt.Errorf("ADMIN_SESSION_TTL must be > 0")
	}

	uptraceEnabled, err := strconv.ParseBool(src.get("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(src.get("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(src.get("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	uptraceLogsEnabled, err := strconv.ParseBool(src.get("UPTRACE_LOGS_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_LOGS_ENABLED: %w", err)
	}

	pprofEnabled, err := strconv.ParseBool(src.get("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(src.get("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(src.get("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(src.get("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(src.get("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	cfg := Config{
		AppEnv:                     appEnv,
		ServiceName:                src.get("APP_SERVICE_NAME", "poethra-leaderboard-api"),
		ServiceVersion:             src.get("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                   src.get("APP_HTTP_ADDR", ":8080"),
		ReadTimeout:                readTimeout,
		WriteTimeout:               writeTimeout,
		LogLevel:                   logging.ParseLevel(src.get("APP_LOG_LEVEL", "info")),
		CORSAllowedOrigins:         splitCSV(src.get("CORS_ALLOWED_ORIGINS", "*")),
		SwaggerEnabled:             swaggerEnabled,
		MetricsEnabled:             metricsEnabled,
		StorageDriver:              storageDriver,
		DBURL:                      dbURL,
		DBDisablePreparedBinary:    dbDisablePreparedBinary,
		MongoURI:                   mongoURI,
		MongoDatabase:              strings.TrimSpace(src.get("MONGO_DATABASE", "poethra")),
		MongoTransactionsEnabled:   mongoTransactionsEnabled,
		MongoTimeout:               mongoTimeout,
		StoreCircuitEnabled:        storeCircuitEnabled,
		StoreCircuitFailureCount:   storeCircuitFailureCount,
		StoreCircuitOpenTimeout:    storeCircuitOpenTimeout,
		StoreCircuitHalfOpenMaxReq: storeCircuitHalfOpenMaxReq,
		CacheEnabled:               cacheEnabled,
		CacheTTL:                   cacheTTL,
		PointsFirstPlace:           points["POINTS_FIRST_PLACE"],
		PointsSecondPlace:          points["POINTS_SECOND_PLACE"],
		PointsThirdPlace:           points["POINTS_THIRD_PLACE"],
		PointsParticipation:        points["POINTS_PARTICIPATION"],
		AdminPasswordHash:          adminPasswordHash,
		AdminTokenSecret:           adminTokenSecret,
		AdminSessionTTL:            adminSessionTTL,
		UptraceEnabled:             uptraceEnabled,
		UptraceDSN:                 uptraceDSN,
		UptraceLogsEnabled:         uptraceLogsEnabled,
		PprofEnabled:               pprofEnabled,
		PprofAddr:                  pprofAddr,
		PyroscopeEnabled:           pyroscopeEnabled,
		PyroscopeServerAddress:     pyroscopeServerAddress,
		PyroscopeAuthToken:         strings.TrimSpace(src.get("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:     strings.TrimSpace(src.get("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword: strings.TrimSpace(src.get("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:        pyroscopeUploadRate,
	}
	cfg.PyroscopeAppName = strings.TrimSpace(src.get("PYROSCOPE_APP_NAME", cfg.ServiceName))

	if cfg.MongoDatabase == "" {
		return Config{}, fmt.Errorf("MONGO_DATABASE cannot be empty")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}
	if strings.TrimSpace(cfg.HTTPAddr) == "" {
		return Config{}, fmt.Errorf("APP_HTTP_ADDR cannot be empty")
	}

	return cfg, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}

func parseStorageDriver(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case StorageMemory, StoragePostgres, StorageMongo:
		return value, nil
	default:
		return "", fmt.Errorf("invalid STORAGE_DRIVER %q: valid values are %s, %s, %s", v, StorageMemory, StoragePostgres, StorageMongo)
	}
}

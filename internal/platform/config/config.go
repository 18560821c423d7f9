// Package config loads process configuration from an optional file and
// KYCAML_-prefixed environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"kycaml/internal/compliance/models"
)

// EnvPrefix is prepended to every environment variable, with dots replaced by
// underscores: engine.auto_approval_threshold is KYCAML_ENGINE_AUTO_APPROVAL_THRESHOLD.
const EnvPrefix = "KYCAML"

// Config is the full process configuration.
type Config struct {
	Server    Server
	Log       LogConfig
	Redis     RedisConfig
	Postgres  PostgresConfig
	Kafka     KafkaConfig
	Sanctions SanctionsConfig
	Vendor    VendorConfig
	Engine    models.EngineConfig
}

// Server captures ops HTTP server configuration.
type Server struct {
	Addr            string
	ShutdownTimeout time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

// RedisConfig configures the sanctions snapshot cache. An empty URL disables it.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// PostgresConfig configures the assessment store. An empty DSN keeps assessments in memory.
type PostgresConfig struct {
	DSN             string
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

// KafkaConfig configures the approved-assessment handoff. No brokers disables publishing.
type KafkaConfig struct {
	Brokers           []string
	Topic             string
	Partitions        int32
	ReplicationFactor int16
}

// SanctionsConfig points at the list feed loaded when no snapshot exists.
type SanctionsConfig struct {
	FeedFile string
}

// VendorConfig points at the external adverse-media screening service. An
// empty URL leaves vendor screening off.
type VendorConfig struct {
	URL    string
	APIKey string
}

// Load reads path (when non-empty) and overlays environment variables.
// The engine section starts from models.DefaultEngineConfig and is validated.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	engine, err := loadEngine(v)
	if err != nil {
		return Config{}, err
	}

	return Config{
		Server: Server{
			Addr:            v.GetString("server.addr"),
			ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		Redis: RedisConfig{
			URL:          v.GetString("redis.url"),
			PoolSize:     v.GetInt("redis.pool_size"),
			MinIdleConns: v.GetInt("redis.min_idle_conns"),
			DialTimeout:  v.GetDuration("redis.dial_timeout"),
			ReadTimeout:  v.GetDuration("redis.read_timeout"),
			WriteTimeout: v.GetDuration("redis.write_timeout"),
		},
		Postgres: PostgresConfig{
			DSN:             v.GetString("postgres.dsn"),
			MaxOpenConns:    v.GetInt("postgres.max_open_conns"),
			ConnMaxLifetime: v.GetDuration("postgres.conn_max_lifetime"),
		},
		Kafka: KafkaConfig{
			Brokers:           stringList(v, "kafka.brokers"),
			Topic:             v.GetString("kafka.topic"),
			Partitions:        v.GetInt32("kafka.partitions"),
			ReplicationFactor: int16(v.GetInt("kafka.replication_factor")),
		},
		Sanctions: SanctionsConfig{
			FeedFile: v.GetString("sanctions.feed_file"),
		},
		Vendor: VendorConfig{
			URL:    v.GetString("vendor.url"),
			APIKey: v.GetString("vendor.api_key"),
		},
		Engine: engine,
	}, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":9090")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("vendor.url", "")
	v.SetDefault("vendor.api_key", "")

	v.SetDefault("redis.url", "")
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.min_idle_conns", 2)
	v.SetDefault("redis.dial_timeout", 5*time.Second)
	v.SetDefault("redis.read_timeout", 3*time.Second)
	v.SetDefault("redis.write_timeout", 3*time.Second)

	v.SetDefault("postgres.dsn", "")
	v.SetDefault("postgres.max_open_conns", 10)
	v.SetDefault("postgres.conn_max_lifetime", 30*time.Minute)

	v.SetDefault("kafka.brokers", []string{})
	v.SetDefault("kafka.topic", "compliance.assessments.approved")
	v.SetDefault("kafka.partitions", 3)
	v.SetDefault("kafka.replication_factor", 1)

	v.SetDefault("sanctions.feed_file", "")

	d := models.DefaultEngineConfig()
	v.SetDefault("engine.sanctions_check_enabled", d.SanctionsCheckEnabled)
	v.SetDefault("engine.pep_check_enabled", d.PEPCheckEnabled)
	v.SetDefault("engine.adverse_media_check_enabled", d.AdverseMediaCheckEnabled)
	v.SetDefault("engine.transaction_monitoring_enabled", d.TransactionMonitoringEnabled)
	v.SetDefault("engine.document_verification_enabled", d.DocumentVerificationEnabled)
	v.SetDefault("engine.high_risk_countries", d.HighRiskCountries)
	v.SetDefault("engine.monitored_countries", d.MonitoredCountries)
	v.SetDefault("engine.transaction_thresholds.low", d.TransactionThresholds.Low.String())
	v.SetDefault("engine.transaction_thresholds.medium", d.TransactionThresholds.Medium.String())
	v.SetDefault("engine.transaction_thresholds.high", d.TransactionThresholds.High.String())
	v.SetDefault("engine.auto_approval_threshold", d.AutoApprovalThreshold)
	v.SetDefault("engine.auto_rejection_threshold", d.AutoRejectionThreshold)
	v.SetDefault("engine.match_score_floor", d.MatchScoreFloor)
	v.SetDefault("engine.fuzzy_match_threshold", d.FuzzyMatchThreshold)
	v.SetDefault("engine.name_match_threshold", d.NameMatchThreshold)
	v.SetDefault("engine.bands.medium", d.Bands.Medium)
	v.SetDefault("engine.bands.high", d.Bands.High)
	v.SetDefault("engine.bands.critical", d.Bands.Critical)
	v.SetDefault("engine.new_account_week", d.NewAccountWeek)
	v.SetDefault("engine.new_account_window", d.NewAccountWindow)
	v.SetDefault("engine.vendor_timeout", d.VendorTimeout)
	for key, weight := range weightKeys(&d.Weights) {
		v.SetDefault("engine.weights."+key, *weight)
	}
}

// weightKeys maps configuration keys to the weight fields they set.
func weightKeys(w *models.RiskWeights) map[string]*int {
	return map[string]*int{
		"sanctions_hit":          &w.SanctionsHit,
		"pep_match":              &w.PEPMatch,
		"high_risk_jurisdiction": &w.HighRiskJurisdiction,
		"monitored_jurisdiction": &w.MonitoredJurisdiction,
		"cross_border":           &w.CrossBorder,
		"large_amount_high":      &w.LargeAmountHigh,
		"large_amount_medium":    &w.LargeAmountMedium,
		"large_amount_low":       &w.LargeAmountLow,
		"structuring":            &w.Structuring,
		"new_account_week":       &w.NewAccountWeek,
		"new_account_window":     &w.NewAccountWindow,
		"incomplete_profile":     &w.IncompleteProfile,
		"adverse_media":          &w.AdverseMedia,
		"evaluator_failure":      &w.EvaluatorFailure,
	}
}

func loadEngine(v *viper.Viper) (models.EngineConfig, error) {
	cfg := models.DefaultEngineConfig()
	cfg.SanctionsCheckEnabled = v.GetBool("engine.sanctions_check_enabled")
	cfg.PEPCheckEnabled = v.GetBool("engine.pep_check_enabled")
	cfg.AdverseMediaCheckEnabled = v.GetBool("engine.adverse_media_check_enabled")
	cfg.TransactionMonitoringEnabled = v.GetBool("engine.transaction_monitoring_enabled")
	cfg.DocumentVerificationEnabled = v.GetBool("engine.document_verification_enabled")
	cfg.HighRiskCountries = upper(stringList(v, "engine.high_risk_countries"))
	cfg.MonitoredCountries = upper(stringList(v, "engine.monitored_countries"))
	cfg.AutoApprovalThreshold = v.GetInt("engine.auto_approval_threshold")
	cfg.AutoRejectionThreshold = v.GetInt("engine.auto_rejection_threshold")
	cfg.MatchScoreFloor = v.GetInt("engine.match_score_floor")
	cfg.FuzzyMatchThreshold = v.GetFloat64("engine.fuzzy_match_threshold")
	cfg.NameMatchThreshold = v.GetFloat64("engine.name_match_threshold")
	cfg.Bands = models.RiskBands{
		Medium:   v.GetInt("engine.bands.medium"),
		High:     v.GetInt("engine.bands.high"),
		Critical: v.GetInt("engine.bands.critical"),
	}
	cfg.NewAccountWeek = v.GetDuration("engine.new_account_week")
	cfg.NewAccountWindow = v.GetDuration("engine.new_account_window")
	cfg.VendorTimeout = v.GetDuration("engine.vendor_timeout")

	for key, weight := range weightKeys(&cfg.Weights) {
		*weight = v.GetInt("engine.weights." + key)
	}

	thresholds := []struct {
		key string
		dst *decimal.Decimal
	}{
		{"engine.transaction_thresholds.low", &cfg.TransactionThresholds.Low},
		{"engine.transaction_thresholds.medium", &cfg.TransactionThresholds.Medium},
		{"engine.transaction_thresholds.high", &cfg.TransactionThresholds.High},
	}
	for _, t := range thresholds {
		amount, err := decimal.NewFromString(v.GetString(t.key))
		if err != nil {
			return models.EngineConfig{}, models.NewConfigurationError("load_config", t.key+" is not a decimal amount", err)
		}
		*t.dst = amount
	}

	if v.IsSet("engine.keywords") {
		var keywords []models.KeywordRule
		if err := v.UnmarshalKey("engine.keywords", &keywords); err != nil {
			return models.EngineConfig{}, models.NewConfigurationError("load_config", "engine.keywords is malformed", err)
		}
		cfg.Keywords = keywords
	}

	if err := cfg.Validate(); err != nil {
		return models.EngineConfig{}, err
	}
	return cfg, nil
}

// stringList accepts a YAML list or a comma-separated environment value.
func stringList(v *viper.Viper, key string) []string {
	var out []string
	for _, item := range v.GetStringSlice(key) {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func upper(codes []string) []string {
	out := make([]string, len(codes))
	for i, c := range codes {
		out[i] = strings.ToUpper(c)
	}
	return out
}

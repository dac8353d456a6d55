package config

import (
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server      ServerConfig
	Neo4j       Neo4jConfig
	QuestionLog QuestionLogConfig
	Kafka       KafkaConfig
	Scheduler   SchedulerConfig
	Debug       bool
}

type ServerConfig struct {
	Port string
}

type Neo4jConfig struct {
	URI            string
	Username       string
	Password       string
	Database       string
	ConnectTimeout time.Duration
	MaxRetries     uint64
}

type QuestionLogConfig struct {
	DSN string
}

type KafkaConfig struct {
	Brokers    []string
	EventTopic string
}

type SchedulerConfig struct {
	HealthCheckSchedule string
}

func NewConfig() (*Config, error) {
	// Configure Viper to read .env file
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	// Enable automatic environment variable loading
	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("NEO4J_URI", "neo4j://localhost:7687")
	viper.SetDefault("NEO4J_USERNAME", "neo4j")
	viper.SetDefault("NEO4J_PASSWORD", "")
	viper.SetDefault("NEO4J_DATABASE", "neo4j")
	viper.SetDefault("NEO4J_CONNECT_TIMEOUT", "30s")
	viper.SetDefault("NEO4J_MAX_RETRIES", 3)
	viper.SetDefault("QUESTION_LOG_DSN", "")
	viper.SetDefault("KAFKA_BROKERS", "")
	viper.SetDefault("KAFKA_EVENT_TOPIC", "chat_question_events")
	viper.SetDefault("HEALTH_CHECK_SCHEDULE", "0 */5 * * * *") // Every 5 minutes
	viper.SetDefault("DEBUG", false)

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config
	config.Server.Port = viper.GetString("SERVER_PORT")

	// --- Neo4j ---
	config.Neo4j.URI = viper.GetString("NEO4J_URI")
	config.Neo4j.Username = viper.GetString("NEO4J_USERNAME")
	config.Neo4j.Password = viper.GetString("NEO4J_PASSWORD")
	config.Neo4j.Database = viper.GetString("NEO4J_DATABASE")
	config.Neo4j.ConnectTimeout = viper.GetDuration("NEO4J_CONNECT_TIMEOUT")
	config.Neo4j.MaxRetries = uint64(viper.GetInt("NEO4J_MAX_RETRIES"))

	// --- Question log ---
	config.QuestionLog.DSN = viper.GetString("QUESTION_LOG_DSN")

	// --- Kafka ---
	if brokers := viper.GetString("KAFKA_BROKERS"); brokers != "" {
		config.Kafka.Brokers = strings.Split(brokers, ",")
	}
	config.Kafka.EventTopic = viper.GetString("KAFKA_EVENT_TOPIC")

	// --- Scheduler ---
	config.Scheduler.HealthCheckSchedule = viper.GetString("HEALTH_CHECK_SCHEDULE")

	config.Debug = viper.GetBool("DEBUG")

	log.Info().Str("port", config.Server.Port).Str("neo4jURI", config.Neo4j.URI).Bool("debug", config.Debug).Msg("Config loaded")
	return &config, nil
}

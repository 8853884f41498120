package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"time"

	"ordering/internal/adapters/messaging"
	"ordering/internal/pkg/errs"

	"github.com/joho/godotenv"
)

const (
	BrokerRabbitMQ = "rabbitmq"
	BrokerKafka    = "kafka"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	LogLevel   slog.Level

	MessageBroker      string
	RabbitMQURL        string
	RabbitMQExchange   string
	RabbitMQPrefetch   int
	KafkaBrokers       string
	KafkaConsumerGroup string
	KafkaRetryDelay    time.Duration
	KafkaMaxAttempts   int

	PaymentRequestTopic             string
	PaymentCancelRequestTopic       string
	RestaurantApprovalRequestTopic  string
	PaymentResponseTopic            string
	RestaurantApprovalResponseTopic string

	OutboxBatchSize            int
	OutboxRetention            time.Duration
	OutboxRelaySchedule        string
	OutboxCleanupSchedule      string
	ProcessedMessagesCacheSize int
}

// LoadConfig reads the environment after loading envFile into it. A missing
// envFile is not an error; variables already set win over the file.
func LoadConfig(envFile string) (Config, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", envFile, err)
	}

	var parseErrs []error
	intVar := func(key string, def int) int {
		v, err := intEnv(key, def)
		parseErrs = append(parseErrs, err)
		return v
	}

	cfg := Config{
		HTTPPort:   stringEnv("HTTP_PORT", "8080"),
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     stringEnv("DB_PORT", "5432"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBSslMode:  stringEnv("DB_SSLMODE", "disable"),

		MessageBroker:      stringEnv("MESSAGE_BROKER", BrokerRabbitMQ),
		RabbitMQURL:        os.Getenv("RABBITMQ_URL"),
		RabbitMQExchange:   stringEnv("RABBITMQ_EXCHANGE", "ordering"),
		RabbitMQPrefetch:   intVar("RABBITMQ_PREFETCH", 10),
		KafkaBrokers:       os.Getenv("KAFKA_BROKERS"),
		KafkaConsumerGroup: stringEnv("KAFKA_CONSUMER_GROUP", "order-service"),
		KafkaMaxAttempts:   intVar("KAFKA_MAX_ATTEMPTS", 10),

		PaymentRequestTopic:             stringEnv("PAYMENT_REQUEST_TOPIC", "payment-request"),
		PaymentCancelRequestTopic:       stringEnv("PAYMENT_CANCEL_REQUEST_TOPIC", "payment-cancel-request"),
		RestaurantApprovalRequestTopic:  stringEnv("RESTAURANT_APPROVAL_REQUEST_TOPIC", "restaurant-approval-request"),
		PaymentResponseTopic:            stringEnv("PAYMENT_RESPONSE_TOPIC", "payment-response"),
		RestaurantApprovalResponseTopic: stringEnv("RESTAURANT_APPROVAL_RESPONSE_TOPIC", "restaurant-approval-response"),

		OutboxBatchSize:            intVar("OUTBOX_BATCH_SIZE", 100),
		OutboxRelaySchedule:        stringEnv("OUTBOX_RELAY_SCHEDULE", "* * * * * *"),
		OutboxCleanupSchedule:      stringEnv("OUTBOX_CLEANUP_SCHEDULE", "0 0 * * * *"),
		ProcessedMessagesCacheSize: intVar("PROCESSED_MESSAGES_CACHE_SIZE", 10000),
	}

	durationVar := func(key, def string) time.Duration {
		d, err := time.ParseDuration(stringEnv(key, def))
		if err != nil {
			parseErrs = append(parseErrs, errs.NewValueIsInvalidErrorWithCause(key, err))
		}
		return d
	}
	cfg.OutboxRetention = durationVar("OUTBOX_RETENTION", "168h")
	cfg.KafkaRetryDelay = durationVar("KAFKA_RETRY_DELAY", "1s")

	if err := cfg.LogLevel.UnmarshalText([]byte(stringEnv("LOG_LEVEL", "info"))); err != nil {
		parseErrs = append(parseErrs, errs.NewValueIsInvalidErrorWithCause("LOG_LEVEL", err))
	}

	if err := errors.Join(append(parseErrs, cfg.Validate())...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var validationErrs []error
	require := func(key, value string) {
		if value == "" {
			validationErrs = append(validationErrs, errs.NewValueIsRequiredError(key))
		}
	}

	require("DB_HOST", c.DBHost)
	require("DB_USER", c.DBUser)
	require("DB_NAME", c.DBName)

	switch c.MessageBroker {
	case BrokerRabbitMQ:
		require("RABBITMQ_URL", c.RabbitMQURL)
	case BrokerKafka:
		require("KAFKA_BROKERS", c.KafkaBrokers)
	default:
		validationErrs = append(validationErrs, errs.NewValueIsInvalidErrorWithCause(
			"MESSAGE_BROKER", fmt.Errorf("%q is neither %s nor %s", c.MessageBroker, BrokerRabbitMQ, BrokerKafka)))
	}

	return errors.Join(validationErrs...)
}

func (c Config) DatabaseDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func (c Config) RequestTopics() messaging.Topics {
	return messaging.Topics{
		PaymentRequest:            c.PaymentRequestTopic,
		PaymentCancelRequest:      c.PaymentCancelRequestTopic,
		RestaurantApprovalRequest: c.RestaurantApprovalRequestTopic,
	}
}

func (c Config) ResponseTopics() messaging.ResponseTopics {
	return messaging.ResponseTopics{
		PaymentResponse:            c.PaymentResponseTopic,
		RestaurantApprovalResponse: c.RestaurantApprovalResponseTopic,
	}
}

func stringEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func intEnv(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return def, errs.NewValueIsInvalidErrorWithCause(key, err)
	}
	return n, nil
}

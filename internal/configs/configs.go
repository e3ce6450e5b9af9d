package configs

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v9"
)

type Config struct {
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8081"`

	// StoreBackend selects the tabular store: "postgres" or "memory".
	StoreBackend string `env:"STORE_BACKEND" envDefault:"postgres"`
	// SchemaVariant selects the ledger header: "freetext" or "fixed".
	SchemaVariant string `env:"SCHEMA_VARIANT" envDefault:"freetext"`
	// StrictAggregation serializes worklist merges through an in-process
	// mutex. Only meaningful for a single instance.
	StrictAggregation bool `env:"STRICT_AGGREGATION" envDefault:"false"`

	KafkaBrokers string `env:"KAFKA_BROKERS" envDefault:"localhost:9092"`
	KafkaTopic   string `env:"KAFKA_TOPIC" envDefault:"orders"`
	KafkaGroupID string `env:"KAFKA_GROUP_ID" envDefault:"order-intake"`
	KafkaDLQ     string `env:"KAFKA_DLQ" envDefault:"orders-dlq"`

	DatabaseURL     string `env:"DATABASE_URL" envDefault:""`
	PostgresHost    string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort    string `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser    string `env:"POSTGRES_USER" envDefault:"postgres"`
	PostgresPass    string `env:"POSTGRES_PASSWORD" envDefault:"postgres"`
	PostgresDB      string `env:"POSTGRES_DB" envDefault:"orders"`
	PostgresSSLMode string `env:"POSTGRES_SSLMODE" envDefault:"disable"`

	SMTPHost       string `env:"SMTP_HOST" envDefault:"localhost"`
	SMTPPort       int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser       string `env:"SMTP_USER" envDefault:""`
	SMTPPass       string `env:"SMTP_PASSWORD" envDefault:""`
	MailFrom       string `env:"MAIL_FROM" envDefault:"orders@gokhalebandhu.example"`
	AdminEmail     string `env:"ADMIN_EMAIL" envDefault:"ops@gokhalebandhu.example"`
	SupportContact string `env:"SUPPORT_CONTACT" envDefault:"+91 98800 00000"`

	BackupHour int    `env:"BACKUP_HOUR" envDefault:"2"`
	BackupDir  string `env:"BACKUP_DIR" envDefault:"backups"`

	SampleOrderPath string `env:"SAMPLE_ORDER_PATH" envDefault:"web/order.json"`
}

func LoadConfig() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("config parse: %w", err)
	}
	return c, nil
}

func (c Config) KafkaBrokersSlice() []string {
	parts := strings.Split(c.KafkaBrokers, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (c Config) PgDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.PostgresUser,
		c.PostgresPass,
		c.PostgresHost,
		c.PostgresPort,
		c.PostgresDB,
		c.PostgresSSLMode,
	)
}

package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"faral-orders/internal/aggregate"
	"faral-orders/internal/backup"
	"faral-orders/internal/configs"
	httpdelivery "faral-orders/internal/delivery/http"
	"faral-orders/internal/delivery/kafka"
	"faral-orders/internal/ledger"
	"faral-orders/internal/notify"
	"faral-orders/internal/schema"
	"faral-orders/internal/service"
	"faral-orders/internal/tablestore"
	"faral-orders/internal/tablestore/memory"
	"faral-orders/internal/tablestore/postgres"
)

func main() {
	_ = godotenv.Load()
	cfg, err := configs.LoadConfig()
	if err != nil {
		logrus.Fatalf("config load: %s", err)
	}
	logrus.Print("config parsed")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var store tablestore.Store
	switch cfg.StoreBackend {
	case "memory":
		store = memory.NewStore()
		logrus.Print("using in-memory table store")
	default:
		db, err := postgres.ConnectDB(postgres.Config{
			Host:     cfg.PostgresHost,
			Port:     cfg.PostgresPort,
			Username: cfg.PostgresUser,
			Password: cfg.PostgresPass,
			DbName:   cfg.PostgresDB,
			SslMode:  cfg.PostgresSSLMode,
		})
		if err != nil {
			logrus.Fatalf("postgres connect: %s", err)
		}
		defer func() {
			if derr := db.Close(); derr != nil {
				logrus.Errorf("db close: %v", derr)
			}
		}()
		if err := postgres.Migrate(db); err != nil {
			logrus.Fatalf("postgres migrate: %s", err)
		}
		store = postgres.NewStore(db)
		logrus.Print("connected to postgres")
	}

	desc, err := schema.ForVariant(schema.Variant(cfg.SchemaVariant))
	if err != nil {
		logrus.Fatalf("schema variant: %s", err)
	}

	var strat aggregate.Strategy
	if cfg.StrictAggregation {
		strat = &aggregate.Locked{}
	}

	mailer := notify.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom)
	dispatcher := notify.NewDispatcher(mailer, cfg.AdminEmail, cfg.SupportContact)

	svc := service.NewService(
		ledger.NewWriter(store, desc),
		aggregate.NewEngine(store, strat),
		dispatcher,
	)

	job := backup.NewJob(store, backup.NewDirArchiver(cfg.BackupDir))
	if err := job.Start(cfg.BackupHour); err != nil {
		logrus.Fatalf("backup schedule: %s", err)
	}
	defer job.Stop()
	logrus.Printf("daily backup scheduled at %02d:00", cfg.BackupHour)

	consumer := kafka.NewConsumer(kafka.Config{
		Brokers: cfg.KafkaBrokersSlice(),
		GroupID: cfg.KafkaGroupID,
		Topic:   cfg.KafkaTopic,
		DLQ:     cfg.KafkaDLQ,
	}, svc)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := consumer.Subscribe(ctx); err != nil {
			logrus.Errorf("consumer stopped: %v", err)
			cancel()
		}
	}()
	logrus.Print("kafka subscription started")

	h := httpdelivery.NewHandler(svc)
	srv := new(httpdelivery.Server)

	go func() {
		if err := srv.Run(cfg.HTTPAddr, h.InitRoutes()); err != nil {
			logrus.Errorf("http run: %v", err)
			cancel()
		}
	}()
	logrus.Printf("http server started on %s", cfg.HTTPAddr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	select {
	case <-quit:
		logrus.Print("shutdown signal received")
	case <-ctx.Done():
		logrus.Print("context canceled, shutting down")
	}

	if err := srv.Shutdown(context.Background()); err != nil {
		logrus.Errorf("http shutdown: %s", err)
	}

	if err := consumer.Close(); err != nil {
		logrus.Errorf("consumer close: %s", err)
	}

	wg.Wait()
	logrus.Print("service stopped")
}

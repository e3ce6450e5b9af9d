package main

import (
	"context"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"faral-orders/internal/configs"
	"faral-orders/internal/delivery/kafka"
)

func main() {
	_ = godotenv.Load()

	cfg, err := configs.LoadConfig()
	if err != nil {
		logrus.Fatalf("error loading config: %s", err)
	}
	logrus.Print("config loaded")

	pub, err := kafka.NewPublisher(cfg.KafkaBrokersSlice(), cfg.KafkaTopic)
	if err != nil {
		logrus.Fatalf("kafka publisher connect error: %s", err)
	}
	defer func() {
		if cerr := pub.Close(); cerr != nil {
			logrus.Errorf("publisher close: %v", cerr)
		}
	}()
	logrus.Print("connected to kafka")

	f, err := os.Open(cfg.SampleOrderPath)
	if err != nil {
		logrus.Fatalf("open order file: %s", err)
	}
	defer f.Close()

	body, err := io.ReadAll(f)
	if err != nil {
		logrus.Fatalf("read order file: %s", err)
	}

	if err := pub.Publish(context.Background(), body); err != nil {
		logrus.Fatalf("publish failed: %s", err)
	}
	logrus.Print("successfully published sample order JSON to kafka")
}

// Package backup duplicates a point-in-time snapshot of every table into
// cold storage on a daily schedule. It never blocks and is never blocked
// by order intake; a failed run is logged and the next one simply runs.
package backup

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"faral-orders/internal/tablestore"
)

// Archiver receives one named snapshot of every table.
type Archiver interface {
	Archive(name string, tables []tablestore.Table) error
}

type Job struct {
	store tablestore.Store
	arch  Archiver
	cron  *cron.Cron
	now   func() time.Time
}

func NewJob(store tablestore.Store, arch Archiver) *Job {
	return &Job{store: store, arch: arch, now: time.Now}
}

// Start schedules the daily run at the given hour. The schedule is fully
// decoupled from request handling.
func (j *Job) Start(hour int) error {
	if hour < 0 || hour > 23 {
		return fmt.Errorf("backup hour %d out of range", hour)
	}
	j.cron = cron.New()
	_, err := j.cron.AddFunc(fmt.Sprintf("0 %d * * *", hour), func() {
		if err := j.RunOnce(context.Background()); err != nil {
			logrus.WithError(err).Error("scheduled backup failed")
		}
	})
	if err != nil {
		return fmt.Errorf("schedule backup: %w", err)
	}
	j.cron.Start()
	return nil
}

func (j *Job) Stop() {
	if j.cron != nil {
		j.cron.Stop()
	}
}

// RunOnce snapshots every table and hands the snapshot to the archiver.
func (j *Job) RunOnce(ctx context.Context) error {
	tables, err := j.store.Tables(ctx)
	if err != nil {
		return fmt.Errorf("snapshot tables: %w", err)
	}
	name := "orders-backup-" + j.now().UTC().Format("20060102-150405")
	if err := j.arch.Archive(name, tables); err != nil {
		return fmt.Errorf("archive %s: %w", name, err)
	}
	logrus.WithFields(logrus.Fields{"name": name, "tables": len(tables)}).Info("backup archived")
	return nil
}

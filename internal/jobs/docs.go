// Package jobs provides scheduled background tasks built on
// github.com/robfig/cron/v3.
//
// # Available Jobs
//
// PaymentExpiryJob runs on a configurable cron schedule (every five minutes
// by default) and marks online payments still pending after the expiry
// window as failed. The update only touches rows whose payment status is
// still pending, so a confirmation that arrived in between is never
// overwritten; a confirmation that arrives later still marks the order paid.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(
//		jobs.NewPaymentExpiryJob(expireHandler, settings, logger),
//	)
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// Overlapping runs are skipped. A failed start stops the jobs already running.
package jobs

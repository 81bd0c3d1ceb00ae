// Package jobs provides scheduled background tasks for the livestock service.
//
// Jobs are cron-based (github.com/robfig/cron/v3) and never change state on
// their own: they read through query handlers and report.
//
// # Available Jobs
//
// StaleTransferJob runs on STALE_TRANSFER_SCHEDULE (default every ten
// minutes) and warns about transfers that have been IN_TRANSIT for longer than
// STALE_TRANSFER_AFTER. The count of the last check is exported as the
// livestock_stale_transfers gauge.
//
// # Usage
//
//	jobManager, err := jobs.NewJobManager(staleHandler, schedule, staleAfter, registry, logger)
//	if err != nil {
//		return err
//	}
//	if err = jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
package jobs

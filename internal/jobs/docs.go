// Package jobs provides scheduled infrastructure tasks for shopfloor.
//
// Workflows are never advanced in the background; every state change is a
// request. The only job is CacheJanitorJob, which reclaims expired entries
// of the in-memory ERP/RFID lookup cache using github.com/robfig/cron/v3.
//
//	janitor := jobs.NewCacheJanitorJob(memoryStore, "0 * * * * *", logger)
//	jobManager := jobs.NewJobManager(janitor)
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
package jobs

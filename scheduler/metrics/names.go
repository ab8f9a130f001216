package metrics

// Instrument names the Scheduler emits. Kept as constants so a Provider
// implementation (e.g. a Prometheus-backed one in application code) can
// register them up front instead of discovering them on first use.
const (
	JobsQueued     = "scheduler_jobs_queued"
	JobsRunning    = "scheduler_jobs_running"
	DelayedPending = "scheduler_delayed_pending"
	JobDuration    = "scheduler_job_duration_seconds"
)

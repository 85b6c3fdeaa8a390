package query

import "github.com/talkincode/toughpos/internal/domain"

// JobsReceivedOn tickets opened on date (yyyy-mm-dd); empty date keeps all
func JobsReceivedOn(jobs []domain.MaintenanceJob, date string) []domain.MaintenanceJob {
	if date == "" {
		return jobs
	}
	var out []domain.MaintenanceJob
	for _, j := range jobs {
		if j.DateReceived == date {
			out = append(out, j)
		}
	}
	return out
}

// ActiveJobs tickets still being worked on
func ActiveJobs(jobs []domain.MaintenanceJob) []domain.MaintenanceJob {
	var out []domain.MaintenanceJob
	for _, j := range jobs {
		if !j.Status.IsCompletion() {
			out = append(out, j)
		}
	}
	return out
}

// CompletedJobs tickets that are done or waiting for pickup
func CompletedJobs(jobs []domain.MaintenanceJob) []domain.MaintenanceJob {
	var out []domain.MaintenanceJob
	for _, j := range jobs {
		if j.Status.IsCompletion() {
			out = append(out, j)
		}
	}
	return out
}

// JobsByStatus groups tickets; every known status has an entry
func JobsByStatus(jobs []domain.MaintenanceJob) map[domain.JobStatus][]domain.MaintenanceJob {
	out := make(map[domain.JobStatus][]domain.MaintenanceJob, len(domain.JobStatuses))
	for _, s := range domain.JobStatuses {
		out[s] = []domain.MaintenanceJob{}
	}
	for _, j := range jobs {
		out[j.Status] = append(out[j.Status], j)
	}
	return out
}

package store

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/talkincode/toughpos/internal/domain"
	"github.com/talkincode/toughpos/internal/storage"
	"go.uber.org/zap"
)

// MaintenanceJobs returns the tickets, newest first
func (s *Store) MaintenanceJobs() []domain.MaintenanceJob {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.MaintenanceJob{}, s.jobs...)
}

// MaintenanceJob looks a ticket up by id
func (s *Store) MaintenanceJob(id string) (domain.MaintenanceJob, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.jobIndex(id); i >= 0 {
		return s.jobs[i], true
	}
	return domain.MaintenanceJob{}, false
}

func (s *Store) jobIndex(id string) int {
	for i := range s.jobs {
		if s.jobs[i].ID == id {
			return i
		}
	}
	return -1
}

// AddJob opens a ticket in the Received state
func (s *Store) AddJob(in domain.JobInput) (domain.MaintenanceJob, error) {
	if err := in.Validate(); err != nil {
		return domain.MaintenanceJob{}, err
	}
	job := domain.MaintenanceJob{
		ID:               s.ids.Next(domain.JobIDPrefix),
		CustomerName:     strings.TrimSpace(in.CustomerName),
		ProductName:      strings.TrimSpace(in.ProductName),
		IssueDescription: strings.TrimSpace(in.IssueDescription),
		Notes:            strings.TrimSpace(in.Notes),
		Status:           domain.JobReceived,
		DateReceived:     s.today(),
		Cost:             decimal.Zero,
	}

	s.mu.Lock()
	s.jobs = append([]domain.MaintenanceJob{job}, s.jobs...)
	s.persist(storage.KeyMaintenanceJobs, s.jobs)
	s.mu.Unlock()

	zap.L().Info("maintenance job opened", zap.String("id", job.ID), zap.String("customer", job.CustomerName))
	return job, nil
}

// UpdateJob applies patch. The first move into Completed or Awaiting
// Collection stamps today's completion date; later changes never touch it.
func (s *Store) UpdateJob(id string, patch domain.JobPatch) (domain.MaintenanceJob, error) {
	if err := patch.Validate(); err != nil {
		return domain.MaintenanceJob{}, err
	}

	s.mu.Lock()
	i := s.jobIndex(id)
	if i < 0 {
		s.mu.Unlock()
		return domain.MaintenanceJob{}, errors.Wrapf(domain.ErrNotFound, "maintenance job %s", id)
	}
	before := s.jobs[i]
	updated := patch.Apply(before, s.today())
	s.jobs[i] = updated
	s.persist(storage.KeyMaintenanceJobs, s.jobs)
	s.mu.Unlock()

	if before.Status != updated.Status {
		zap.L().Info("maintenance job status changed",
			zap.String("id", id),
			zap.String("from", string(before.Status)),
			zap.String("to", string(updated.Status)))
	}
	if before.CompletionDate == "" && updated.CompletionDate != "" {
		s.publish(TopicJobCompleted, updated)
	}
	return updated, nil
}

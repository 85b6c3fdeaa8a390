package domain

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// JobStatus lifecycle state of a maintenance ticket
type JobStatus string

const (
	JobReceived           JobStatus = "Received"
	JobInProgress         JobStatus = "In Progress"
	JobCompleted          JobStatus = "Completed"
	JobAwaitingCollection JobStatus = "Awaiting Collection"
)

// JobStatuses in workflow order
var JobStatuses = []JobStatus{JobReceived, JobInProgress, JobCompleted, JobAwaitingCollection}

// Valid reports whether s is a known status
func (s JobStatus) Valid() bool {
	for _, v := range JobStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// IsCompletion reports whether entering s marks the repair as done
func (s JobStatus) IsCompletion() bool {
	return s == JobCompleted || s == JobAwaitingCollection
}

// MaintenanceJob a repair ticket
type MaintenanceJob struct {
	ID               string          `json:"id"`
	CustomerName     string          `json:"customer_name"`
	ProductName      string          `json:"product_name"`
	IssueDescription string          `json:"issue_description"`
	Notes            string          `json:"notes,omitempty"`
	Status           JobStatus       `json:"status"`
	DateReceived     string          `json:"date_received"` // yyyy-mm-dd
	Cost             decimal.Decimal `json:"cost"`
	CompletionDate   string          `json:"completion_date,omitempty"` // stamped once, never overwritten
}

// JobInput fields supplied when a ticket is opened
type JobInput struct {
	CustomerName     string `json:"customer_name"`
	ProductName      string `json:"product_name"`
	IssueDescription string `json:"issue_description"`
	Notes            string `json:"notes"`
}

// Validate checks required fields
func (in JobInput) Validate() error {
	switch {
	case strings.TrimSpace(in.CustomerName) == "":
		return errors.Wrap(ErrFieldRequired, "customer_name")
	case strings.TrimSpace(in.ProductName) == "":
		return errors.Wrap(ErrFieldRequired, "product_name")
	case strings.TrimSpace(in.IssueDescription) == "":
		return errors.Wrap(ErrFieldRequired, "issue_description")
	}
	return nil
}

// JobPatch partial ticket update. The completion date is not patchable.
type JobPatch struct {
	CustomerName     *string          `json:"customer_name"`
	ProductName      *string          `json:"product_name"`
	IssueDescription *string          `json:"issue_description"`
	Notes            *string          `json:"notes"`
	Status           *JobStatus       `json:"status"`
	Cost             *decimal.Decimal `json:"cost"`
}

// Validate checks the values the patch would write
func (jp JobPatch) Validate() error {
	if jp.Status != nil && !jp.Status.Valid() {
		return errors.Wrapf(ErrInvalidJobStatus, "%q", *jp.Status)
	}
	if jp.Cost != nil && jp.Cost.IsNegative() {
		return ErrNegativeAmount
	}
	for field, v := range map[string]*string{
		"customer_name":     jp.CustomerName,
		"product_name":      jp.ProductName,
		"issue_description": jp.IssueDescription,
	} {
		if v != nil && strings.TrimSpace(*v) == "" {
			return errors.Wrap(ErrFieldRequired, field)
		}
	}
	return nil
}

// Apply merges the patch into job. today is stamped as completion date when
// the patch moves the job into a completion status for the first time.
func (jp JobPatch) Apply(job MaintenanceJob, today string) MaintenanceJob {
	if jp.CustomerName != nil {
		job.CustomerName = strings.TrimSpace(*jp.CustomerName)
	}
	if jp.ProductName != nil {
		job.ProductName = strings.TrimSpace(*jp.ProductName)
	}
	if jp.IssueDescription != nil {
		job.IssueDescription = strings.TrimSpace(*jp.IssueDescription)
	}
	if jp.Notes != nil {
		job.Notes = strings.TrimSpace(*jp.Notes)
	}
	if jp.Cost != nil {
		job.Cost = *jp.Cost
	}
	if jp.Status != nil {
		job.Status = *jp.Status
		if jp.Status.IsCompletion() && job.CompletionDate == "" {
			job.CompletionDate = today
		}
	}
	return job
}

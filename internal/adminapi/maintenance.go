package adminapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/talkincode/toughpos/internal/domain"
	"github.com/talkincode/toughpos/internal/query"
	"github.com/talkincode/toughpos/internal/webserver"
)

type jobPayload struct {
	CustomerName     string `json:"customer_name" validate:"required,min=1,max=200"`
	ProductName      string `json:"product_name" validate:"required,min=1,max=200"`
	IssueDescription string `json:"issue_description" validate:"required,min=1,max=2000"`
	Notes            string `json:"notes" validate:"omitempty,max=2000"`
}

type jobUpdatePayload struct {
	CustomerName     *string          `json:"customer_name" validate:"omitempty,min=1,max=200"`
	ProductName      *string          `json:"product_name" validate:"omitempty,min=1,max=200"`
	IssueDescription *string          `json:"issue_description" validate:"omitempty,min=1,max=2000"`
	Notes            *string          `json:"notes" validate:"omitempty,max=2000"`
	Status           *string          `json:"status"`
	Cost             *decimal.Decimal `json:"cost"`
}

func registerMaintenanceRoutes() {
	webserver.ApiGET("/maintenance", listJobs)
	webserver.ApiGET("/maintenance/summary", jobsSummary)
	webserver.ApiGET("/maintenance/:id", getJob)
	webserver.ApiPOST("/maintenance", createJob)
	webserver.ApiPUT("/maintenance/:id", updateJob)
}

// listJobs filters by date_received and by state: active or completed
func listJobs(c echo.Context) error {
	page, pageSize := parsePagination(c)
	jobs := query.JobsReceivedOn(GetStore(c).MaintenanceJobs(), strings.TrimSpace(c.QueryParam("date")))
	switch c.QueryParam("state") {
	case "active":
		jobs = query.ActiveJobs(jobs)
	case "completed":
		jobs = query.CompletedJobs(jobs)
	}
	if jobs == nil {
		jobs = []domain.MaintenanceJob{}
	}
	return paged(c, pageOf(jobs, page, pageSize), int64(len(jobs)), page, pageSize)
}

func jobsSummary(c echo.Context) error {
	counts := make(map[domain.JobStatus]int)
	for status, jobs := range query.JobsByStatus(GetStore(c).MaintenanceJobs()) {
		counts[status] = len(jobs)
	}
	return ok(c, counts)
}

func getJob(c echo.Context) error {
	job, found := GetStore(c).MaintenanceJob(c.Param("id"))
	if !found {
		return fail(c, http.StatusNotFound, "JOB_NOT_FOUND", "Maintenance job not found", nil)
	}
	return ok(c, job)
}

func createJob(c echo.Context) error {
	var payload jobPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse job parameters", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}
	job, err := GetStore(c).AddJob(domain.JobInput{
		CustomerName:     payload.CustomerName,
		ProductName:      payload.ProductName,
		IssueDescription: payload.IssueDescription,
		Notes:            payload.Notes,
	})
	if err != nil {
		return storeError(c, err, "Maintenance job")
	}
	return created(c, job)
}

func updateJob(c echo.Context) error {
	var payload jobUpdatePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse job parameters", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}
	patch := domain.JobPatch{
		CustomerName:     payload.CustomerName,
		ProductName:      payload.ProductName,
		IssueDescription: payload.IssueDescription,
		Notes:            payload.Notes,
		Cost:             payload.Cost,
	}
	if payload.Status != nil {
		status := domain.JobStatus(*payload.Status)
		patch.Status = &status
	}
	job, err := GetStore(c).UpdateJob(c.Param("id"), patch)
	if err != nil {
		return storeError(c, err, "Maintenance job")
	}
	return ok(c, job)
}

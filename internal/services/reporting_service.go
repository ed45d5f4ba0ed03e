package services

import (
	"context"

	"momentum/internal/domain"
	"momentum/internal/errors"
	"momentum/internal/repository"
)

// MaxTopTemplates bounds TopTemplates.
const MaxTopTemplates = 50

type reportingServiceImpl struct {
	base
}

// NewReportingService creates a new ReportingService instance
func NewReportingService(deps Dependencies) ReportingService {
	return &reportingServiceImpl{base: newBase(deps, "reporting")}
}

// Contributions counts completed activities per UTC day over the window
// ending today.
func (r *reportingServiceImpl) Contributions(ctx context.Context, userID string) (*Contributions, error) {
	completed := true
	rows, err := r.store.ListOwnedActivities(ctx, userID, repository.ActivityFilter{Completed: &completed})
	if err != nil {
		return nil, r.fail("contributions", err)
	}

	window := domain.ContributionWindowFor(r.now())
	counts := domain.BuildContributionMap(r.mapper.Activity.FromRepositorySlice(rows), window)
	return &Contributions{
		Window: window,
		Counts: counts,
		Max:    counts.Max(),
		Total:  counts.Total(),
	}, nil
}

// TopTemplates returns up to limit source activities ranked by clone count
func (r *reportingServiceImpl) TopTemplates(ctx context.Context, userID string, limit int) ([]TemplateUsage, error) {
	if limit <= 0 || limit > MaxTopTemplates {
		return nil, r.fail("top templates", errors.NewInvalidInputError("limit", limit, "must be between 1 and 50"))
	}

	rows, err := r.store.TopSourceActivities(ctx, userID, limit)
	if err != nil {
		return nil, r.fail("top templates", err)
	}

	usages := make([]TemplateUsage, len(rows))
	for i, row := range rows {
		usages[i] = TemplateUsage{
			Activity: r.mapper.Activity.FromRepository(row.Activity),
			Clones:   row.Clones,
		}
	}
	return usages, nil
}

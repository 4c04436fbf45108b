package service

import (
	"railcare/models"
	"railcare/repository"
)

// ReportService assembles the point-in-time dashboard aggregate. Pure
// read-only projections; every call recomputes from scratch.
type ReportService struct {
	repo *repository.ReportRepository
}

// NewReportService creates a new report service
func NewReportService(repo *repository.ReportRepository) *ReportService {
	return &ReportService{repo: repo}
}

// Summary runs all dashboard projections and returns them in one response.
func (s *ReportService) Summary() (*models.ReportSummary, error) {
	total, err := s.repo.CountTotal()
	if err != nil {
		return nil, err
	}

	byStatus, err := s.repo.CountByStatus()
	if err != nil {
		return nil, err
	}

	byDepartment, err := s.repo.CountByDepartment()
	if err != nil {
		return nil, err
	}

	byType, err := s.repo.CountByType()
	if err != nil {
		return nil, err
	}

	last7, err := s.repo.CountCreatedSince(7)
	if err != nil {
		return nil, err
	}

	last30, err := s.repo.CountCreatedSince(30)
	if err != nil {
		return nil, err
	}

	avgHours, err := s.repo.AvgResolutionHours()
	if err != nil {
		return nil, err
	}

	ratings, err := s.repo.RatingDistribution()
	if err != nil {
		return nil, err
	}

	return &models.ReportSummary{
		Total:              total,
		ByStatus:           byStatus,
		ByDepartment:       byDepartment,
		ByType:             byType,
		Last7Days:          last7,
		Last30Days:         last30,
		AvgResolutionHours: avgHours,
		RatingDistribution: ratings,
	}, nil
}

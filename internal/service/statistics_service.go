package service

import (
	"context"

	"backend/internal/model"
	"backend/internal/repository"
	"backend/pkg/apperror"
)

type StatisticsService interface {
	DashboardStats(ctx context.Context) (*model.DashboardStats, error)
}

type statisticsService struct {
	assetRepo    repository.AssetRepository
	employeeRepo repository.EmployeeRepository
}

func NewStatisticsService(
	assetRepo repository.AssetRepository,
	employeeRepo repository.EmployeeRepository,
) StatisticsService {
	return &statisticsService{
		assetRepo:    assetRepo,
		employeeRepo: employeeRepo,
	}
}

func (s *statisticsService) DashboardStats(ctx context.Context) (*model.DashboardStats, error) {
	byStatus, err := s.assetRepo.CountByStatus(ctx)
	if err != nil {
		return nil, apperror.Persistence(err, "failed to count assets by status")
	}

	byType, err := s.assetRepo.CountByType(ctx)
	if err != nil {
		return nil, apperror.Persistence(err, "failed to count assets by type")
	}

	employees, err := s.employeeRepo.Count(ctx)
	if err != nil {
		return nil, apperror.Persistence(err, "failed to count employees")
	}

	totalCost, err := s.assetRepo.SumPurchaseCost(ctx)
	if err != nil {
		return nil, apperror.Persistence(err, "failed to sum purchase cost")
	}

	stats := &model.DashboardStats{
		TotalEmployees:    employees,
		TotalPurchaseCost: totalCost.StringFixed(2),
		AssetsByType:      byType,
	}
	for status, count := range byStatus {
		stats.TotalAssets += count
		stats.AssetsByStatus = append(stats.AssetsByStatus, model.StatusCount{Status: status, Count: count})
	}
	stats.AllocatedAssets = byStatus[model.AssetAllocated]
	stats.AvailableAssets = byStatus[model.AssetAvailable]

	return stats, nil
}

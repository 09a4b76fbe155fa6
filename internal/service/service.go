package service

import (
	"stockdash/config"
	"stockdash/internal/repository"
	"stockdash/pkg/logger"
)

type Service struct {
	DashboardService DashboardService
}

func NewService(cfg *config.Config, log *logger.Logger, repo *repository.Repository) *Service {
	return &Service{
		DashboardService: NewDashboardService(cfg, log, repo),
	}
}

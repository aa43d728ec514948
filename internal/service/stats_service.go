package service

import (
	"context"

	"personalblog/internal/models"
	"personalblog/internal/repository"
)

type Health struct {
	Status   string         `json:"status"`
	Database string         `json:"database"`
	Counts   *models.Counts `json:"counts,omitempty"`
}

type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

type StatsService interface {
	Health(ctx context.Context) (*Health, error)
}

type statsService struct {
	statsRepo repository.StatsRepository
	db        HealthChecker
}

func NewStatsService(statsRepo repository.StatsRepository, db HealthChecker) StatsService {
	return &statsService{statsRepo: statsRepo, db: db}
}

// Health pings the database and reports row counts. A failed ping is
// reported in the result together with the error.
func (s *statsService) Health(ctx context.Context) (*Health, error) {
	if err := s.db.HealthCheck(ctx); err != nil {
		return &Health{Status: "unavailable", Database: "down"}, err
	}

	counts, err := s.statsRepo.Counts(ctx)
	if err != nil {
		return &Health{Status: "degraded", Database: "up"}, err
	}

	return &Health{Status: "ok", Database: "up", Counts: counts}, nil
}

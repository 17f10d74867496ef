package services

import (
	"alfredoptarigan/hirematch/internal/models"
	"alfredoptarigan/hirematch/internal/repositories"
)

// AnalyticsService aggregates per-client and system-wide counters for the
// admin dashboard.
type AnalyticsService interface {
	ClientStatistics(clientID string) (*models.ClientStats, error)
	AllClientsSummary() ([]models.ClientStats, error)
	SystemOverview() (*models.SystemOverview, error)
}

type analyticsService struct {
	userRepo      repositories.UserRepository
	clientRepo    repositories.ClientRepository
	tokenRepo     repositories.TokenRepository
	jobRepo       repositories.JobRepository
	cvRepo        repositories.CVRepository
	shortlistRepo repositories.ShortlistRepository
}

func NewAnalyticsService(
	userRepo repositories.UserRepository,
	clientRepo repositories.ClientRepository,
	tokenRepo repositories.TokenRepository,
	jobRepo repositories.JobRepository,
	cvRepo repositories.CVRepository,
	shortlistRepo repositories.ShortlistRepository,
) AnalyticsService {
	return &analyticsService{
		userRepo:      userRepo,
		clientRepo:    clientRepo,
		tokenRepo:     tokenRepo,
		jobRepo:       jobRepo,
		cvRepo:        cvRepo,
		shortlistRepo: shortlistRepo,
	}
}

// ClientStatistics implements AnalyticsService.
func (s *analyticsService) ClientStatistics(clientID string) (*models.ClientStats, error) {
	client, err := s.clientRepo.FindByClientID(clientID)
	if err != nil {
		return nil, err
	}

	totalCVs, err := s.cvRepo.CountByOwner(clientID)
	if err != nil {
		return nil, err
	}

	totalJobs, err := s.jobRepo.CountByOwner(clientID)
	if err != nil {
		return nil, err
	}

	totalShortlists, err := s.shortlistRepo.CountByOwner(clientID)
	if err != nil {
		return nil, err
	}

	return &models.ClientStats{
		ClientID:        client.ClientID,
		ClientName:      client.Name,
		TotalCVs:        totalCVs,
		TotalJobs:       totalJobs,
		TotalShortlists: totalShortlists,
		IsActive:        client.IsActive,
	}, nil
}

// AllClientsSummary implements AnalyticsService.
func (s *analyticsService) AllClientsSummary() ([]models.ClientStats, error) {
	clients, err := s.clientRepo.FindAll()
	if err != nil {
		return nil, err
	}

	summaries := make([]models.ClientStats, 0, len(clients))
	for _, client := range clients {
		stats, err := s.ClientStatistics(client.ClientID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, *stats)
	}

	return summaries, nil
}

// SystemOverview implements AnalyticsService.
func (s *analyticsService) SystemOverview() (*models.SystemOverview, error) {
	totalClients, err := s.clientRepo.Count()
	if err != nil {
		return nil, err
	}

	activeClients, err := s.clientRepo.CountActive()
	if err != nil {
		return nil, err
	}

	activeTokens, err := s.tokenRepo.CountActive()
	if err != nil {
		return nil, err
	}

	totalUsers, err := s.userRepo.Count()
	if err != nil {
		return nil, err
	}

	totalCVs, err := s.cvRepo.Count()
	if err != nil {
		return nil, err
	}

	totalJobs, err := s.jobRepo.Count()
	if err != nil {
		return nil, err
	}

	totalShortlists, err := s.shortlistRepo.Count()
	if err != nil {
		return nil, err
	}

	return &models.SystemOverview{
		TotalClients:    totalClients,
		ActiveClients:   activeClients,
		ActiveTokens:    activeTokens,
		TotalUsers:      totalUsers,
		TotalCVs:        totalCVs,
		TotalJobs:       totalJobs,
		TotalShortlists: totalShortlists,
		SystemStatus:    "operational",
	}, nil
}

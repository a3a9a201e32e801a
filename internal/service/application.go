package service

import (
	"context"

	"github.com/moverq1337/hr-core/internal/models"
	"github.com/moverq1337/hr-core/internal/storage"
)

// JobApplicationService — отклики кандидатов на вакансии.
type JobApplicationService struct {
	store *storage.Store
}

func NewJobApplicationService(store *storage.Store) *JobApplicationService {
	return &JobApplicationService{store: store}
}

func (s *JobApplicationService) Create(ctx context.Context, a *models.JobApplication) (*models.JobApplication, error) {
	log.WithFields(map[string]any{"resume_id": a.ResumeID, "vacancy_id": a.VacancyID}).
		Info("Создание нового отклика")
	if _, err := s.store.GetResume(ctx, a.ResumeID); err != nil {
		return nil, err
	}
	if _, err := s.store.GetVacancy(ctx, a.VacancyID); err != nil {
		return nil, err
	}
	if a.Status == "" {
		a.Status = "new"
	}
	if err := s.store.CreateApplication(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *JobApplicationService) Get(ctx context.Context, id int) (*models.JobApplication, error) {
	return s.store.GetApplication(ctx, id)
}

func (s *JobApplicationService) List(ctx context.Context) ([]models.JobApplication, error) {
	return s.store.ListApplications(ctx)
}

func (s *JobApplicationService) Update(ctx context.Context, id int, a *models.JobApplication) (*models.JobApplication, error) {
	existing, err := s.store.GetApplication(ctx, id)
	if err != nil {
		return nil, err
	}
	existing.Status = a.Status
	existing.MatchScore = a.MatchScore
	if err := s.store.SaveApplication(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *JobApplicationService) Delete(ctx context.Context, id int) error {
	return s.store.DeleteApplication(ctx, id)
}

// OfferService — офферы по откликам.
type OfferService struct {
	store *storage.Store
}

func NewOfferService(store *storage.Store) *OfferService {
	return &OfferService{store: store}
}

func (s *OfferService) Create(ctx context.Context, o *models.Offer) (*models.Offer, error) {
	log.WithField("application_id", o.ApplicationID).Info("Создание нового оффера")
	if _, err := s.store.GetApplication(ctx, o.ApplicationID); err != nil {
		return nil, err
	}
	if err := s.store.CreateOffer(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *OfferService) Get(ctx context.Context, id int) (*models.Offer, error) {
	return s.store.GetOffer(ctx, id)
}

func (s *OfferService) List(ctx context.Context) ([]models.Offer, error) {
	return s.store.ListOffers(ctx)
}

func (s *OfferService) Update(ctx context.Context, id int, o *models.Offer) (*models.Offer, error) {
	existing, err := s.store.GetOffer(ctx, id)
	if err != nil {
		return nil, err
	}
	existing.OfferText = o.OfferText
	existing.PDFFilePath = o.PDFFilePath
	if err := s.store.SaveOffer(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *OfferService) Delete(ctx context.Context, id int) error {
	return s.store.DeleteOffer(ctx, id)
}

package service

import (
	"context"

	"github.com/moverq1337/hr-core/internal/models"
	"github.com/moverq1337/hr-core/internal/storage"
)

// CandidateStatusService — справочник статусов пайплайна.
type CandidateStatusService struct {
	store *storage.Store
}

func NewCandidateStatusService(store *storage.Store) *CandidateStatusService {
	return &CandidateStatusService{store: store}
}

func (s *CandidateStatusService) List(ctx context.Context) ([]models.CandidateStatus, error) {
	return s.store.ListStatuses(ctx)
}

func (s *CandidateStatusService) Get(ctx context.Context, id int) (*models.CandidateStatus, error) {
	return s.store.GetStatus(ctx, id)
}

func (s *CandidateStatusService) Create(ctx context.Context, st *models.CandidateStatus) (*models.CandidateStatus, error) {
	if err := s.store.CreateStatus(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *CandidateStatusService) Update(ctx context.Context, id int, st *models.CandidateStatus) (*models.CandidateStatus, error) {
	existing, err := s.store.GetStatus(ctx, id)
	if err != nil {
		return nil, err
	}
	existing.Title = st.Title
	existing.Description = st.Description
	if err := s.store.SaveStatus(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *CandidateStatusService) Delete(ctx context.Context, id int) error {
	return s.store.DeleteStatus(ctx, id)
}

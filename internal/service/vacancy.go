package service

import (
	"context"

	"github.com/moverq1337/hr-core/internal/clients"
	"github.com/moverq1337/hr-core/internal/models"
	"github.com/moverq1337/hr-core/internal/storage"
)

// Статус вакансии по умолчанию для спарсенных и сгенерированных записей.
const vacancyStatusActive = "Активная"

// VacancyService — CRUD по вакансиям плюс пассивные коллабораторы:
// парсинг с внешних источников и AI-генерация.
type VacancyService struct {
	store     *storage.Store
	parser    VacancyParser
	generator VacancyGenerator
}

func NewVacancyService(store *storage.Store, parser VacancyParser, generator VacancyGenerator) *VacancyService {
	return &VacancyService{store: store, parser: parser, generator: generator}
}

func (s *VacancyService) Create(ctx context.Context, dto *VacancyDto, user *models.User) (*VacancyDto, error) {
	log.WithFields(map[string]any{"title": dto.Title, "user": user.Username}).
		Info("Создание новой вакансии")
	vacancy := &models.Vacancy{UserID: user.ID}
	if err := applyVacancyDto(vacancy, dto); err != nil {
		return nil, err
	}
	if err := s.store.CreateVacancy(ctx, vacancy); err != nil {
		return nil, err
	}
	log.WithField("id", vacancy.ID).Info("Вакансия успешно создана")
	return vacancyToDto(vacancy)
}

func (s *VacancyService) Get(ctx context.Context, id int) (*VacancyDto, error) {
	vacancy, err := s.store.GetVacancy(ctx, id)
	if err != nil {
		return nil, err
	}
	return vacancyToDto(vacancy)
}

func (s *VacancyService) ListByUser(ctx context.Context, user *models.User) ([]VacancyDto, error) {
	vacancies, err := s.store.ListVacanciesByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	dtos := make([]VacancyDto, 0, len(vacancies))
	for i := range vacancies {
		dto, err := vacancyToDto(&vacancies[i])
		if err != nil {
			return nil, err
		}
		dtos = append(dtos, *dto)
	}
	return dtos, nil
}

func (s *VacancyService) Update(ctx context.Context, id int, dto *VacancyDto, user *models.User) (*VacancyDto, error) {
	existing, err := s.store.GetVacancy(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := checkOwner(existing.UserID, user); err != nil {
		log.WithFields(map[string]any{"user": user.Username, "vacancy": id}).
			Warn("Попытка обновить чужую вакансию")
		return nil, err
	}
	if err := applyVacancyDto(existing, dto); err != nil {
		return nil, err
	}
	if err := s.store.SaveVacancy(ctx, existing); err != nil {
		return nil, err
	}
	return vacancyToDto(existing)
}

func (s *VacancyService) Delete(ctx context.Context, id int, user *models.User) error {
	existing, err := s.store.GetVacancy(ctx, id)
	if err != nil {
		return err
	}
	if err := checkOwner(existing.UserID, user); err != nil {
		log.WithFields(map[string]any{"user": user.Username, "vacancy": id}).
			Warn("Попытка удалить чужую вакансию")
		return err
	}
	return s.store.DeleteVacancy(ctx, id)
}

// ParseAndSave снимает вакансию с внешнего источника и сохраняет ее
// за пользователем.
func (s *VacancyService) ParseAndSave(ctx context.Context, source, url string, user *models.User) (*VacancyDto, error) {
	log.WithFields(map[string]any{"source": source, "url": url}).Info("Парсинг вакансии")
	parsed, err := s.parser.Parse(ctx, source, url)
	if err != nil {
		return nil, err
	}

	vacancy := &models.Vacancy{
		Title:       parsed.Title,
		Company:     parsed.Company,
		Description: parsed.Descr,
		UserID:      user.ID,
		Source:      source,
		Status:      vacancyStatusActive,
		SalaryFrom:  parsed.SalaryFrom,
		SalaryTo:    parsed.SalaryTo,
		Currency:    parsed.Currency,
		Experience:  parsed.Experience,
		URL:         parsed.URL,
		OriginalID:  parsed.OriginalID,
		FormatWork:  parsed.WorkFormat,
		Location:    parsed.Location,
	}
	if vacancy.Skills, err = models.MarshalStrings(parsed.Skills); err != nil {
		return nil, err
	}
	if err := s.store.CreateVacancy(ctx, vacancy); err != nil {
		return nil, err
	}
	return vacancyToDto(vacancy)
}

// GenerateAndSave собирает вакансию через AI-генератор и сохраняет ее.
func (s *VacancyService) GenerateAndSave(ctx context.Context, request clients.GenerateRequest, user *models.User) (*VacancyDto, error) {
	log.WithField("position", request.Position).Info("Генерация вакансии")
	generated, err := s.generator.Generate(ctx, request)
	if err != nil {
		return nil, err
	}

	vacancy := &models.Vacancy{
		Title:            generated.Title,
		Company:          generated.Company,
		Description:      generated.Description,
		Requirements:     generated.Requirements,
		Responsibilities: generated.Responsibilities,
		Location:         generated.Location,
		Source:           generated.Source,
		Currency:         generated.Currency,
		Experience:       generated.Experience,
		SalaryFrom:       generated.SalaryFrom,
		SalaryTo:         generated.SalaryTo,
		Status:           vacancyStatusActive,
		UserID:           user.ID,
	}
	if vacancy.Skills, err = models.MarshalStrings(generated.Skills); err != nil {
		return nil, err
	}
	if err := s.store.CreateVacancy(ctx, vacancy); err != nil {
		return nil, err
	}
	return vacancyToDto(vacancy)
}

// Shortlist — проекция вакансий пользователя для быстрого сопоставления.
func (s *VacancyService) Shortlist(ctx context.Context, user *models.User) ([]storage.VacancyShort, error) {
	return s.store.VacancyShortlist(ctx, user.ID)
}

func (s *VacancyService) Stats(ctx context.Context) (*storage.Stats, error) {
	return s.store.GetStats(ctx)
}

func applyVacancyDto(entity *models.Vacancy, dto *VacancyDto) error {
	entity.Title = dto.Title
	entity.Description = dto.Description
	entity.Requirements = dto.Requirements
	entity.Company = dto.Company
	entity.Responsibilities = dto.Responsibilities
	entity.SalaryFrom = dto.SalaryFrom
	entity.SalaryTo = dto.SalaryTo
	entity.Location = dto.Location
	entity.Source = dto.Source
	entity.Currency = dto.Currency
	entity.Experience = dto.Experience
	entity.URL = dto.URL
	entity.OriginalID = dto.OriginalID
	entity.Status = dto.Status
	entity.FormatWork = dto.FormatWork
	var err error
	if entity.Skills, err = models.MarshalStrings(dto.Skills); err != nil {
		return err
	}
	return nil
}

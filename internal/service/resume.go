package service

import (
	"context"
	"fmt"

	"github.com/moverq1337/hr-core/internal/clients"
	"github.com/moverq1337/hr-core/internal/models"
	"github.com/moverq1337/hr-core/internal/storage"
)

// ResumeService — CRUD по резюме плюс оркестрация загрузки:
// нормализация через внешний сервис, сохранение и быстрое сопоставление
// с вакансиями пользователя.
type ResumeService struct {
	store       *storage.Store
	normalizer  Normalizer
	fastMatcher FastMatcher
}

func NewResumeService(store *storage.Store, normalizer Normalizer, fastMatcher FastMatcher) *ResumeService {
	return &ResumeService{store: store, normalizer: normalizer, fastMatcher: fastMatcher}
}

func (s *ResumeService) Create(ctx context.Context, dto *ResumeDto, user *models.User) (*ResumeDto, error) {
	log.WithField("name", dto.Name).Info("Создание нового резюме")
	resume, err := s.entityFromDto(dto)
	if err != nil {
		return nil, err
	}
	resume.UserID = user.ID
	if resume.StatusID == 0 {
		resume.StatusID = models.StatusNew
	}
	if err := s.store.CreateResume(ctx, resume); err != nil {
		return nil, err
	}
	log.WithField("id", resume.ID).Info("Резюме успешно создано")
	return s.toDto(ctx, resume)
}

func (s *ResumeService) Get(ctx context.Context, id int) (*ResumeDto, error) {
	resume, err := s.store.GetResume(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toDto(ctx, resume)
}

func (s *ResumeService) ListByUser(ctx context.Context, user *models.User) ([]ResumeDto, error) {
	resumes, err := s.store.ListResumesByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	dtos := make([]ResumeDto, 0, len(resumes))
	for i := range resumes {
		dto, err := s.toDto(ctx, &resumes[i])
		if err != nil {
			return nil, err
		}
		dtos = append(dtos, *dto)
	}
	return dtos, nil
}

func (s *ResumeService) Update(ctx context.Context, id int, dto *ResumeDto, user *models.User) (*ResumeDto, error) {
	existing, err := s.store.GetResume(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := checkOwner(existing.UserID, user); err != nil {
		log.WithFields(map[string]any{"user": user.Username, "resume": id}).
			Warn("Попытка обновить чужое резюме")
		return nil, err
	}
	if err := s.applyDto(existing, dto); err != nil {
		return nil, err
	}
	if err := s.store.SaveResume(ctx, existing); err != nil {
		return nil, err
	}
	return s.toDto(ctx, existing)
}

func (s *ResumeService) Delete(ctx context.Context, id int, user *models.User) error {
	existing, err := s.store.GetResume(ctx, id)
	if err != nil {
		return err
	}
	if err := checkOwner(existing.UserID, user); err != nil {
		log.WithFields(map[string]any{"user": user.Username, "resume": id}).
			Warn("Попытка удалить чужое резюме")
		return err
	}
	return s.store.DeleteResume(ctx, id)
}

// UpdateStatus — узкая операция трекера статусов: меняет только ссылку
// на статус, код не валидируется.
func (s *ResumeService) UpdateStatus(ctx context.Context, resumeID, statusID int) error {
	return s.store.UpdateResumeStatus(ctx, resumeID, statusID)
}

// UploadAndNormalize — оркестратор загрузки резюме.
//
// Шаги: PDF и email уходят в сервис нормализации; из ответа собирается
// новое резюме с source="upload" и начальным статусом; затем компактный
// профиль вместе с шорт-листом вакансий пользователя уходит на быстрое
// сопоставление, и вернувшиеся id сохраняются пачкой связок.
//
// Отказ нормализации прерывает все до записи — частичного резюме не
// остается. Отказ быстрого сопоставления резюме НЕ откатывает: запись
// уже есть, ошибка честно возвращается вызывающему вместе с ней.
func (s *ResumeService) UploadAndNormalize(ctx context.Context, email string, file []byte, filename string, user *models.User) (*models.Resume, error) {
	log.WithField("email", email).Info("Загрузка и нормализация резюме")

	profile, err := s.normalizer.Normalize(ctx, file, filename, email)
	if err != nil {
		log.WithError(err).Error("Ошибка загрузки/нормализации резюме")
		return nil, err
	}

	resume := &models.Resume{
		Email:      email,
		Name:       profile.Name,
		Phone:      profile.Phone,
		Role:       profile.Role,
		PDFContent: file,
		Source:     "upload",
		UserID:     user.ID,
		StatusID:   models.StatusNew,
	}
	if resume.HardSkills, err = models.MarshalStrings(profile.HardSkills); err != nil {
		return nil, err
	}
	if resume.SoftSkills, err = models.MarshalStrings(profile.SoftSkills); err != nil {
		return nil, err
	}
	if resume.Education, err = models.MarshalEducation(profile.Education); err != nil {
		return nil, err
	}
	if resume.WorkExperience, err = models.MarshalExperience(profile.WorkExperience); err != nil {
		return nil, err
	}
	if err := s.store.CreateResume(ctx, resume); err != nil {
		return nil, err
	}
	log.WithField("id", resume.ID).Info("Резюме успешно загружено и нормализовано")

	shortlist, err := s.store.VacancyShortlist(ctx, user.ID)
	if err != nil {
		return resume, err
	}
	request := clients.FastMatchRequest{Resume: clients.FastMatchResume{
		ID:             resume.ID,
		DesiredRole:    resume.Role,
		WorkExperience: profile.WorkExperience,
		Vacancy:        make([]clients.FastMatchVacancy, 0, len(shortlist)),
	}}
	for _, v := range shortlist {
		request.Resume.Vacancy = append(request.Resume.Vacancy, clients.FastMatchVacancy{
			ID:                      v.ID,
			RequiredRole:            v.Title,
			RequiredExperienceYears: v.Experience,
		})
	}

	log.WithField("resume_id", resume.ID).Info("Выполняем запрос для поиска подходящих вакансий")
	ids, err := s.fastMatcher.MatchVacancies(ctx, request)
	if err != nil {
		log.WithError(err).Error("Ошибка быстрого сопоставления")
		return resume, fmt.Errorf("быстрое сопоставление: %w", err)
	}

	links := make([]models.ResumeVacancyFastMatch, 0, len(ids))
	for _, vacancyID := range ids {
		links = append(links, models.ResumeVacancyFastMatch{ResumeID: resume.ID, VacancyID: vacancyID})
	}
	if err := s.store.CreateFastMatches(ctx, links); err != nil {
		return resume, err
	}
	return resume, nil
}

func (s *ResumeService) entityFromDto(dto *ResumeDto) (*models.Resume, error) {
	resume := &models.Resume{ID: dto.ID}
	if err := s.applyDto(resume, dto); err != nil {
		return nil, err
	}
	return resume, nil
}

func (s *ResumeService) applyDto(resume *models.Resume, dto *ResumeDto) error {
	resume.Email = dto.Email
	resume.Source = dto.Source
	resume.Name = dto.Name
	resume.Phone = dto.Phone
	resume.Role = dto.Role
	if dto.CandidateStatus != nil {
		resume.StatusID = dto.CandidateStatus.ID
	}
	if len(dto.PDFFile) > 0 {
		resume.PDFContent = dto.PDFFile
	}
	var err error
	if resume.HardSkills, err = models.MarshalStrings(dto.HardSkills); err != nil {
		return err
	}
	if resume.SoftSkills, err = models.MarshalStrings(dto.SoftSkills); err != nil {
		return err
	}
	if resume.Education, err = models.MarshalEducation(dto.Education); err != nil {
		return err
	}
	if resume.WorkExperience, err = models.MarshalExperience(dto.WorkExperience); err != nil {
		return err
	}
	return nil
}

func (s *ResumeService) toDto(ctx context.Context, resume *models.Resume) (*ResumeDto, error) {
	dto := &ResumeDto{
		ID:              resume.ID,
		Email:           resume.Email,
		Source:          resume.Source,
		Name:            resume.Name,
		Phone:           resume.Phone,
		Role:            resume.Role,
		CreatedAt:       resume.CreatedAt,
		CandidateStatus: resume.Status,
	}
	var err error
	if dto.HardSkills, err = models.UnmarshalStrings(resume.HardSkills); err != nil {
		return nil, err
	}
	if dto.SoftSkills, err = models.UnmarshalStrings(resume.SoftSkills); err != nil {
		return nil, err
	}
	if dto.Education, err = models.UnmarshalEducation(resume.Education); err != nil {
		return nil, err
	}
	if dto.WorkExperience, err = models.UnmarshalExperience(resume.WorkExperience); err != nil {
		return nil, err
	}

	// Подошедшие по быстрому сопоставлению вакансии — id и заголовок.
	links, err := s.store.ListFastMatchesByResume(ctx, resume.ID)
	if err != nil {
		return nil, err
	}
	for _, link := range links {
		vacancy, err := s.store.GetVacancy(ctx, link.VacancyID)
		if err != nil {
			continue // вакансию могли удалить, связка не критична
		}
		dto.MatchedVacancies = append(dto.MatchedVacancies, MatchedVacancyShortDto{
			VacancyID: vacancy.ID,
			Title:     vacancy.Title,
		})
	}
	return dto, nil
}

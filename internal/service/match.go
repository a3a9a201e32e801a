package service

import (
	"context"
	"errors"
	"time"

	"github.com/moverq1337/hr-core/internal/clients"
	"github.com/moverq1337/hr-core/internal/models"
	"github.com/moverq1337/hr-core/internal/storage"
)

// MatchService — оркестратор полного сопоставления: загрузка пары
// резюме/вакансия, вызов внешнего скоринга, идемпотентная запись
// вердикта по естественному ключу и продвижение статуса кандидата.
type MatchService struct {
	store       *storage.Store
	fullMatcher FullMatcher
}

func NewMatchService(store *storage.Store, fullMatcher FullMatcher) *MatchService {
	return &MatchService{store: store, fullMatcher: fullMatcher}
}

// MatchFull выполняет полное сопоставление пары.
//
// Проверка владения здесь сознательно не делается: сопоставление —
// кросс-пользовательская операция, любой аутентифицированный пользователь
// может запустить его для любой известной ему пары.
func (s *MatchService) MatchFull(ctx context.Context, resumeID, vacancyID int, user *models.User) (*MatchDto, error) {
	log.WithFields(map[string]any{"resume_id": resumeID, "vacancy_id": vacancyID}).
		Info("Запуск полного сопоставления")

	resume, err := s.store.GetResume(ctx, resumeID)
	if err != nil {
		return nil, err
	}
	vacancy, err := s.store.GetVacancy(ctx, vacancyID)
	if err != nil {
		return nil, err
	}

	request, err := buildFullMatchRequest(resume, vacancy)
	if err != nil {
		return nil, err
	}

	verdict, err := s.fullMatcher.MatchFull(ctx, *request)
	if err != nil {
		// Ничего не сохраняем и статус не трогаем: частичных вердиктов нет.
		log.WithError(err).Error("Ошибка обращения к внешнему сервису скоринга")
		return nil, err
	}

	return s.saveFromResponse(ctx, verdict, user)
}

// saveFromResponse сверяет вердикт с хранилищем: существующая строка пары
// перезаписывается на месте (id и created_at сохраняются, last-write-wins),
// отсутствующая — создается. Гонку двух одновременных созданий разрешает
// уникальный индекс: проигравший получает storage.ErrConflict, повтор
// запроса сойдется к обновлению строки победителя. После успешной записи
// статус кандидата продвигается до «Сопоставлен».
func (s *MatchService) saveFromResponse(ctx context.Context, verdict *clients.FullMatchResponse, user *models.User) (*MatchDto, error) {
	entity, err := s.store.GetMatchByPair(ctx, verdict.ResumeID, verdict.VacancyID)
	created := false
	switch {
	case err == nil:
	case errors.Is(err, storage.ErrNotFound):
		// Ссылки разрешаем заново: резюме или вакансию могли удалить,
		// пока шел скоринг.
		if _, err := s.store.GetResume(ctx, verdict.ResumeID); err != nil {
			return nil, err
		}
		if _, err := s.store.GetVacancy(ctx, verdict.VacancyID); err != nil {
			return nil, err
		}
		entity = &models.ResumeVacancyMatch{ResumeID: verdict.ResumeID, VacancyID: verdict.VacancyID}
		created = true
	default:
		return nil, err
	}

	if err := applyVerdict(entity, verdict); err != nil {
		return nil, err
	}
	if user != nil {
		entity.UserID = &user.ID
	}

	if created {
		err = s.store.CreateMatch(ctx, entity)
	} else {
		err = s.store.SaveMatch(ctx, entity)
	}
	if err != nil {
		return nil, err
	}

	if err := s.store.UpdateResumeStatus(ctx, verdict.ResumeID, models.StatusMatched); err != nil {
		return nil, err
	}
	log.WithFields(map[string]any{"match_id": entity.ID, "resume_id": verdict.ResumeID}).
		Info("Вердикт сохранен, статус кандидата обновлен")

	return matchToDto(entity)
}

// --- CRUD по записям сопоставлений ---

func (s *MatchService) Create(ctx context.Context, dto *MatchDto, user *models.User) (*MatchDto, error) {
	if _, err := s.store.GetResume(ctx, dto.ResumeID); err != nil {
		return nil, err
	}
	if _, err := s.store.GetVacancy(ctx, dto.VacancyID); err != nil {
		return nil, err
	}
	entity := &models.ResumeVacancyMatch{ResumeID: dto.ResumeID, VacancyID: dto.VacancyID}
	if err := applyDtoToMatch(entity, dto); err != nil {
		return nil, err
	}
	if user != nil {
		entity.UserID = &user.ID
	}
	if err := s.store.CreateMatch(ctx, entity); err != nil {
		return nil, err
	}
	return matchToDto(entity)
}

func (s *MatchService) Get(ctx context.Context, id int) (*MatchDto, error) {
	entity, err := s.store.GetMatch(ctx, id)
	if err != nil {
		return nil, err
	}
	return matchToDto(entity)
}

func (s *MatchService) List(ctx context.Context) ([]MatchDto, error) {
	entities, err := s.store.ListMatches(ctx)
	if err != nil {
		return nil, err
	}
	dtos := make([]MatchDto, 0, len(entities))
	for i := range entities {
		dto, err := matchToDto(&entities[i])
		if err != nil {
			return nil, err
		}
		dtos = append(dtos, *dto)
	}
	return dtos, nil
}

func (s *MatchService) Update(ctx context.Context, id int, dto *MatchDto, user *models.User) (*MatchDto, error) {
	entity, err := s.store.GetMatch(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyDtoToMatch(entity, dto); err != nil {
		return nil, err
	}
	if user != nil {
		entity.UserID = &user.ID
	}
	if err := s.store.SaveMatch(ctx, entity); err != nil {
		return nil, err
	}
	return matchToDto(entity)
}

func (s *MatchService) Delete(ctx context.Context, id int) error {
	return s.store.DeleteMatch(ctx, id)
}

// --- маппинг ---

func buildFullMatchRequest(resume *models.Resume, vacancy *models.Vacancy) (*clients.FullMatchRequest, error) {
	hard, err := models.UnmarshalStrings(resume.HardSkills)
	if err != nil {
		return nil, err
	}
	soft, err := models.UnmarshalStrings(resume.SoftSkills)
	if err != nil {
		return nil, err
	}
	education, err := models.UnmarshalEducation(resume.Education)
	if err != nil {
		return nil, err
	}
	experience, err := models.UnmarshalExperience(resume.WorkExperience)
	if err != nil {
		return nil, err
	}
	skills, err := models.UnmarshalStrings(vacancy.Skills)
	if err != nil {
		return nil, err
	}

	return &clients.FullMatchRequest{
		Resume: clients.ResumeExternal{
			ID:             resume.ID,
			Email:          resume.Email,
			Name:           resume.Name,
			Phone:          resume.Phone,
			Role:           resume.Role,
			HardSkills:     hard,
			SoftSkills:     soft,
			Education:      education,
			WorkExperience: experience,
		},
		Vacancy: clients.VacancyExternal{
			ID:               vacancy.ID,
			Title:            vacancy.Title,
			Description:      vacancy.Description,
			Requirements:     vacancy.Requirements,
			Company:          vacancy.Company,
			Responsibilities: vacancy.Responsibilities,
			Skills:           skills,
			SalaryFrom:       vacancy.SalaryFrom,
			SalaryTo:         vacancy.SalaryTo,
			Location:         vacancy.Location,
			Source:           vacancy.Source,
			CreatedAt:        vacancy.CreatedAt.Format(time.RFC3339),
			Currency:         vacancy.Currency,
			Experience:       vacancy.Experience,
			URL:              vacancy.URL,
			OriginalID:       vacancy.OriginalID,
			Status:           vacancy.Status,
			FormatWork:       vacancy.FormatWork,
		},
	}, nil
}

func applyVerdict(entity *models.ResumeVacancyMatch, verdict *clients.FullMatchResponse) error {
	var err error
	if entity.MatchedSkills, err = models.MarshalStrings(verdict.MatchedSkills); err != nil {
		return err
	}
	if entity.UnmatchedSkills, err = models.MarshalStrings(verdict.UnmatchedSkills); err != nil {
		return err
	}
	if entity.Positives, err = models.MarshalStrings(verdict.Positives); err != nil {
		return err
	}
	if entity.Negatives, err = models.MarshalStrings(verdict.Negatives); err != nil {
		return err
	}
	if entity.ClarifyingQuestions, err = models.MarshalStrings(verdict.ClarifyingQuestions); err != nil {
		return err
	}
	entity.LLMComment = verdict.LLMComment
	score := verdict.Score
	entity.Score = &score
	entity.Verdict = verdict.Verdict
	return nil
}

func applyDtoToMatch(entity *models.ResumeVacancyMatch, dto *MatchDto) error {
	var err error
	if entity.MatchedSkills, err = models.MarshalStrings(dto.MatchedSkills); err != nil {
		return err
	}
	if entity.UnmatchedSkills, err = models.MarshalStrings(dto.UnmatchedSkills); err != nil {
		return err
	}
	if entity.Positives, err = models.MarshalStrings(dto.Positives); err != nil {
		return err
	}
	if entity.Negatives, err = models.MarshalStrings(dto.Negatives); err != nil {
		return err
	}
	if entity.ClarifyingQuestions, err = models.MarshalStrings(dto.ClarifyingQuestions); err != nil {
		return err
	}
	entity.LLMComment = dto.LLMComment
	entity.Score = dto.Score
	entity.Verdict = dto.Verdict
	return nil
}

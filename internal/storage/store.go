package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/moverq1337/hr-core/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrNotFound возвращается, когда запись с указанным ключом отсутствует.
	ErrNotFound = errors.New("запись не найдена")
	// ErrConflict возвращается при нарушении уникального ограничения —
	// например, когда два параллельных сопоставления создают строку
	// для одной и той же пары (resume_id, vacancy_id).
	ErrConflict = errors.New("конфликт уникальности")
)

// Store инкапсулирует доступ к базе. Единственное место, где живут
// gorm-запросы: сервисы работают только через его методы.
type Store struct {
	db *gorm.DB
}

// VacancyShort — проекция вакансии для быстрого сопоставления:
// только идентификатор, роль и требуемый опыт.
type VacancyShort struct {
	ID         int
	Title      string
	Experience string
}

// Stats — счетчики для дашборда.
type Stats struct {
	TotalVacancies      int64 `json:"totalVacancies"`
	ActiveVacancies     int64 `json:"activeVacancies"`
	TotalCandidates     int64 `json:"totalCandidates"`
	OfferedCandidates   int64 `json:"offeredCandidates"`
	HighScoreCandidates int64 `json:"highScoreCandidates"`
	MatchesToday        int64 `json:"matchesToday"`
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// AutoMigrate обновляет схему и досевает справочник статусов.
func (s *Store) AutoMigrate() error {
	err := s.db.AutoMigrate(
		&models.User{},
		&models.CandidateStatus{},
		&models.Resume{},
		&models.Vacancy{},
		&models.ResumeVacancyFastMatch{},
		&models.ResumeVacancyMatch{},
		&models.JobApplication{},
		&models.Offer{},
	)
	if err != nil {
		return fmt.Errorf("автомиграция: %w", err)
	}

	statuses := []models.CandidateStatus{
		{ID: models.StatusNew, Title: "Новый", Description: "Резюме загружено и нормализовано"},
		{ID: 2, Title: "На рассмотрении", Description: "Кандидат в работе у рекрутера"},
		{ID: models.StatusMatched, Title: "Сопоставлен", Description: "Выполнено полное сопоставление с вакансией"},
		{ID: 4, Title: "Интервью", Description: "Назначено интервью"},
		{ID: 5, Title: "Оффер", Description: "Кандидату направлен оффер"},
		{ID: 6, Title: "Отказ", Description: "Кандидату отказано"},
	}
	if err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&statuses).Error; err != nil {
		return fmt.Errorf("сев статусов: %w", err)
	}
	return nil
}

func wrap(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s: %w", op, ErrConflict)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

// --- Пользователи ---

func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	return wrap("создание пользователя", s.db.WithContext(ctx).Create(u).Error)
}

func (s *Store) GetUser(ctx context.Context, id int) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, wrap("поиск пользователя", err)
	}
	return &u, nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).First(&u, "username = ?", username).Error; err != nil {
		return nil, wrap("поиск пользователя", err)
	}
	return &u, nil
}

// --- Резюме ---

func (s *Store) CreateResume(ctx context.Context, r *models.Resume) error {
	return wrap("создание резюме", s.db.WithContext(ctx).Create(r).Error)
}

func (s *Store) GetResume(ctx context.Context, id int) (*models.Resume, error) {
	var r models.Resume
	if err := s.db.WithContext(ctx).Preload("Status").First(&r, "id = ?", id).Error; err != nil {
		return nil, wrap("поиск резюме", err)
	}
	return &r, nil
}

func (s *Store) ListResumesByUser(ctx context.Context, userID int) ([]models.Resume, error) {
	var rs []models.Resume
	if err := s.db.WithContext(ctx).Preload("Status").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rs).Error; err != nil {
		return nil, wrap("список резюме", err)
	}
	return rs, nil
}

func (s *Store) SaveResume(ctx context.Context, r *models.Resume) error {
	return wrap("сохранение резюме", s.db.WithContext(ctx).Save(r).Error)
}

func (s *Store) DeleteResume(ctx context.Context, id int) error {
	tx := s.db.WithContext(ctx).Delete(&models.Resume{}, "id = ?", id)
	if tx.Error != nil {
		return wrap("удаление резюме", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return wrap("удаление резюме", gorm.ErrRecordNotFound)
	}
	return nil
}

// UpdateResumeStatus меняет только ссылку на статус, не трогая остальные
// поля. Код статуса не валидируется — справочник на стороне БД.
func (s *Store) UpdateResumeStatus(ctx context.Context, resumeID, statusID int) error {
	tx := s.db.WithContext(ctx).Model(&models.Resume{}).
		Where("id = ?", resumeID).
		Update("status_id", statusID)
	if tx.Error != nil {
		return wrap("обновление статуса", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return wrap("обновление статуса", gorm.ErrRecordNotFound)
	}
	return nil
}

// --- Вакансии ---

func (s *Store) CreateVacancy(ctx context.Context, v *models.Vacancy) error {
	return wrap("создание вакансии", s.db.WithContext(ctx).Create(v).Error)
}

func (s *Store) GetVacancy(ctx context.Context, id int) (*models.Vacancy, error) {
	var v models.Vacancy
	if err := s.db.WithContext(ctx).First(&v, "id = ?", id).Error; err != nil {
		return nil, wrap("поиск вакансии", err)
	}
	return &v, nil
}

func (s *Store) ListVacanciesByUser(ctx context.Context, userID int) ([]models.Vacancy, error) {
	var vs []models.Vacancy
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&vs).Error; err != nil {
		return nil, wrap("список вакансий", err)
	}
	return vs, nil
}

func (s *Store) SaveVacancy(ctx context.Context, v *models.Vacancy) error {
	return wrap("сохранение вакансии", s.db.WithContext(ctx).Save(v).Error)
}

func (s *Store) DeleteVacancy(ctx context.Context, id int) error {
	tx := s.db.WithContext(ctx).Delete(&models.Vacancy{}, "id = ?", id)
	if tx.Error != nil {
		return wrap("удаление вакансии", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return wrap("удаление вакансии", gorm.ErrRecordNotFound)
	}
	return nil
}

// VacancyShortlist возвращает проекцию вакансий пользователя для
// быстрого сопоставления.
func (s *Store) VacancyShortlist(ctx context.Context, userID int) ([]VacancyShort, error) {
	var shorts []VacancyShort
	if err := s.db.WithContext(ctx).Model(&models.Vacancy{}).
		Select("id", "title", "experience").
		Where("user_id = ?", userID).
		Find(&shorts).Error; err != nil {
		return nil, wrap("проекция вакансий", err)
	}
	return shorts, nil
}

// --- Быстрые сопоставления ---

// CreateFastMatches пишет связки пачкой. Повторы — как внутри пачки, так
// и относительно уже существующих строк — молча схлопываются за счет
// ON CONFLICT DO NOTHING: внешний сервис может вернуть один и тот же id
// дважды, и это не должно ронять загрузку резюме.
func (s *Store) CreateFastMatches(ctx context.Context, links []models.ResumeVacancyFastMatch) error {
	if len(links) == 0 {
		return nil
	}
	tx := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&links)
	return wrap("создание быстрых сопоставлений", tx.Error)
}

func (s *Store) ListFastMatchesByResume(ctx context.Context, resumeID int) ([]models.ResumeVacancyFastMatch, error) {
	var links []models.ResumeVacancyFastMatch
	if err := s.db.WithContext(ctx).
		Where("resume_id = ?", resumeID).
		Order("id ASC").
		Find(&links).Error; err != nil {
		return nil, wrap("список быстрых сопоставлений", err)
	}
	return links, nil
}

// ReplaceFastMatches целиком заменяет связки резюме новой пачкой.
func (s *Store) ReplaceFastMatches(ctx context.Context, resumeID int, links []models.ResumeVacancyFastMatch) error {
	return wrap("замена быстрых сопоставлений", s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.ResumeVacancyFastMatch{}, "resume_id = ?", resumeID).Error; err != nil {
			return err
		}
		if len(links) == 0 {
			return nil
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error
	}))
}

// --- Полные сопоставления ---

func (s *Store) GetMatch(ctx context.Context, id int) (*models.ResumeVacancyMatch, error) {
	var m models.ResumeVacancyMatch
	if err := s.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, wrap("поиск сопоставления", err)
	}
	return &m, nil
}

// GetMatchByPair ищет вердикт по естественному ключу пары.
func (s *Store) GetMatchByPair(ctx context.Context, resumeID, vacancyID int) (*models.ResumeVacancyMatch, error) {
	var m models.ResumeVacancyMatch
	if err := s.db.WithContext(ctx).
		First(&m, "resume_id = ? AND vacancy_id = ?", resumeID, vacancyID).Error; err != nil {
		return nil, wrap("поиск сопоставления по паре", err)
	}
	return &m, nil
}

func (s *Store) ListMatches(ctx context.Context) ([]models.ResumeVacancyMatch, error) {
	var ms []models.ResumeVacancyMatch
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&ms).Error; err != nil {
		return nil, wrap("список сопоставлений", err)
	}
	return ms, nil
}

// CreateMatch вставляет новую строку вердикта. Гонка двух параллельных
// сопоставлений одной пары разрешается уникальным индексом: проигравший
// получает ErrConflict и не затирает строку победителя.
func (s *Store) CreateMatch(ctx context.Context, m *models.ResumeVacancyMatch) error {
	return wrap("создание сопоставления", s.db.WithContext(ctx).Create(m).Error)
}

// SaveMatch перезаписывает существующий вердикт. created_at защищен
// тегом <-:create и при обновлении не меняется.
func (s *Store) SaveMatch(ctx context.Context, m *models.ResumeVacancyMatch) error {
	return wrap("сохранение сопоставления", s.db.WithContext(ctx).Save(m).Error)
}

func (s *Store) DeleteMatch(ctx context.Context, id int) error {
	tx := s.db.WithContext(ctx).Delete(&models.ResumeVacancyMatch{}, "id = ?", id)
	if tx.Error != nil {
		return wrap("удаление сопоставления", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return wrap("удаление сопоставления", gorm.ErrRecordNotFound)
	}
	return nil
}

// --- Статусы кандидата ---

func (s *Store) ListStatuses(ctx context.Context) ([]models.CandidateStatus, error) {
	var sts []models.CandidateStatus
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&sts).Error; err != nil {
		return nil, wrap("список статусов", err)
	}
	return sts, nil
}

func (s *Store) GetStatus(ctx context.Context, id int) (*models.CandidateStatus, error) {
	var st models.CandidateStatus
	if err := s.db.WithContext(ctx).First(&st, "id = ?", id).Error; err != nil {
		return nil, wrap("поиск статуса", err)
	}
	return &st, nil
}

func (s *Store) CreateStatus(ctx context.Context, st *models.CandidateStatus) error {
	return wrap("создание статуса", s.db.WithContext(ctx).Create(st).Error)
}

func (s *Store) SaveStatus(ctx context.Context, st *models.CandidateStatus) error {
	return wrap("сохранение статуса", s.db.WithContext(ctx).Save(st).Error)
}

func (s *Store) DeleteStatus(ctx context.Context, id int) error {
	return wrap("удаление статуса", s.db.WithContext(ctx).Delete(&models.CandidateStatus{}, "id = ?", id).Error)
}

// --- Отклики и офферы ---

func (s *Store) CreateApplication(ctx context.Context, a *models.JobApplication) error {
	return wrap("создание отклика", s.db.WithContext(ctx).Create(a).Error)
}

func (s *Store) GetApplication(ctx context.Context, id int) (*models.JobApplication, error) {
	var a models.JobApplication
	if err := s.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, wrap("поиск отклика", err)
	}
	return &a, nil
}

func (s *Store) ListApplications(ctx context.Context) ([]models.JobApplication, error) {
	var as []models.JobApplication
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&as).Error; err != nil {
		return nil, wrap("список откликов", err)
	}
	return as, nil
}

func (s *Store) SaveApplication(ctx context.Context, a *models.JobApplication) error {
	return wrap("сохранение отклика", s.db.WithContext(ctx).Save(a).Error)
}

func (s *Store) DeleteApplication(ctx context.Context, id int) error {
	return wrap("удаление отклика", s.db.WithContext(ctx).Delete(&models.JobApplication{}, "id = ?", id).Error)
}

func (s *Store) CreateOffer(ctx context.Context, o *models.Offer) error {
	return wrap("создание оффера", s.db.WithContext(ctx).Create(o).Error)
}

func (s *Store) GetOffer(ctx context.Context, id int) (*models.Offer, error) {
	var o models.Offer
	if err := s.db.WithContext(ctx).First(&o, "id = ?", id).Error; err != nil {
		return nil, wrap("поиск оффера", err)
	}
	return &o, nil
}

func (s *Store) ListOffers(ctx context.Context) ([]models.Offer, error) {
	var os []models.Offer
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&os).Error; err != nil {
		return nil, wrap("список офферов", err)
	}
	return os, nil
}

func (s *Store) SaveOffer(ctx context.Context, o *models.Offer) error {
	return wrap("сохранение оффера", s.db.WithContext(ctx).Save(o).Error)
}

func (s *Store) DeleteOffer(ctx context.Context, id int) error {
	return wrap("удаление оффера", s.db.WithContext(ctx).Delete(&models.Offer{}, "id = ?", id).Error)
}

// --- Статистика ---

func (s *Store) GetStats(ctx context.Context) (*Stats, error) {
	var st Stats
	db := s.db.WithContext(ctx)

	if err := db.Model(&models.Vacancy{}).Count(&st.TotalVacancies).Error; err != nil {
		return nil, wrap("статистика", err)
	}
	if err := db.Model(&models.Vacancy{}).Where("status = ?", "Активная").Count(&st.ActiveVacancies).Error; err != nil {
		return nil, wrap("статистика", err)
	}
	if err := db.Model(&models.Resume{}).Count(&st.TotalCandidates).Error; err != nil {
		return nil, wrap("статистика", err)
	}
	if err := db.Model(&models.Resume{}).Where("status_id = ?", 5).Count(&st.OfferedCandidates).Error; err != nil {
		return nil, wrap("статистика", err)
	}
	if err := db.Model(&models.ResumeVacancyMatch{}).Where("score > ?", 0.7).Count(&st.HighScoreCandidates).Error; err != nil {
		return nil, wrap("статистика", err)
	}
	dayStart := time.Now().Truncate(24 * time.Hour)
	if err := db.Model(&models.ResumeVacancyMatch{}).
		Where("created_at >= ?", dayStart).
		Count(&st.MatchesToday).Error; err != nil {
		return nil, wrap("статистика", err)
	}
	return &st, nil
}

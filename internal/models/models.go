package models

import (
	"time"

	"gorm.io/datatypes"
)

// Коды статусов кандидата, на которые завязана оркестрация.
// Полный справочник лежит в таблице candidate_statuses.
const (
	StatusNew     = 1 // начальный статус после загрузки резюме
	StatusMatched = 3 // выставляется после успешного полного сопоставления
)

type User struct {
	ID           int    `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"type:varchar(100);uniqueIndex" json:"username"`
	Email        string `gorm:"type:varchar(255);uniqueIndex" json:"email"`
	PasswordHash string `gorm:"type:varchar(255)" json:"-"`
	Role         string `gorm:"type:varchar(50)" json:"role"`
	CreatedAt    time.Time
}

type CandidateStatus struct {
	ID          int    `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"type:varchar(100)" json:"title"`
	Description string `gorm:"type:text" json:"description"`
}

// Resume хранит профиль кандидата. Списочные атрибуты (навыки, образование,
// опыт) лежат в jsonb-колонках, см. attrs.go: NULL означает «неизвестно»,
// пустой массив — «известно, что нет».
type Resume struct {
	ID             int            `gorm:"primaryKey" json:"id"`
	Email          string         `gorm:"type:varchar(255);not null" json:"email"`
	Name           string         `gorm:"type:varchar(255)" json:"name"`
	Phone          string         `gorm:"type:varchar(100)" json:"phone"`
	Role           string         `gorm:"type:varchar(255)" json:"role"`
	HardSkills     datatypes.JSON `json:"hard_skills"`
	SoftSkills     datatypes.JSON `json:"soft_skills"`
	Education      datatypes.JSON `json:"education"`
	WorkExperience datatypes.JSON `json:"work_experience"`
	PDFContent     []byte         `gorm:"column:pdf_content" json:"-"`
	Source         string         `gorm:"type:varchar(100)" json:"source"`
	CreatedAt      time.Time      `gorm:"<-:create" json:"created_at"`
	UserID         int            `json:"user_id"`
	StatusID       int            `json:"status_id"`

	Status *CandidateStatus `gorm:"foreignKey:StatusID" json:"status,omitempty"`
}

type Vacancy struct {
	ID               int            `gorm:"primaryKey" json:"id"`
	Title            string         `gorm:"type:varchar(255);not null" json:"title"`
	Description      string         `gorm:"type:text" json:"description"`
	Requirements     string         `gorm:"type:text" json:"requirements"`
	Company          string         `gorm:"type:varchar(255)" json:"company"`
	Responsibilities string         `gorm:"type:text" json:"responsibilities"`
	Skills           datatypes.JSON `json:"skills"`
	SalaryFrom       *int           `json:"salary_from"`
	SalaryTo         *int           `json:"salary_to"`
	Location         string         `gorm:"type:varchar(255)" json:"location"`
	Source           string         `gorm:"type:varchar(100)" json:"source"`
	Currency         string         `gorm:"type:varchar(10)" json:"currency"`
	Experience       string         `gorm:"type:varchar(100)" json:"experience"`
	URL              string         `gorm:"type:varchar(1000)" json:"url"`
	OriginalID       string         `gorm:"column:original_id;type:varchar(100)" json:"original_id"`
	Status           string         `gorm:"type:varchar(50)" json:"status"`
	FormatWork       string         `gorm:"column:format_work;type:varchar(50)" json:"format_work"`
	CreatedAt        time.Time      `gorm:"<-:create" json:"created_at"`
	UserID           int            `json:"user_id"`
}

// ResumeVacancyFastMatch — быстрая связка «резюме подходит вакансии».
// Пара (resume_id, vacancy_id) уникальна, записи создаются пачкой после
// загрузки резюме и никогда не обновляются по одной.
type ResumeVacancyFastMatch struct {
	ID        int `gorm:"primaryKey" json:"id"`
	ResumeID  int `gorm:"not null;uniqueIndex:uniq_fast_match_pair" json:"resume_id"`
	VacancyID int `gorm:"not null;uniqueIndex:uniq_fast_match_pair" json:"vacancy_id"`
}

// ResumeVacancyMatch — развернутый вердикт полного сопоставления.
// Пара (resume_id, vacancy_id) уникальна: повторное сопоставление
// перезаписывает существующую строку, а не создает дубликат.
type ResumeVacancyMatch struct {
	ID                  int            `gorm:"primaryKey" json:"id"`
	ResumeID            int            `gorm:"not null;uniqueIndex:uniq_full_match_pair" json:"resume_id"`
	VacancyID           int            `gorm:"not null;uniqueIndex:uniq_full_match_pair" json:"vacancy_id"`
	MatchedSkills       datatypes.JSON `json:"matched_skills"`
	UnmatchedSkills     datatypes.JSON `json:"unmatched_skills"`
	LLMComment          string         `gorm:"column:llm_comment;type:text" json:"llm_comment"`
	Score               *float64       `json:"score"`
	Positives           datatypes.JSON `json:"positives"`
	Negatives           datatypes.JSON `json:"negatives"`
	Verdict             string         `gorm:"type:text" json:"verdict"`
	ClarifyingQuestions datatypes.JSON `json:"clarifying_questions"`
	UserID              *int           `json:"user_id"`
	CreatedAt           time.Time      `gorm:"<-:create" json:"created_at"`
}

type JobApplication struct {
	ID         int       `gorm:"primaryKey" json:"id"`
	ResumeID   int       `gorm:"not null" json:"resume_id"`
	VacancyID  int       `gorm:"not null" json:"vacancy_id"`
	Status     string    `gorm:"type:varchar(100);default:new" json:"status"`
	MatchScore *float64  `gorm:"column:match_score" json:"match_score"`
	CreatedAt  time.Time `gorm:"<-:create" json:"created_at"`
}

type Offer struct {
	ID            int       `gorm:"primaryKey" json:"id"`
	ApplicationID int       `gorm:"not null" json:"application_id"`
	OfferText     string    `gorm:"column:offer_text;type:text" json:"offer_text"`
	PDFFilePath   string    `gorm:"column:pdf_file_path;type:varchar(500)" json:"pdf_file_path"`
	CreatedAt     time.Time `gorm:"<-:create" json:"created_at"`
}

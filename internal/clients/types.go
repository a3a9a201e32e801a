// Package clients содержит HTTP-клиенты внешних сервисов: нормализации
// и быстрого сопоставления (llm-integration-service), полного скоринга
// (resume-score-service) и парсинга вакансий (jobs-parser-service).
// Клиенты создаются один раз и внедряются в сервисы как зависимости;
// в тестах подменяются фейками.
package clients

import "github.com/moverq1337/hr-core/internal/models"

// CandidateProfile — структурированные поля кандидата, которые возвращает
// сервис нормализации по загруженному PDF.
type CandidateProfile struct {
	Name           string                  `json:"name"`
	Phone          string                  `json:"phone"`
	Role           string                  `json:"role"`
	HardSkills     []string                `json:"hard_skills"`
	SoftSkills     []string                `json:"soft_skills"`
	Education      []models.Education      `json:"education"`
	WorkExperience []models.WorkExperience `json:"work_experience"`
}

// FastMatchRequest — запрос быстрого сопоставления: компактный профиль
// резюме плюс шорт-лист вакансий пользователя (проекция, не полные данные).
type FastMatchRequest struct {
	Resume FastMatchResume `json:"resume"`
}

type FastMatchResume struct {
	ID             int                     `json:"id"`
	DesiredRole    string                  `json:"desired_role"`
	WorkExperience []models.WorkExperience `json:"workExperience"`
	Vacancy        []FastMatchVacancy      `json:"vacancy"`
}

type FastMatchVacancy struct {
	ID                      int    `json:"id"`
	RequiredRole            string `json:"required_role"`
	RequiredExperienceYears string `json:"required_experience_years"`
}

type fastMatchResponse struct {
	MatchedVacancyIDs []int `json:"matched_vacancy_ids"`
}

// FullMatchRequest — полный профиль резюме и полная вакансия для
// внешнего скоринга. Поля верхнего уровня в camelCase, вложенный опыт
// работы — в snake_case: так исторически устроен контракт сервиса.
type FullMatchRequest struct {
	Resume  ResumeExternal  `json:"resume"`
	Vacancy VacancyExternal `json:"vacancy"`
}

type ResumeExternal struct {
	ID             int                     `json:"id"`
	Email          string                  `json:"email"`
	Name           string                  `json:"name"`
	Phone          string                  `json:"phone"`
	Role           string                  `json:"role"`
	HardSkills     []string                `json:"hardSkills"`
	SoftSkills     []string                `json:"softSkills"`
	Education      []models.Education      `json:"education"`
	WorkExperience []models.WorkExperience `json:"workExperience"`
}

type VacancyExternal struct {
	ID               int      `json:"id"`
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Requirements     string   `json:"requirements"`
	Company          string   `json:"company"`
	Responsibilities string   `json:"responsibilities"`
	Skills           []string `json:"skills"`
	SalaryFrom       *int     `json:"salaryFrom"`
	SalaryTo         *int     `json:"salaryTo"`
	Location         string   `json:"location"`
	Source           string   `json:"source"`
	CreatedAt        string   `json:"createdAt"` // ISO-строка, не timestamp
	Currency         string   `json:"currency"`
	Experience       string   `json:"experience"`
	URL              string   `json:"url"`
	OriginalID       string   `json:"originalId"`
	Status           string   `json:"status"`
	FormatWork       string   `json:"formatWork"`
}

// FullMatchResponse — вердикт внешнего скоринга.
type FullMatchResponse struct {
	ResumeID            int      `json:"resumeId"`
	VacancyID           int      `json:"vacancyId"`
	MatchedSkills       []string `json:"matchedSkills"`
	UnmatchedSkills     []string `json:"unmatchedSkills"`
	LLMComment          string   `json:"llmComment"`
	Score               float64  `json:"score"`
	Positives           []string `json:"positives"`
	Negatives           []string `json:"negatives"`
	Verdict             string   `json:"verdict"`
	ClarifyingQuestions []string `json:"clarifyingQuestions"`
}

// ParsedVacancy — вакансия, снятая парсером с внешнего источника.
type ParsedVacancy struct {
	OriginalID string   `json:"id"`
	Title      string   `json:"title"`
	Company    string   `json:"company"`
	Descr      string   `json:"description"`
	SalaryFrom *int     `json:"salary_from"`
	SalaryTo   *int     `json:"salary_to"`
	Currency   string   `json:"currency"`
	Experience string   `json:"experience"`
	Skills     []string `json:"skills"`
	URL        string   `json:"url"`
	WorkFormat string   `json:"work_format"`
	Location   string   `json:"location"`
}

// GenerateRequest — бриф для AI-генерации вакансии.
type GenerateRequest struct {
	Position           string   `json:"position"`
	Company            string   `json:"company"`
	RequiredSkills     []string `json:"required_skills"`
	ExperienceYears    string   `json:"experience_years"`
	Location           string   `json:"location"`
	SalaryRange        string   `json:"salary_range"`
	CompanyDescription string   `json:"company_description"`
	AdditionalInfo     string   `json:"additional_info"`
}

// GeneratedVacancy — ответ генератора. Зарплатные границы здесь в
// camelCase, в отличие от парсера.
type GeneratedVacancy struct {
	Title            string   `json:"title"`
	Company          string   `json:"company"`
	Description      string   `json:"description"`
	Requirements     string   `json:"requirements"`
	Responsibilities string   `json:"responsibilities"`
	Location         string   `json:"location"`
	Source           string   `json:"source"`
	Currency         string   `json:"currency"`
	Experience       string   `json:"experience"`
	Skills           []string `json:"skills"`
	SalaryFrom       *int     `json:"salaryFrom"`
	SalaryTo         *int     `json:"salaryTo"`
}

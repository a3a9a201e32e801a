package service

import (
	"time"

	"github.com/moverq1337/hr-core/internal/models"
)

// DTO повторяют формат исходного REST API: списочные атрибуты наружу
// отдаются типизированными срезами, в БД — jsonb-текстом (attrs.go).

type ResumeDto struct {
	ID               int                      `json:"id"`
	Email            string                   `json:"email"`
	Source           string                   `json:"source"`
	Name             string                   `json:"name"`
	Phone            string                   `json:"phone"`
	Role             string                   `json:"role"`
	HardSkills       []string                 `json:"hard_skills"`
	SoftSkills       []string                 `json:"soft_skills"`
	Education        []models.Education       `json:"education"`
	WorkExperience   []models.WorkExperience  `json:"work_experience"`
	PDFFile          []byte                   `json:"pdf_file,omitempty"`
	CreatedAt        time.Time                `json:"created_at"`
	CandidateStatus  *models.CandidateStatus  `json:"candidate_status,omitempty"`
	MatchedVacancies []MatchedVacancyShortDto `json:"matched_vacancies,omitempty"`
}

type MatchedVacancyShortDto struct {
	VacancyID int    `json:"vacancy_id"`
	Title     string `json:"title"`
}

type VacancyDto struct {
	ID               int       `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Requirements     string    `json:"requirements"`
	Company          string    `json:"company"`
	Responsibilities string    `json:"responsibilities"`
	Skills           []string  `json:"skills"`
	SalaryFrom       *int      `json:"salary_from"`
	SalaryTo         *int      `json:"salary_to"`
	Location         string    `json:"location"`
	Source           string    `json:"source"`
	Currency         string    `json:"currency"`
	Experience       string    `json:"experience"`
	URL              string    `json:"url"`
	OriginalID       string    `json:"original_id"`
	Status           string    `json:"status"`
	FormatWork       string    `json:"format_work"`
	CreatedAt        time.Time `json:"created_at"`
}

type MatchDto struct {
	ID                  int       `json:"id"`
	ResumeID            int       `json:"resume_id"`
	VacancyID           int       `json:"vacancy_id"`
	MatchedSkills       []string  `json:"matched_skills"`
	UnmatchedSkills     []string  `json:"unmatched_skills"`
	LLMComment          string    `json:"llm_comment"`
	Score               *float64  `json:"score"`
	Positives           []string  `json:"positives"`
	Negatives           []string  `json:"negatives"`
	Verdict             string    `json:"verdict"`
	ClarifyingQuestions []string  `json:"clarifying_questions"`
	UserID              *int      `json:"user_id"`
	CreatedAt           time.Time `json:"created_at"`
}

func vacancyToDto(v *models.Vacancy) (*VacancyDto, error) {
	skills, err := models.UnmarshalStrings(v.Skills)
	if err != nil {
		return nil, err
	}
	return &VacancyDto{
		ID:               v.ID,
		Title:            v.Title,
		Description:      v.Description,
		Requirements:     v.Requirements,
		Company:          v.Company,
		Responsibilities: v.Responsibilities,
		Skills:           skills,
		SalaryFrom:       v.SalaryFrom,
		SalaryTo:         v.SalaryTo,
		Location:         v.Location,
		Source:           v.Source,
		Currency:         v.Currency,
		Experience:       v.Experience,
		URL:              v.URL,
		OriginalID:       v.OriginalID,
		Status:           v.Status,
		FormatWork:       v.FormatWork,
		CreatedAt:        v.CreatedAt,
	}, nil
}

func matchToDto(m *models.ResumeVacancyMatch) (*MatchDto, error) {
	matched, err := models.UnmarshalStrings(m.MatchedSkills)
	if err != nil {
		return nil, err
	}
	unmatched, err := models.UnmarshalStrings(m.UnmatchedSkills)
	if err != nil {
		return nil, err
	}
	positives, err := models.UnmarshalStrings(m.Positives)
	if err != nil {
		return nil, err
	}
	negatives, err := models.UnmarshalStrings(m.Negatives)
	if err != nil {
		return nil, err
	}
	questions, err := models.UnmarshalStrings(m.ClarifyingQuestions)
	if err != nil {
		return nil, err
	}
	return &MatchDto{
		ID:                  m.ID,
		ResumeID:            m.ResumeID,
		VacancyID:           m.VacancyID,
		MatchedSkills:       matched,
		UnmatchedSkills:     unmatched,
		LLMComment:          m.LLMComment,
		Score:               m.Score,
		Positives:           positives,
		Negatives:           negatives,
		Verdict:             m.Verdict,
		ClarifyingQuestions: questions,
		UserID:              m.UserID,
		CreatedAt:           m.CreatedAt,
	}, nil
}

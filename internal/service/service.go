// Package service реализует бизнес-логику поверх storage.Store и
// клиентов внешних сервисов. Ключевая часть — оркестрация загрузки
// резюме (нормализация → сохранение → быстрое сопоставление) и полного
// сопоставления (скоринг → идемпотентная запись вердикта → продвижение
// статуса кандидата).
package service

import (
	"context"
	"errors"

	"github.com/moverq1337/hr-core/internal/clients"
	"github.com/moverq1337/hr-core/internal/models"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// ErrAccessDenied — попытка изменить или удалить чужой ресурс.
var ErrAccessDenied = errors.New("доступ запрещен")

// Интерфейсы внешних коллабораторов. Реализации живут в internal/clients,
// в тестах подставляются фейки.

type Normalizer interface {
	Normalize(ctx context.Context, file []byte, filename, email string) (*clients.CandidateProfile, error)
}

type FastMatcher interface {
	MatchVacancies(ctx context.Context, request clients.FastMatchRequest) ([]int, error)
}

type FullMatcher interface {
	MatchFull(ctx context.Context, request clients.FullMatchRequest) (*clients.FullMatchResponse, error)
}

type VacancyParser interface {
	Parse(ctx context.Context, source, url string) (*clients.ParsedVacancy, error)
}

type VacancyGenerator interface {
	Generate(ctx context.Context, request clients.GenerateRequest) (*clients.GeneratedVacancy, error)
}

// checkOwner — единая точка проверки владения: мутации резюме и вакансий
// разрешены только их создателю.
func checkOwner(ownerID int, user *models.User) error {
	if user == nil || ownerID != user.ID {
		return ErrAccessDenied
	}
	return nil
}

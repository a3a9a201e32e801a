package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/moverq1337/hr-core/internal/clients"
	"github.com/moverq1337/hr-core/internal/models"
	"github.com/moverq1337/hr-core/internal/storage"
)

func seedPair(t *testing.T, store *storage.Store) (*models.Resume, *models.Vacancy) {
	t.Helper()
	ctx := context.Background()

	hard, err := models.MarshalStrings([]string{"Go", "PostgreSQL"})
	if err != nil {
		t.Fatalf("MarshalStrings: %v", err)
	}
	resume := &models.Resume{Email: "a@b.com", Role: "Engineer", HardSkills: hard, UserID: 1, StatusID: models.StatusNew}
	if err := store.CreateResume(ctx, resume); err != nil {
		t.Fatalf("CreateResume: %v", err)
	}
	vacancy := &models.Vacancy{Title: "Go Developer", Status: "Активная", UserID: 1}
	if err := store.CreateVacancy(ctx, vacancy); err != nil {
		t.Fatalf("CreateVacancy: %v", err)
	}
	return resume, vacancy
}

func TestMatchFullSavesVerdictAndPromotesStatus(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)
	ctx := context.Background()
	resume, vacancy := seedPair(t, store)

	matcher := &fakeFullMatcher{verdict: &clients.FullMatchResponse{
		ResumeID:      resume.ID,
		VacancyID:     vacancy.ID,
		Score:         0.82,
		MatchedSkills: []string{"Go"},
		Verdict:       "подходит",
	}}
	svc := NewMatchService(store, matcher)

	dto, err := svc.MatchFull(ctx, resume.ID, vacancy.ID, testUser(1))
	if err != nil {
		t.Fatalf("MatchFull: %v", err)
	}
	if dto.Score == nil || *dto.Score != 0.82 {
		t.Errorf("оценка: %+v", dto.Score)
	}
	if len(dto.MatchedSkills) != 1 || dto.MatchedSkills[0] != "Go" {
		t.Errorf("matched_skills: %v", dto.MatchedSkills)
	}

	// Наружу ушли полные данные пары, даты — ISO-строкой.
	if matcher.lastReq.Resume.ID != resume.ID || matcher.lastReq.Vacancy.ID != vacancy.ID {
		t.Errorf("запрос скоринга: %+v", matcher.lastReq)
	}
	if _, err := time.Parse(time.RFC3339, matcher.lastReq.Vacancy.CreatedAt); err != nil {
		t.Errorf("createdAt должен быть RFC3339-строкой: %q", matcher.lastReq.Vacancy.CreatedAt)
	}

	saved, err := store.GetMatchByPair(ctx, resume.ID, vacancy.ID)
	if err != nil {
		t.Fatalf("GetMatchByPair: %v", err)
	}
	if saved.Verdict != "подходит" {
		t.Errorf("вердикт: %q", saved.Verdict)
	}

	gotResume, err := store.GetResume(ctx, resume.ID)
	if err != nil {
		t.Fatalf("GetResume: %v", err)
	}
	if gotResume.StatusID != models.StatusMatched {
		t.Errorf("статус кандидата должен продвинуться до «Сопоставлен», получено %d", gotResume.StatusID)
	}
}

func TestMatchFullExternalFailureLeavesNoTrace(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)
	ctx := context.Background()
	resume, vacancy := seedPair(t, store)

	extErr := &clients.ExternalError{Service: "полного сопоставления", Status: 503}
	svc := NewMatchService(store, &fakeFullMatcher{err: extErr})

	_, err := svc.MatchFull(ctx, resume.ID, vacancy.ID, testUser(1))
	var got *clients.ExternalError
	if !errors.As(err, &got) {
		t.Fatalf("ожидалась ExternalError, получено %v", err)
	}

	// Ни вердикта, ни смены статуса.
	if _, err := store.GetMatchByPair(ctx, resume.ID, vacancy.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("вердикт не должен сохраняться: %v", err)
	}
	gotResume, err := store.GetResume(ctx, resume.ID)
	if err != nil {
		t.Fatalf("GetResume: %v", err)
	}
	if gotResume.StatusID != models.StatusNew {
		t.Errorf("статус не должен меняться: %d", gotResume.StatusID)
	}
}

func TestMatchFullRepeatOverwritesInPlace(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)
	ctx := context.Background()
	resume, vacancy := seedPair(t, store)

	matcher := &fakeFullMatcher{verdict: &clients.FullMatchResponse{
		ResumeID:  resume.ID,
		VacancyID: vacancy.ID,
		Score:     0.5,
		Verdict:   "средний кандидат",
	}}
	svc := NewMatchService(store, matcher)

	first, err := svc.MatchFull(ctx, resume.ID, vacancy.ID, testUser(1))
	if err != nil {
		t.Fatalf("первый MatchFull: %v", err)
	}

	matcher.verdict = &clients.FullMatchResponse{
		ResumeID:  resume.ID,
		VacancyID: vacancy.ID,
		Score:     0.9,
		Verdict:   "сильный кандидат",
	}
	second, err := svc.MatchFull(ctx, resume.ID, vacancy.ID, testUser(1))
	if err != nil {
		t.Fatalf("повторный MatchFull: %v", err)
	}

	// Та же строка, новые поля: last-write-wins по естественному ключу.
	if second.ID != first.ID {
		t.Errorf("повтор должен переписать строку, а не создать новую: %d vs %d", first.ID, second.ID)
	}
	if second.Score == nil || *second.Score != 0.9 || second.Verdict != "сильный кандидат" {
		t.Errorf("вердикт не перезаписан: %+v", second)
	}

	all, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("ожидалась одна запись, получено %d", len(all))
	}
}

func TestMatchFullUnknownResume(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)
	_, vacancy := seedPair(t, store)

	svc := NewMatchService(store, &fakeFullMatcher{})
	_, err := svc.MatchFull(context.Background(), 9999, vacancy.ID, testUser(1))
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("ожидалась ErrNotFound, получено %v", err)
	}
}

func TestMatchCreateDuplicatePair(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)
	ctx := context.Background()
	resume, vacancy := seedPair(t, store)

	svc := NewMatchService(store, &fakeFullMatcher{})
	score := 0.7
	if _, err := svc.Create(ctx, &MatchDto{ResumeID: resume.ID, VacancyID: vacancy.ID, Score: &score}, testUser(1)); err != nil {
		t.Fatalf("Create: %v", err)
	}
	_, err := svc.Create(ctx, &MatchDto{ResumeID: resume.ID, VacancyID: vacancy.ID, Score: &score}, testUser(1))
	if !errors.Is(err, storage.ErrConflict) {
		t.Errorf("ожидалась ErrConflict, получено %v", err)
	}
}

package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/moverq1337/hr-core/internal/auth"
	"github.com/moverq1337/hr-core/internal/clients"
	"github.com/moverq1337/hr-core/internal/models"
	"github.com/moverq1337/hr-core/internal/storage"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestStore(t *testing.T) *storage.Store {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "core.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("открытие базы: %v", err)
	}
	store := storage.New(db)
	if err := store.AutoMigrate(); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}
	return store
}

func testUser(id int) *models.User {
	return &models.User{ID: id, Username: "hr", Email: "hr@corp.ru", Role: "USER"}
}

func newTestAuth() *auth.Manager {
	return auth.NewManager("test-secret")
}

// --- фейки внешних сервисов ---

type fakeNormalizer struct {
	profile *clients.CandidateProfile
	err     error
}

func (f *fakeNormalizer) Normalize(ctx context.Context, file []byte, filename, email string) (*clients.CandidateProfile, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.profile, nil
}

type fakeFastMatcher struct {
	ids     []int
	err     error
	lastReq clients.FastMatchRequest
	calls   int
}

func (f *fakeFastMatcher) MatchVacancies(ctx context.Context, request clients.FastMatchRequest) ([]int, error) {
	f.calls++
	f.lastReq = request
	if f.err != nil {
		return nil, f.err
	}
	return f.ids, nil
}

type fakeFullMatcher struct {
	verdict *clients.FullMatchResponse
	err     error
	lastReq clients.FullMatchRequest
}

func (f *fakeFullMatcher) MatchFull(ctx context.Context, request clients.FullMatchRequest) (*clients.FullMatchResponse, error) {
	f.lastReq = request
	if f.err != nil {
		return nil, f.err
	}
	return f.verdict, nil
}

type fakeParser struct {
	vacancy *clients.ParsedVacancy
	err     error
}

func (f *fakeParser) Parse(ctx context.Context, source, url string) (*clients.ParsedVacancy, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.vacancy, nil
}

type fakeGenerator struct {
	vacancy *clients.GeneratedVacancy
	err     error
}

func (f *fakeGenerator) Generate(ctx context.Context, request clients.GenerateRequest) (*clients.GeneratedVacancy, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.vacancy, nil
}

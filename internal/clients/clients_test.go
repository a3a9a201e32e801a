package clients

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

func TestLLMClientNormalize(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/resume/upload-resume" {
			t.Errorf("неожиданный путь %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("multipart: %v", err)
		}
		if got := r.FormValue("email"); got != "a@b.com" {
			t.Errorf("email = %q", got)
		}
		f, _, err := r.FormFile("file")
		if err != nil {
			t.Errorf("file: %v", err)
		} else {
			data, _ := io.ReadAll(f)
			if string(data) != "%PDF-fake" {
				t.Errorf("содержимое файла: %q", data)
			}
		}
		json.NewEncoder(w).Encode(CandidateProfile{
			Name:       "Иван Иванов",
			Role:       "Engineer",
			HardSkills: []string{"Go"},
		})
	}))
	defer srv.Close()

	c := NewLLMClient(srv.URL, srv.Client())
	profile, err := c.Normalize(context.Background(), []byte("%PDF-fake"), "cv.pdf", "a@b.com")
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if profile.Name != "Иван Иванов" || profile.Role != "Engineer" {
		t.Errorf("профиль: %+v", profile)
	}
}

func TestLLMClientMatchVacancies(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/resume/match-vacancies" {
			t.Errorf("неожиданный путь %s", r.URL.Path)
		}
		var req FastMatchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode: %v", err)
		}
		if req.Resume.DesiredRole != "Engineer" {
			t.Errorf("desired_role = %q", req.Resume.DesiredRole)
		}
		// Сервис может вернуть повторяющиеся идентификаторы — клиент
		// отдает их как есть.
		json.NewEncoder(w).Encode(map[string][]int{"matched_vacancy_ids": {3, 7, 3}})
	}))
	defer srv.Close()

	c := NewLLMClient(srv.URL, srv.Client())
	ids, err := c.MatchVacancies(context.Background(), FastMatchRequest{
		Resume: FastMatchResume{ID: 1, DesiredRole: "Engineer"},
	})
	if err != nil {
		t.Fatalf("MatchVacancies: %v", err)
	}
	if !reflect.DeepEqual(ids, []int{3, 7, 3}) {
		t.Errorf("ids = %v", ids)
	}
}

func TestScoreClientMatchFull(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/match-full" {
			t.Errorf("неожиданный путь %s", r.URL.Path)
		}
		var req FullMatchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode: %v", err)
		}
		json.NewEncoder(w).Encode(FullMatchResponse{
			ResumeID:  req.Resume.ID,
			VacancyID: req.Vacancy.ID,
			Score:     0.82,
			Verdict:   "подходит",
		})
	}))
	defer srv.Close()

	c := NewScoreClient(srv.URL, srv.Client())
	verdict, err := c.MatchFull(context.Background(), FullMatchRequest{
		Resume:  ResumeExternal{ID: 10},
		Vacancy: VacancyExternal{ID: 20},
	})
	if err != nil {
		t.Fatalf("MatchFull: %v", err)
	}
	if verdict.ResumeID != 10 || verdict.VacancyID != 20 || verdict.Score != 0.82 {
		t.Errorf("вердикт: %+v", verdict)
	}
}

func TestScoreClientNon2xx(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewScoreClient(srv.URL, srv.Client())
	_, err := c.MatchFull(context.Background(), FullMatchRequest{})
	var extErr *ExternalError
	if !errors.As(err, &extErr) {
		t.Fatalf("ожидалась ExternalError, получено %v", err)
	}
	if extErr.Status != http.StatusInternalServerError {
		t.Errorf("статус: %d", extErr.Status)
	}
}

func TestScoreClientBrokenBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "{not json")
	}))
	defer srv.Close()

	c := NewScoreClient(srv.URL, srv.Client())
	_, err := c.MatchFull(context.Background(), FullMatchRequest{})
	var extErr *ExternalError
	if !errors.As(err, &extErr) {
		t.Fatalf("ожидалась ExternalError, получено %v", err)
	}
}

func TestParserClientKnownSources(t *testing.T) {
	t.Parallel()

	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		var req map[string]string
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode: %v", err)
		}
		if req["url"] != "https://hh.ru/vacancy/1" {
			t.Errorf("url = %q", req["url"])
		}
		json.NewEncoder(w).Encode(map[string]ParsedVacancy{
			"vacancy": {OriginalID: "1", Title: "Go Developer", Company: "Банк"},
		})
	}))
	defer srv.Close()

	c := NewParserClient(srv.URL, srv.Client())
	v, err := c.Parse(context.Background(), "HH", "https://hh.ru/vacancy/1")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if gotPath != "/parse/parse-vacancy" {
		t.Errorf("путь: %s", gotPath)
	}
	if v.Title != "Go Developer" || v.OriginalID != "1" {
		t.Errorf("вакансия: %+v", v)
	}
}

func TestParserClientUnknownSource(t *testing.T) {
	t.Parallel()

	c := NewParserClient("http://localhost:1", nil)
	_, err := c.Parse(context.Background(), "linkedin", "https://example.com")
	if err == nil {
		t.Fatal("ожидалась ошибка для неизвестного источника")
	}
}

func TestLLMClientGenerate(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/parse/generate" {
			t.Errorf("неожиданный путь %s", r.URL.Path)
		}
		from, to := 200000, 300000
		json.NewEncoder(w).Encode(GeneratedVacancy{
			Title:      "Senior Go Developer",
			Company:    "Банк",
			SalaryFrom: &from,
			SalaryTo:   &to,
		})
	}))
	defer srv.Close()

	c := NewLLMClient(srv.URL, srv.Client())
	v, err := c.Generate(context.Background(), GenerateRequest{Position: "Go Developer"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if v.Title != "Senior Go Developer" || v.SalaryFrom == nil || *v.SalaryFrom != 200000 {
		t.Errorf("вакансия: %+v", v)
	}
}

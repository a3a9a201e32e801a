package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"
)

// LLMClient ходит в llm-integration-service: нормализация резюме,
// быстрое сопоставление и AI-генерация вакансий.
type LLMClient struct {
	baseURL string
	client  *http.Client
}

func NewLLMClient(baseURL string, httpClient *http.Client) *LLMClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &LLMClient{baseURL: strings.TrimRight(baseURL, "/"), client: httpClient}
}

// Normalize отправляет PDF и email кандидата на нормализацию и получает
// структурированный профиль. Любой неуспех прерывает загрузку резюме.
func (c *LLMClient) Normalize(ctx context.Context, file []byte, filename, email string) (*CandidateProfile, error) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("multipart: %w", err)
	}
	if _, err := part.Write(file); err != nil {
		return nil, fmt.Errorf("multipart: %w", err)
	}
	if err := w.WriteField("email", email); err != nil {
		return nil, fmt.Errorf("multipart: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/resume/upload-resume", body)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var profile CandidateProfile
	if err := c.do(req, "нормализации", &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// MatchVacancies запрашивает быстрое сопоставление и возвращает
// идентификаторы подошедших вакансий, как их отдал сервис — без
// дедупликации на этой стороне.
func (c *LLMClient) MatchVacancies(ctx context.Context, request FastMatchRequest) ([]int, error) {
	req, err := newJSONRequest(ctx, c.baseURL+"/resume/match-vacancies", request)
	if err != nil {
		return nil, err
	}
	var resp fastMatchResponse
	if err := c.do(req, "быстрого сопоставления", &resp); err != nil {
		return nil, err
	}
	return resp.MatchedVacancyIDs, nil
}

// Generate просит AI собрать вакансию по брифу.
func (c *LLMClient) Generate(ctx context.Context, request GenerateRequest) (*GeneratedVacancy, error) {
	req, err := newJSONRequest(ctx, c.baseURL+"/parse/generate", request)
	if err != nil {
		return nil, err
	}
	var v GeneratedVacancy
	if err := c.do(req, "генерации вакансии", &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (c *LLMClient) do(req *http.Request, service string, out any) error {
	return doRequest(c.client, req, service, out)
}

func newJSONRequest(ctx context.Context, url string, payload any) (*http.Request, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func doRequest(client *http.Client, req *http.Request, service string, out any) error {
	resp, err := client.Do(req)
	if err != nil {
		return &ExternalError{Service: service, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &ExternalError{Service: service, Status: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ExternalError{Service: service, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

package clients

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// ParserClient ходит в jobs-parser-service: по одному эндпоинту на
// каждый поддерживаемый источник вакансий.
type ParserClient struct {
	baseURL string
	client  *http.Client
}

func NewParserClient(baseURL string, httpClient *http.Client) *ParserClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &ParserClient{baseURL: strings.TrimRight(baseURL, "/"), client: httpClient}
}

var parserPaths = map[string]string{
	"hh":       "/parse/parse-vacancy",
	"habr":     "/parse/parse-habr-vacancy",
	"getmatch": "/parse/parse-getmatch-vacancy",
}

// Parse снимает вакансию по URL с одного из известных источников.
func (c *ParserClient) Parse(ctx context.Context, source, url string) (*ParsedVacancy, error) {
	path, ok := parserPaths[strings.ToLower(source)]
	if !ok {
		return nil, fmt.Errorf("неизвестный source: %s", source)
	}

	req, err := newJSONRequest(ctx, c.baseURL+path, map[string]string{"url": url})
	if err != nil {
		return nil, err
	}
	var resp struct {
		Vacancy ParsedVacancy `json:"vacancy"`
	}
	if err := doRequest(c.client, req, "парсинга вакансии", &resp); err != nil {
		return nil, err
	}
	return &resp.Vacancy, nil
}

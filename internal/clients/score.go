package clients

import (
	"context"
	"net/http"
	"strings"
)

// ScoreClient ходит в resume-score-service за полным сопоставлением
// резюме и вакансии.
type ScoreClient struct {
	baseURL string
	client  *http.Client
}

func NewScoreClient(baseURL string, httpClient *http.Client) *ScoreClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &ScoreClient{baseURL: strings.TrimRight(baseURL, "/"), client: httpClient}
}

// MatchFull отправляет полные данные пары и возвращает вердикт скоринга.
func (c *ScoreClient) MatchFull(ctx context.Context, request FullMatchRequest) (*FullMatchResponse, error) {
	req, err := newJSONRequest(ctx, c.baseURL+"/api/match-full", request)
	if err != nil {
		return nil, err
	}
	var verdict FullMatchResponse
	if err := doRequest(c.client, req, "полного сопоставления", &verdict); err != nil {
		return nil, err
	}
	return &verdict, nil
}

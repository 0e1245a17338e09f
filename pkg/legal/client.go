package legal

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// IClient is the gateway to the external legal-records API. It is a one-way
// adapter: wire shapes in, domain models out, no caching.
type IClient interface {
	ListByDocument(ctx context.Context, document string) (*ProcessSet, error)
	GetDetail(ctx context.Context, code string) (*ProcessDetail, error)
}

type client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) IClient {
	return &client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// --- Wire shapes (internal to the adapter) ---

type processPayload struct {
	InternalCode    string `json:"internalCode"`
	Status          string `json:"status"`
	Tag             string `json:"tag"`
	Registration    string `json:"registrationNumber"`
	Court           string `json:"court"`
	City            string `json:"city"`
	LastPerformance string `json:"lastPerformance"`
	UpdatedAt       string `json:"updatedAt"`
}

type listEnvelope struct {
	Active         *[]processPayload `json:"active"`
	Finalized      *[]processPayload `json:"finalized"`
	TotalActive    int               `json:"totalActive"`
	TotalFinalized int               `json:"totalFinalized"`
}

type partyPayload struct {
	Name     string `json:"name"`
	Document string `json:"document"`
}

type performancePayload struct {
	Type        string `json:"performanceType"`
	Responsible string `json:"responsible"`
	Observation string `json:"observation"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

type recordPayload struct {
	InternalCode string               `json:"internalCode"`
	Registration string               `json:"registrationNumber"`
	Court        string               `json:"court"`
	City         string               `json:"city"`
	Tag          string               `json:"tag"`
	Plaintiffs   []partyPayload       `json:"plaintiffs"`
	Defendants   []partyPayload       `json:"defendants"`
	Performances []performancePayload `json:"performances"`
}

type detailEnvelope struct {
	Record *recordPayload `json:"record"`
	Error  string         `json:"error"`
}

// --- Operations ---

func (c *client) ListByDocument(ctx context.Context, document string) (*ProcessSet, error) {
	params := url.Values{}
	params.Add("document", document)

	body, status, err := c.get(ctx, "/processes?"+params.Encode())
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrInvalidResponse, status)
	}

	var envelope listEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if envelope.Active == nil || envelope.Finalized == nil {
		return nil, fmt.Errorf("%w: missing process collections", ErrInvalidResponse)
	}

	set := &ProcessSet{
		Active:    make([]ProcessSummary, 0, len(*envelope.Active)),
		Finalized: make([]ProcessSummary, 0, len(*envelope.Finalized)),
	}
	for _, p := range *envelope.Active {
		set.Active = append(set.Active, mapSummary(p))
	}
	for _, p := range *envelope.Finalized {
		set.Finalized = append(set.Finalized, mapSummary(p))
	}
	return set, nil
}

func (c *client) GetDetail(ctx context.Context, code string) (*ProcessDetail, error) {
	body, status, err := c.get(ctx, "/process/"+url.PathEscape(code))
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrProcessNotFound, code)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrInvalidResponse, status)
	}

	var envelope detailEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if envelope.Record == nil {
		// Some upstream versions answer 200 with an error body instead of 404.
		if envelope.Error != "" {
			return nil, fmt.Errorf("%w: %s", ErrProcessNotFound, code)
		}
		return nil, fmt.Errorf("%w: missing record", ErrInvalidResponse)
	}

	return mapDetail(*envelope.Record), nil
}

func (c *client) get(ctx context.Context, path string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrConnection, err)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrConnection, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrConnection, err)
	}
	return body, resp.StatusCode, nil
}

// --- Mapping ---

func mapSummary(p processPayload) ProcessSummary {
	return ProcessSummary{
		Code:            p.InternalCode,
		Status:          p.Status,
		Tag:             p.Tag,
		Registration:    p.Registration,
		Court:           p.Court,
		City:            p.City,
		LastPerformance: p.LastPerformance,
		UpdatedAt:       parseTime(p.UpdatedAt),
	}
}

func mapDetail(r recordPayload) *ProcessDetail {
	performances := make([]Performance, 0, len(r.Performances))
	for _, p := range r.Performances {
		performances = append(performances, Performance{
			Type:        p.Type,
			Responsible: p.Responsible,
			Observation: p.Observation,
			CreatedAt:   parseTime(p.CreatedAt),
			UpdatedAt:   parseTime(p.UpdatedAt),
		})
	}

	detail := &ProcessDetail{
		ProcessSummary: ProcessSummary{
			Code:         r.InternalCode,
			Registration: r.Registration,
			Court:        r.Court,
			City:         r.City,
			Tag:          r.Tag,
			Status:       CurrentStatus(performances),
		},
		Plaintiffs:   mapParties(r.Plaintiffs),
		Defendants:   mapParties(r.Defendants),
		Performances: performances,
	}
	detail.NextMilestone = detail.Status
	if len(performances) > 0 {
		latest := performances[0]
		for _, p := range performances[1:] {
			if p.UpdatedAt.After(latest.UpdatedAt) {
				latest = p
			}
		}
		detail.UpdatedAt = latest.UpdatedAt
		detail.LastPerformance = latest.Type
	}
	return detail
}

func mapParties(parties []partyPayload) []Party {
	out := make([]Party, 0, len(parties))
	for _, p := range parties {
		out = append(out, Party{Name: p.Name, Document: p.Document})
	}
	return out
}

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Package epss fetches exploit-prediction scores from the FIRST EPSS API and
// folds them into the exploit-maturity vocabulary the decision engine
// understands. It backs records whose source data carries a CVE ID but no
// usable exploit-maturity label.
package epss

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	apiBaseURL        = "https://api.first.org/data/v1/epss"
	maxCVEsPerRequest = 80
	requestTimeout    = 15 * time.Second
)

type epssResponse struct {
	Data []struct {
		CVE        string `json:"cve"`
		EPSS       string `json:"epss"`
		Date       string `json:"date"`
		Percentile string `json:"percentile"`
	} `json:"data"`
}

// Data holds EPSS score, percentile, and date for a CVE.
type Data struct {
	Score      float64
	Percentile float64
	Date       string
}

// Client fetches EPSS scores from the FIRST API.
type Client struct {
	HTTPClient *http.Client
}

// NewClient returns a client with default timeout.
func NewClient() *Client {
	return &Client{HTTPClient: &http.Client{Timeout: requestTimeout}}
}

// FetchScores returns a map of CVE ID -> EPSS data for the given CVE IDs,
// batching requests to stay under the API's per-request limit.
func (c *Client) FetchScores(cveIDs []string) (map[string]Data, error) {
	result := make(map[string]Data)
	for i := 0; i < len(cveIDs); i += maxCVEsPerRequest {
		end := min(i+maxCVEsPerRequest, len(cveIDs))
		got, err := c.fetchBatch(cveIDs[i:end])
		if err != nil {
			return result, err
		}
		for k, v := range got {
			result[k] = v
		}
	}
	return result, nil
}

func (c *Client) fetchBatch(cveIDs []string) (map[string]Data, error) {
	params := url.Values{}
	params.Set("cve", strings.Join(cveIDs, ","))
	req, err := http.NewRequest(http.MethodGet, apiBaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("epss request: %w", err)
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("epss request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("epss api: status %s", resp.Status)
	}
	var body epssResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("epss decode: %w", err)
	}
	out := make(map[string]Data)
	for _, d := range body.Data {
		score, err := strconv.ParseFloat(d.EPSS, 64)
		if err != nil {
			continue
		}
		percentile, _ := strconv.ParseFloat(d.Percentile, 64)
		out[d.CVE] = Data{Score: score, Percentile: percentile, Date: d.Date}
	}
	return out, nil
}

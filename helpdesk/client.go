// Copyright 2026 Helix Data Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package helpdesk

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/helixdata/desksync/config"
	"github.com/helixdata/desksync/core"
)

// permissionRegistered is the article visibility level the pipeline syncs.
// Articles restricted further (agents only) or open to anonymous users are
// managed by other flows.
const permissionRegistered = "REGISTEREDUSERS"

// Client fetches article metadata and content from the helpdesk REST API
// using the OAuth refresh-token flow.
type Client struct {
	cfg    config.HelpdeskConfig
	hc     *http.Client
	logger *slog.Logger
}

// NewClient creates a helpdesk API client from the given configuration.
func NewClient(cfg config.HelpdeskConfig) *Client {
	return &Client{
		cfg:    cfg,
		hc:     &http.Client{Timeout: 30 * time.Second},
		logger: slog.Default().With("component", "helpdesk"),
	}
}

// tokenResponse is the OAuth token endpoint payload.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

// articlePayload is the wire shape of an article in the API listing.
type articlePayload struct {
	ID                  string   `json:"id"`
	Title               string   `json:"title"`
	Answer              string   `json:"answer"` // HTML body
	Summary             string   `json:"summary"`
	Tags                []string `json:"tags"`
	Category            string   `json:"category"`
	SubCategory         string   `json:"subCategory"`
	DepartmentID        string   `json:"departmentId"`
	WebURL              string   `json:"webUrl"`
	Permission          string   `json:"permission"`
	LatestVersionStatus string   `json:"latestVersionStatus"`
	IsTrashed           bool     `json:"isTrashed"`
	CreatedTime         string   `json:"createdTime"`
	ModifiedTime        string   `json:"modifiedTime"`
}

// articlePage is one page of the listing endpoint.
type articlePage struct {
	Data []articlePayload `json:"data"`
}

// accessToken exchanges the refresh token for an access token.
func (c *Client) accessToken(ctx context.Context) (string, error) {
	form := url.Values{
		"grant_type":    {"refresh_token"},
		"client_id":     {c.cfg.ClientID},
		"client_secret": {c.cfg.ClientSecret},
		"redirect_uri":  {c.cfg.RedirectURI},
		"refresh_token": {c.cfg.RefreshToken},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.hc.Do(req)
	if err != nil {
		return "", fmt.Errorf("requesting access token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("%w: token endpoint returned %d: %s", ErrAuthFailed, resp.StatusCode, body)
	}

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return "", fmt.Errorf("decoding token response: %w", err)
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("%w: empty access token", ErrAuthFailed)
	}
	return tok.AccessToken, nil
}

// FetchArticles retrieves all published, registered-user-visible articles
// for the configured department and category, walking the paginated listing
// until an empty page. HTML bodies are stripped to plain text and all
// strings are NFKC-normalized.
func (c *Client) FetchArticles(ctx context.Context) ([]core.Article, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	var articles []core.Article
	for from := 1; ; from += c.cfg.PageSize {
		page, err := c.fetchPage(ctx, token, from)
		if err != nil {
			return nil, err
		}
		if len(page) == 0 {
			break
		}

		for _, payload := range page {
			article, keep := c.normalize(payload)
			if !keep {
				continue
			}
			if err := core.ValidateArticle(&article); err != nil {
				c.logger.Warn("dropping invalid article", "id", payload.ID, "err", err)
				continue
			}
			articles = append(articles, article)
		}

		if len(page) < c.cfg.PageSize {
			break
		}
	}

	c.logger.Info("fetched articles", "count", len(articles))
	return articles, nil
}

func (c *Client) fetchPage(ctx context.Context, token string, from int) ([]articlePayload, error) {
	u, err := url.Parse(c.cfg.ArticlesURL)
	if err != nil {
		return nil, fmt.Errorf("parsing articles URL: %w", err)
	}
	q := u.Query()
	q.Set("from", strconv.Itoa(from))
	q.Set("limit", strconv.Itoa(c.cfg.PageSize))
	if c.cfg.DepartmentID != "" {
		q.Set("departmentId", c.cfg.DepartmentID)
	}
	if c.cfg.CategoryID != "" {
		q.Set("categoryId", c.cfg.CategoryID)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching articles from %d: %w", from, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("articles endpoint returned %d: %s", resp.StatusCode, body)
	}

	var page articlePage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("decoding articles page: %w", err)
	}
	return page.Data, nil
}

// normalize maps a wire payload to a domain article and reports whether the
// article should enter the pipeline at all.
func (c *Client) normalize(payload articlePayload) (core.Article, bool) {
	if payload.LatestVersionStatus != core.StatusPublished || payload.IsTrashed {
		return core.Article{}, false
	}
	if payload.Permission != permissionRegistered {
		return core.Article{}, false
	}

	article := core.Article{
		ID:           normalizeText(payload.ID),
		Title:        normalizeText(payload.Title),
		Body:         HTMLToText(payload.Answer),
		Summary:      normalizeText(payload.Summary),
		Category:     normalizeText(payload.Category),
		SubCategory:  normalizeText(payload.SubCategory),
		Department:   payload.DepartmentID,
		Link:         payload.WebURL,
		Permission:   payload.Permission,
		Status:       payload.LatestVersionStatus,
		Trashed:      payload.IsTrashed,
		CreatedTime:  parseTime(payload.CreatedTime),
		ModifiedTime: parseTime(payload.ModifiedTime),
	}
	for _, tag := range payload.Tags {
		article.Tags = append(article.Tags, normalizeText(tag))
	}
	return article, true
}

// parseTime parses the API's RFC 3339 timestamps; malformed or missing
// values become the zero time.
func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}

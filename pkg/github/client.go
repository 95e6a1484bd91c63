package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	githuboauth "golang.org/x/oauth2/github"
)

// Client wraps the pieces of the GitHub API the backend relies on: the OAuth
// code exchange, the authenticated-user lookup, and the GraphQL issue fetch.
type Client struct {
	Conf       *oauth2.Config
	APIBaseURL string
	GraphQLURL string
	HTTPClient *http.Client
}

func NewClient(clientID, clientSecret string) *Client {
	conf := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     githuboauth.Endpoint,
	}

	return &Client{
		Conf:       conf,
		APIBaseURL: "https://api.github.com",
		GraphQLURL: "https://api.github.com/graphql",
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// GetAccessToken exchanges an authorization code for an access token.
func (c *Client) GetAccessToken(ctx context.Context, code string) (string, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.HTTPClient)
	token, err := c.Conf.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("code exchange failed: %w", err)
	}
	if token.AccessToken == "" {
		return "", fmt.Errorf("no access token received")
	}
	return token.AccessToken, nil
}

// GetUserLogin resolves an access token to the GitHub login it belongs to.
func (c *Client) GetUserLogin(ctx context.Context, accessToken string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.APIBaseURL+"/user", nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("github request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", &APIError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("github user lookup failed: %s", string(body)),
		}
	}

	var user struct {
		Login string `json:"login"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return "", fmt.Errorf("decode user: %w", err)
	}
	if user.Login == "" {
		return "", fmt.Errorf("no github login is associated with given access token")
	}
	return user.Login, nil
}

// IssueRef identifies a single issue in a repository.
type IssueRef struct {
	OwnerName   string `json:"ownerName" validate:"required"`
	RepoName    string `json:"repoName" validate:"required"`
	IssueNumber int    `json:"issueNumber" validate:"required"`
}

// Issue is the fetched issue content fed back into the assistant as context.
type Issue struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// GetIssue fetches an issue's title and body through the GraphQL API.
func (c *Client) GetIssue(ctx context.Context, accessToken string, ref IssueRef) (*Issue, error) {
	query := fmt.Sprintf(`
	query {
		repository(owner: %q, name: %q) {
			issue(number: %d) {
				title
				body
			}
		}
	}`, ref.OwnerName, ref.RepoName, ref.IssueNumber)

	payload, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return nil, fmt.Errorf("marshal query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.GraphQLURL, bytes.NewBuffer(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("github request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("github issue fetch failed: %s", string(bodyBytes)),
		}
	}

	var result struct {
		Data struct {
			Repository struct {
				Issue *Issue `json:"issue"`
			} `json:"repository"`
		} `json:"data"`
	}
	if err := json.Unmarshal(bodyBytes, &result); err != nil {
		return nil, fmt.Errorf("decode issue: %w", err)
	}
	if result.Data.Repository.Issue == nil {
		return nil, fmt.Errorf("unable to fetch issue %s/%s#%d", ref.OwnerName, ref.RepoName, ref.IssueNumber)
	}
	return result.Data.Repository.Issue, nil
}

// APIError carries the upstream status of a failed GitHub call.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
}

package services

import (
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"
)

// Jira collaborator: read-only issue lookups for linked keys. Failures here
// never touch core entities; these calls live on their own request paths.

const (
	jiraIssueTimeout   = 15 * time.Second
	jiraSubtaskTimeout = 10 * time.Second
	expiryWarningDays  = 30
)

type JiraClient struct {
	BaseURL string
	Email   string
	Token   string
	Expiry  string

	client    *http.Client
	subClient *http.Client
}

func NewJiraClientFromEnv() *JiraClient {
	// The on-premise chain uses self-signed certificates.
	transport := &http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
	}
	return &JiraClient{
		BaseURL:   os.Getenv("JIRA_BASE_URL"),
		Email:     os.Getenv("JIRA_EMAIL"),
		Token:     os.Getenv("JIRA_API_TOKEN"),
		Expiry:    os.Getenv("JIRA_API_EXPIRY"),
		client:    &http.Client{Timeout: jiraIssueTimeout, Transport: transport},
		subClient: &http.Client{Timeout: jiraSubtaskTimeout, Transport: transport},
	}
}

type JiraConfigInfo struct {
	BaseURL         string `json:"baseUrl"`
	ExpiryDate      string `json:"expiryDate"`
	DaysUntilExpiry int    `json:"daysUntilExpiry"`
	IsExpired       bool   `json:"isExpired"`
	ShowWarning     bool   `json:"showWarning"`
}

// Config reports the API token expiry window so the UI can warn ahead of time.
func (c *JiraClient) Config() (JiraConfigInfo, error) {
	expiry, err := time.Parse("2006-01-02", c.Expiry)
	if err != nil {
		return JiraConfigInfo{}, serviceErr(CategoryConfig, "JIRA_API_EXPIRY is not a valid date", err)
	}

	days := int(time.Until(expiry).Hours() / 24)
	return JiraConfigInfo{
		BaseURL:         c.BaseURL,
		ExpiryDate:      c.Expiry,
		DaysUntilExpiry: days,
		IsExpired:       days < 0,
		ShowWarning:     days <= expiryWarningDays,
	}, nil
}

type JiraIssue struct {
	Key            string `json:"key"`
	Summary        string `json:"summary"`
	Status         string `json:"status"`
	StatusCategory string `json:"statusCategory"`
	IssueType      string `json:"issueType"`
	Priority       string `json:"priority"`
	Assignee       string `json:"assignee"`
	URL            string `json:"url"`
}

type JiraIssueTree struct {
	Issue    JiraIssue   `json:"issue"`
	Children []JiraIssue `json:"children"`
}

type jiraName struct {
	Name string `json:"name"`
}

type jiraFields struct {
	Summary string `json:"summary"`
	Status  struct {
		Name           string   `json:"name"`
		StatusCategory jiraName `json:"statusCategory"`
	} `json:"status"`
	IssueType jiraName  `json:"issuetype"`
	Priority  *jiraName `json:"priority"`
	Assignee  *struct {
		DisplayName string `json:"displayName"`
	} `json:"assignee"`
	Subtasks []jiraIssueRef `json:"subtasks"`
}

// Subtask references sometimes arrive with partial fields; decode what is there.
type jiraIssueRef struct {
	Key    string     `json:"key"`
	Fields jiraFields `json:"fields"`
}

func (c *JiraClient) issueFromFields(key string, f jiraFields) JiraIssue {
	issue := JiraIssue{
		Key:            key,
		Summary:        f.Summary,
		Status:         "Unknown",
		StatusCategory: "Unknown",
		IssueType:      "Unknown",
		Assignee:       "Unassigned",
		URL:            fmt.Sprintf("%s/browse/%s", c.BaseURL, key),
	}
	if f.Status.Name != "" {
		issue.Status = f.Status.Name
	}
	if f.Status.StatusCategory.Name != "" {
		issue.StatusCategory = f.Status.StatusCategory.Name
	}
	if f.IssueType.Name != "" {
		issue.IssueType = f.IssueType.Name
	}
	if f.Priority != nil {
		issue.Priority = f.Priority.Name
	}
	if f.Assignee != nil && f.Assignee.DisplayName != "" {
		issue.Assignee = f.Assignee.DisplayName
	}
	return issue
}

func (c *JiraClient) get(client *http.Client, rawURL string, out any) error {
	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		return serviceErr(CategoryConfig, "invalid Jira URL", err)
	}
	req.SetBasicAuth(c.Email, c.Token)
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return classify("Jira request failed", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return serviceErr(CategoryNotFound, "issue not found", nil)
	case resp.StatusCode != http.StatusOK:
		return serviceErr(CategoryUpstream, fmt.Sprintf("Jira API error: %d", resp.StatusCode), nil)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return serviceErr(CategoryDecode, "invalid JSON response from Jira", err)
	}
	return nil
}

// FetchIssue pulls an issue plus its children: subtasks are fetched one by one
// for assignee detail (falling back to the embedded reference when a fetch
// fails), and epic/parent children come from a best-effort JQL search.
func (c *JiraClient) FetchIssue(issueKey string) (*JiraIssueTree, error) {
	if c.Email == "" {
		return nil, serviceErr(CategoryConfig, "JIRA_EMAIL environment variable not set", nil)
	}

	var root jiraIssueRef
	issueURL := fmt.Sprintf("%s/rest/api/3/issue/%s", c.BaseURL, url.PathEscape(issueKey))
	if err := c.get(c.client, issueURL, &root); err != nil {
		if se, ok := AsServiceError(err); ok && se.Category == CategoryNotFound {
			return nil, serviceErr(CategoryNotFound, fmt.Sprintf("Issue %s not found", issueKey), nil)
		}
		return nil, err
	}

	tree := &JiraIssueTree{
		Issue:    c.issueFromFields(issueKey, root.Fields),
		Children: []JiraIssue{},
	}

	for _, ref := range root.Fields.Subtasks {
		var sub jiraIssueRef
		subURL := fmt.Sprintf("%s/rest/api/3/issue/%s?fields=%s",
			c.BaseURL, url.PathEscape(ref.Key),
			url.QueryEscape("summary,status,issuetype,priority,assignee"))
		if err := c.get(c.subClient, subURL, &sub); err != nil {
			// Limited data from the reference is better than dropping the row.
			fallback := c.issueFromFields(ref.Key, ref.Fields)
			fallback.IssueType = "Subtask"
			fallback.Priority = ""
			fallback.Assignee = "Unassigned"
			tree.Children = append(tree.Children, fallback)
			continue
		}
		tree.Children = append(tree.Children, c.issueFromFields(ref.Key, sub.Fields))
	}

	c.appendEpicChildren(issueKey, tree)
	return tree, nil
}

// appendEpicChildren searches for issues linked through "Parent Link" or
// "Epic Link". Epic children are optional; search failures are swallowed.
func (c *JiraClient) appendEpicChildren(issueKey string, tree *JiraIssueTree) {
	jql := fmt.Sprintf("\"Parent Link\" = %s OR \"Epic Link\" = %s ORDER BY created ASC", issueKey, issueKey)
	searchURL := fmt.Sprintf("%s/rest/api/3/search?jql=%s&fields=%s&maxResults=50",
		c.BaseURL, url.QueryEscape(jql),
		url.QueryEscape("summary,status,issuetype,priority,assignee"))

	var result struct {
		Issues []jiraIssueRef `json:"issues"`
	}
	if err := c.get(c.client, searchURL, &result); err != nil {
		return
	}

	seen := make(map[string]bool, len(tree.Children))
	for _, child := range tree.Children {
		seen[child.Key] = true
	}
	for _, ref := range result.Issues {
		if seen[ref.Key] {
			continue
		}
		tree.Children = append(tree.Children, c.issueFromFields(ref.Key, ref.Fields))
	}
}

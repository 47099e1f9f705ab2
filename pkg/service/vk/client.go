package vk

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/m-mizutani/goerr/v2"
)

const (
	defaultBaseURL = "https://api.vk.com/method"
	apiVersion     = "5.131"
)

// Client is a minimal VK API client covering the calls the news import
// needs: wall.get and groups.getById.
type Client struct {
	token   string
	baseURL string
	client  *retryablehttp.Client
}

type Option func(*Client)

func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

func WithHTTPClient(client *retryablehttp.Client) Option {
	return func(c *Client) {
		c.client = client
	}
}

func New(token string, opts ...Option) *Client {
	client := retryablehttp.NewClient()
	client.RetryMax = 2
	client.Logger = nil

	c := &Client{
		token:   token,
		baseURL: defaultBaseURL,
		client:  client,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type apiError struct {
	Code    int    `json:"error_code"`
	Message string `json:"error_msg"`
}

func (c *Client) call(ctx context.Context, method string, params url.Values, out any) error {
	params.Set("access_token", c.token)
	params.Set("v", apiVersion)

	reqURL := c.baseURL + "/" + method + "?" + params.Encode()
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return goerr.Wrap(err, "failed to build vk request", goerr.V("method", method))
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return goerr.Wrap(err, "failed to call vk api", goerr.V("method", method))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return goerr.New("unexpected vk api status",
			goerr.V("method", method),
			goerr.V("status_code", resp.StatusCode))
	}

	var envelope struct {
		Error    *apiError       `json:"error"`
		Response json.RawMessage `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return goerr.Wrap(err, "failed to decode vk response", goerr.V("method", method))
	}
	if envelope.Error != nil {
		return goerr.New("vk api error",
			goerr.V("method", method),
			goerr.V("code", envelope.Error.Code),
			goerr.V("message", envelope.Error.Message))
	}

	if err := json.Unmarshal(envelope.Response, out); err != nil {
		return goerr.Wrap(err, "failed to decode vk response payload", goerr.V("method", method))
	}
	return nil
}

// WallGet fetches the latest wall posts of a community. groupID may be a
// numeric community ID or a short name.
func (c *Client) WallGet(ctx context.Context, groupID string, count int) ([]Post, error) {
	params := url.Values{}
	params.Set("count", strconv.Itoa(count))
	if isNumeric(groupID) {
		params.Set("owner_id", "-"+groupID)
	} else {
		params.Set("domain", groupID)
	}

	var response struct {
		Count int    `json:"count"`
		Items []Post `json:"items"`
	}
	if err := c.call(ctx, "wall.get", params, &response); err != nil {
		return nil, err
	}
	return response.Items, nil
}

// ResolveGroupID resolves a community short name to its numeric ID.
// Numeric IDs pass through unchanged.
func (c *Client) ResolveGroupID(ctx context.Context, groupID string) (string, error) {
	if isNumeric(groupID) {
		return groupID, nil
	}

	params := url.Values{}
	params.Set("group_id", groupID)

	// Newer API versions wrap the groups in an object, older ones
	// return a bare array.
	var raw json.RawMessage
	if err := c.call(ctx, "groups.getById", params, &raw); err != nil {
		return "", err
	}

	var wrapped struct {
		Groups []Group `json:"groups"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && len(wrapped.Groups) > 0 {
		return strconv.FormatInt(wrapped.Groups[0].ID, 10), nil
	}

	var groups []Group
	if err := json.Unmarshal(raw, &groups); err == nil && len(groups) > 0 {
		return strconv.FormatInt(groups[0].ID, 10), nil
	}

	return "", goerr.New("vk group not found", goerr.V("group_id", groupID))
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

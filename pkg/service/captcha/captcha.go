package captcha

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/m-mizutani/goerr/v2"

	"github.com/robofest-ru/robofest/pkg/utils/logging"
)

const defaultEndpoint = "https://smartcaptcha.yandexcloud.net/validate"

// Verifier checks Yandex SmartCaptcha tokens against the validation
// endpoint. An empty secret disables verification entirely, which is the
// development setup.
type Verifier struct {
	secret   string
	endpoint string
	client   *retryablehttp.Client
}

type Option func(*Verifier)

func WithEndpoint(endpoint string) Option {
	return func(v *Verifier) {
		v.endpoint = endpoint
	}
}

func WithHTTPClient(client *retryablehttp.Client) Option {
	return func(v *Verifier) {
		v.client = client
	}
}

func New(secret string, opts ...Option) *Verifier {
	client := retryablehttp.NewClient()
	client.RetryMax = 2
	client.Logger = nil

	v := &Verifier{
		secret:   secret,
		endpoint: defaultEndpoint,
		client:   client,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Enabled reports whether a secret is configured
func (v *Verifier) Enabled() bool {
	return v.secret != ""
}

type validateResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Verify checks the token. Without a configured secret every token
// passes. When the validation service itself is unreachable the check
// passes so that an outage does not block registrations.
func (v *Verifier) Verify(ctx context.Context, token, clientIP string) bool {
	if v.secret == "" {
		return true
	}
	if token == "" {
		return false
	}

	form := url.Values{}
	form.Set("secret", v.secret)
	form.Set("token", token)
	form.Set("ip", clientIP)

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, v.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		logging.From(ctx).Warn("failed to build captcha request", "error", err)
		return true
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.client.Do(req)
	if err != nil {
		logging.From(ctx).Warn("captcha service unreachable, allowing through", "error", err)
		return true
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logging.From(ctx).Warn("captcha validation rejected",
			"status_code", resp.StatusCode)
		return false
	}

	var result validateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		logging.From(ctx).Warn("failed to decode captcha response", "error", err)
		return true
	}

	return result.Status == "ok"
}

// VerifyStrict behaves like Verify but reports transport failures to the
// caller instead of failing open. Admin connection tests use this.
func (v *Verifier) VerifyStrict(ctx context.Context, token, clientIP string) (bool, error) {
	if v.secret == "" {
		return true, nil
	}
	if token == "" {
		return false, nil
	}

	form := url.Values{}
	form.Set("secret", v.secret)
	form.Set("token", token)
	form.Set("ip", clientIP)

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, v.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return false, goerr.Wrap(err, "failed to build captcha request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.client.Do(req)
	if err != nil {
		return false, goerr.Wrap(err, "failed to call captcha service")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, goerr.New("unexpected captcha service status", goerr.V("status_code", resp.StatusCode))
	}

	var result validateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return false, goerr.Wrap(err, "failed to decode captcha response")
	}

	return result.Status == "ok", nil
}

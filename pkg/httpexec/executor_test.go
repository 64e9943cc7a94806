package httpexec

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/blackcoderx/volt/pkg/core"
)

func TestExecuteSubstitutesURLAndReturnsResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/42" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	endpoint := core.ApiEndpoint{
		Method: core.MethodGet,
		URL:    srv.URL + "/users/{{user_id}}",
	}
	inputs := core.RequestInputs{Variables: map[string]string{"user_id": "42"}}

	exec := New()
	resp, err := exec.Execute(context.Background(), endpoint, inputs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("got status %d", resp.StatusCode)
	}
	if string(resp.Body) != `{"ok":true}` {
		t.Errorf("got body %q", resp.Body)
	}
	if resp.Traffic.Request.URL != srv.URL+"/users/42" {
		t.Errorf("got url %q", resp.Traffic.Request.URL)
	}
}

func TestExecuteMissingVariablePropagates(t *testing.T) {
	endpoint := core.ApiEndpoint{Method: core.MethodGet, URL: "http://example.com/{{missing}}"}
	exec := New()
	_, err := exec.Execute(context.Background(), endpoint, core.RequestInputs{})
	if _, ok := err.(*core.MissingVariableError); !ok {
		t.Fatalf("expected MissingVariableError, got %v", err)
	}
}

func TestApplyAuthBearer(t *testing.T) {
	headers := map[string]string{}
	auth := core.AuthConfig{Kind: core.AuthBearer, Token: "tok-{{v}}"}
	_, err := applyAuth(auth, map[string]string{"v": "123"}, "http://x", headers)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if headers["Authorization"] != "Bearer tok-123" {
		t.Errorf("got %q", headers["Authorization"])
	}
}

func TestApplyAuthBasic(t *testing.T) {
	headers := map[string]string{}
	auth := core.AuthConfig{Kind: core.AuthBasic, Username: "u", Password: "p"}
	_, err := applyAuth(auth, nil, "http://x", headers)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if headers["Authorization"] != "Basic dTpw" {
		t.Errorf("got %q", headers["Authorization"])
	}
}

func TestApplyAuthApiKeyQueryParam(t *testing.T) {
	headers := map[string]string{}
	auth := core.AuthConfig{Kind: core.AuthApiKey, KeyName: "api_key", KeyValue: "secret", KeyLocation: core.ApiKeyQueryParam}
	url, err := applyAuth(auth, nil, "http://x/path?existing=1", headers)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "http://x/path?api_key=secret&existing=1" {
		t.Errorf("got %q", url)
	}
}

func TestApplyAuthApiKeyHeader(t *testing.T) {
	headers := map[string]string{}
	auth := core.AuthConfig{Kind: core.AuthApiKey, KeyName: "X-Api-Key", KeyValue: "secret", KeyLocation: core.ApiKeyHeader}
	_, err := applyAuth(auth, nil, "http://x", headers)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if headers["X-Api-Key"] != "secret" {
		t.Errorf("got %q", headers["X-Api-Key"])
	}
}

func TestFormatSize(t *testing.T) {
	if FormatSize(500) != "500 B" {
		t.Errorf("got %q", FormatSize(500))
	}
	if FormatSize(2048) != "2.0 KB" {
		t.Errorf("got %q", FormatSize(2048))
	}
}

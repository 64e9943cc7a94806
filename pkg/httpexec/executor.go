// Package httpexec builds and executes an ApiEndpoint+RequestInputs pair
// into an HttpResponse with full network telemetry. Grounded on the
// teacher's HTTPTool.Run (pkg/core/tools/http.go) for the request
// construction/response reading shape, extended with net/http/httptrace
// for per-phase timing since the teacher only measures wall-clock total.
package httpexec

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/http/httptrace"
	"net/url"
	"sort"
	"time"

	"github.com/blackcoderx/volt/pkg/core"
	"github.com/blackcoderx/volt/pkg/template"
)

// Executor is cloneable: its *http.Client carries its own connection pool
// and is safe to call concurrently from many load-test workers. The zero
// value is not usable; use New.
type Executor struct {
	client *http.Client
}

// New creates an Executor backed by a shared *http.Client (and so a shared
// connection pool) for all Execute calls.
func New() *Executor {
	return &Executor{
		client: &http.Client{
			Timeout: 30 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return http.ErrUseLastResponse
				}
				return nil
			},
		},
	}
}

// Execute resolves endpoint's templates against inputs, performs the HTTP
// call, and returns a fully populated HttpResponse. Template errors
// (TemplateSyntaxError, MissingVariableError, UnknownFakerKindError)
// propagate unchanged; transport failures are wrapped in
// RequestTransportError.
func (e *Executor) Execute(ctx context.Context, endpoint core.ApiEndpoint, inputs core.RequestInputs) (*core.HttpResponse, error) {
	rawURL, err := template.SubstituteStrict(endpoint.URL, inputs.Variables)
	if err != nil {
		return nil, err
	}

	headers, err := resolveHeaders(endpoint, inputs)
	if err != nil {
		return nil, err
	}

	if endpoint.Auth != nil {
		rawURL, err = applyAuth(*endpoint.Auth, inputs.Variables, rawURL, headers)
		if err != nil {
			return nil, err
		}
	}

	bodyStr, hasBody, err := resolveBody(endpoint, inputs)
	if err != nil {
		return nil, err
	}

	var bodyReader io.Reader
	var bodyBytes []byte
	if hasBody {
		bodyBytes = []byte(bodyStr)
		bodyReader = bytes.NewReader(bodyBytes)
	}

	timeout := endpoint.Timeout()
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(reqCtx, string(endpoint.Method), rawURL, bodyReader)
	if err != nil {
		return nil, &core.RequestTransportError{Description: err.Error()}
	}
	for name, value := range headers {
		httpReq.Header.Set(name, value)
	}

	timing := &core.NetworkTiming{}
	t0 := time.Now()
	var connectStart, dnsStart, tlsStart time.Time

	trace := &httptrace.ClientTrace{
		DNSStart: func(httptrace.DNSStartInfo) { dnsStart = time.Now() },
		DNSDone: func(httptrace.DNSDoneInfo) {
			if !dnsStart.IsZero() {
				d := time.Since(dnsStart)
				timing.DNSLookup = &d
			}
		},
		ConnectStart: func(string, string) { connectStart = time.Now() },
		ConnectDone: func(string, string, error) {
			if !connectStart.IsZero() {
				d := time.Since(connectStart)
				timing.TCPConnect = &d
			}
		},
		TLSHandshakeStart: func() { tlsStart = time.Now() },
		TLSHandshakeDone: func(tls.ConnectionState, error) {
			if !tlsStart.IsZero() {
				d := time.Since(tlsStart)
				timing.TLSHandshake = &d
			}
		},
	}
	httpReq = httpReq.WithContext(httptrace.WithClientTrace(reqCtx, trace))

	httpResp, err := e.client.Do(httpReq)
	if err != nil {
		return nil, &core.RequestTransportError{Description: err.Error()}
	}
	defer httpResp.Body.Close()

	t1 := time.Now()
	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &core.RequestTransportError{Description: err.Error()}
	}
	t2 := time.Now()

	// request_sent is treated as a small fixed lower-bound estimate per
	// §4.4 step 7; the transport does not expose write-completion timing
	// through httptrace in a way distinct from connection setup.
	timing.RequestSent = time.Millisecond
	timing.Waiting = t1.Sub(t0)
	timing.ContentDownload = t2.Sub(t1)
	timing.Total = t2.Sub(t0)

	respHeaders := make([]core.HttpHeader, 0, len(httpResp.Header))
	headerNames := make([]string, 0, len(httpResp.Header))
	for name := range httpResp.Header {
		headerNames = append(headerNames, name)
	}
	sort.Strings(headerNames)
	headerSize := 0
	for _, name := range headerNames {
		for _, v := range httpResp.Header[name] {
			respHeaders = append(respHeaders, core.HttpHeader{Name: name, Value: v})
			headerSize += len(name) + len(v) + 4
		}
	}

	resp := &core.HttpResponse{
		StatusCode: httpResp.StatusCode,
		StatusText: httpResp.Status,
		Headers:    respHeaders,
		Body:       respBody,
		Duration:   timing.Total,
		Traffic: core.NetworkTraffic{
			Timing: *timing,
			Request: core.RequestDetails{
				Method:   endpoint.Method,
				URL:      rawURL,
				Headers:  headers,
				Body:     bodyStr,
				BodySize: len(bodyBytes),
			},
			ResponseHeaderSize: headerSize,
			ResponseBodySize:   len(respBody),
		},
	}
	return resp, nil
}

// resolveHeaders substitutes every endpoint header template, then layers
// inputs.Headers on top (add/override by name).
func resolveHeaders(endpoint core.ApiEndpoint, inputs core.RequestInputs) (map[string]string, error) {
	headers := make(map[string]string, len(endpoint.Headers)+len(inputs.Headers))
	for name, tmpl := range endpoint.Headers {
		val, err := template.SubstituteStrict(tmpl, inputs.Variables)
		if err != nil {
			return nil, err
		}
		headers[name] = val
	}
	for name, tmpl := range inputs.Headers {
		val, err := template.SubstituteStrict(tmpl, inputs.Variables)
		if err != nil {
			return nil, err
		}
		headers[name] = val
	}
	return headers, nil
}

// resolveBody applies inputs.Body as an override of endpoint.BodyTemplate,
// per §4.4 step 4.
func resolveBody(endpoint core.ApiEndpoint, inputs core.RequestInputs) (string, bool, error) {
	if inputs.Body != nil {
		return *inputs.Body, true, nil
	}
	if endpoint.BodyTemplate == "" {
		return "", false, nil
	}
	val, err := template.SubstituteStrict(endpoint.BodyTemplate, inputs.Variables)
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

// applyAuth resolves AuthConfig's template fields and injects the result
// into headers (and, for ApiKey{QueryParam}, the URL's query string).
// Execute calls it after the URL and headers are resolved and before the
// body is. It returns the (possibly updated) URL.
func applyAuth(auth core.AuthConfig, vars map[string]string, rawURL string, headers map[string]string) (string, error) {
	switch auth.Kind {
	case core.AuthBearer:
		token, err := template.SubstituteStrict(auth.Token, vars)
		if err != nil {
			return rawURL, err
		}
		headers["Authorization"] = "Bearer " + token
		return rawURL, nil

	case core.AuthBasic:
		user, err := template.SubstituteStrict(auth.Username, vars)
		if err != nil {
			return rawURL, err
		}
		pass, err := template.SubstituteStrict(auth.Password, vars)
		if err != nil {
			return rawURL, err
		}
		encoded := base64.StdEncoding.EncodeToString([]byte(user + ":" + pass))
		headers["Authorization"] = "Basic " + encoded
		return rawURL, nil

	case core.AuthApiKey:
		name, err := template.SubstituteStrict(auth.KeyName, vars)
		if err != nil {
			return rawURL, err
		}
		value, err := template.SubstituteStrict(auth.KeyValue, vars)
		if err != nil {
			return rawURL, err
		}
		switch auth.KeyLocation {
		case core.ApiKeyQueryParam:
			parsed, err := url.Parse(rawURL)
			if err != nil {
				return rawURL, &core.RequestTransportError{Description: err.Error()}
			}
			q := parsed.Query()
			q.Set(name, value)
			parsed.RawQuery = q.Encode()
			return parsed.String(), nil
		default:
			headers[name] = value
			return rawURL, nil
		}

	default:
		return rawURL, fmt.Errorf("unknown auth kind %q", auth.Kind)
	}
}

// StatusCodeMeaning returns a short human-readable explanation of a status
// code for the EndpointDetail/ResponseView footer.
func StatusCodeMeaning(code int) string {
	switch {
	case code >= 200 && code < 300:
		return "Success"
	case code >= 300 && code < 400:
		return "Redirect"
	case code >= 400 && code < 500:
		return "Client Error"
	case code >= 500:
		return "Server Error"
	default:
		return "Unknown"
	}
}

// FormatSize renders a byte count using the teacher's 1024-based
// abbreviation scheme (formatSize in pkg/core/tools/http.go).
func FormatSize(n int) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for x := n / unit; x >= unit; x /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}

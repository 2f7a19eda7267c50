package httputil

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	perrors "github.com/matzehuels/pagemarks/pkg/errors"
)

// ErrorBody is the JSON shape of a failed response.
type ErrorBody struct {
	Code      perrors.Code `json:"code"`
	Message   string       `json:"message"`
	Problems  []string     `json:"problems,omitempty"`
	RequestID string       `json:"request_id,omitempty"`
}

// WriteJSON writes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

// WriteError writes err as an [ErrorBody]. Errors without a code are
// reported as internal errors.
func WriteError(w http.ResponseWriter, r *http.Request, err error, problems ...error) {
	code := perrors.GetCode(err)
	if code == "" {
		code = perrors.ErrCodeInternal
	}
	body := ErrorBody{
		Code:      code,
		Message:   perrors.UserMessage(err),
		RequestID: RequestIDFrom(r.Context()),
	}
	for _, p := range problems {
		body.Problems = append(body.Problems, p.Error())
	}
	WriteJSON(w, perrors.HTTPStatus(err), body)
}

// PostJSON sends in as JSON to url and decodes the response into out,
// retrying transport failures and 5xx responses according to p. Error
// responses come back as *errors.Error carrying the server's code.
func PostJSON(ctx context.Context, client *http.Client, p Policy, url string, in, out any) error {
	if client == nil {
		client = http.DefaultClient
	}
	payload, err := json.Marshal(in)
	if err != nil {
		return perrors.Wrap(perrors.ErrCodeInvalidInput, err, "encode request")
	}

	return Retry(ctx, p, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
		if err != nil {
			return perrors.Wrap(perrors.ErrCodeInvalidInput, err, "build request")
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")

		resp, err := client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return perrors.Wrap(perrors.ErrCodeTimeout, err, "post %s", url)
			}
			return &RetryableError{Err: perrors.Wrap(perrors.ErrCodeInternal, err, "post %s", url)}
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return &RetryableError{Err: perrors.Wrap(perrors.ErrCodeInternal, err, "read response")}
		}

		if resp.StatusCode >= 300 {
			err := decodeError(resp.StatusCode, data)
			if resp.StatusCode >= 500 && resp.StatusCode != http.StatusGatewayTimeout {
				return &RetryableError{Err: err}
			}
			return err
		}

		if out == nil {
			return nil
		}
		if err := json.Unmarshal(data, out); err != nil {
			return perrors.Wrap(perrors.ErrCodeInvalidFormat, err, "decode response")
		}
		return nil
	})
}

func decodeError(status int, data []byte) error {
	var body ErrorBody
	if err := json.Unmarshal(data, &body); err != nil || body.Code == "" {
		return perrors.New(codeForStatus(status), "server returned %d: %s", status, bytes.TrimSpace(data))
	}
	return perrors.New(body.Code, "%s", body.Message)
}

func codeForStatus(status int) perrors.Code {
	switch {
	case status == http.StatusNotFound:
		return perrors.ErrCodeNotFound
	case status == http.StatusGatewayTimeout:
		return perrors.ErrCodeTimeout
	case status == http.StatusUnsupportedMediaType:
		return perrors.ErrCodeUnsupported
	case status >= 400 && status < 500:
		return perrors.ErrCodeInvalidInput
	default:
		return perrors.ErrCodeInternal
	}
}

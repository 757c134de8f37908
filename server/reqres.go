package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/brojonat/gofferup/offerup"
)

type DefaultJSONResponse struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type ScrapeRequestBody struct {
	URL           string `json:"url"`
	DownloadImage bool   `json:"download_image"`
}

type ScrapeResponse struct {
	Success   bool                   `json:"success"`
	Message   string                 `json:"message,omitempty"`
	Data      *offerup.ListingRecord `json:"data,omitempty"`
	Error     string                 `json:"error,omitempty"`
	ErrorType string                 `json:"error_type,omitempty"`
}

// MalformedRequest distinguishes client-side body problems from everything
// else so handlers can return 400 instead of 500.
type MalformedRequest struct {
	Status int
	Msg    string
}

func (mr *MalformedRequest) Error() string {
	return mr.Msg
}

func decodeJSONBody(r *http.Request, dst any) error {
	if r.Body == nil {
		return &MalformedRequest{Status: http.StatusBadRequest, Msg: "request body is required"}
	}
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var maxBytesError *http.MaxBytesError
		switch {
		case errors.As(err, &syntaxError):
			return &MalformedRequest{Status: http.StatusBadRequest, Msg: fmt.Sprintf("request body contains badly-formed JSON (at position %d)", syntaxError.Offset)}
		case errors.Is(err, io.ErrUnexpectedEOF):
			return &MalformedRequest{Status: http.StatusBadRequest, Msg: "request body contains badly-formed JSON"}
		case errors.As(err, &unmarshalTypeError):
			return &MalformedRequest{Status: http.StatusBadRequest, Msg: fmt.Sprintf("request body contains an invalid value for the %q field", unmarshalTypeError.Field)}
		case errors.Is(err, io.EOF):
			return &MalformedRequest{Status: http.StatusBadRequest, Msg: "request body must not be empty"}
		case errors.As(err, &maxBytesError):
			return &MalformedRequest{Status: http.StatusRequestEntityTooLarge, Msg: "request body is too large"}
		default:
			return err
		}
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return &MalformedRequest{Status: http.StatusBadRequest, Msg: "request body must contain a single JSON object"}
	}
	return nil
}

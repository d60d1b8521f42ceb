package jsonapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
)

// RejectHandler writes the response for a request the middleware rejected.
// The resource descriptor is already attached to r.
type RejectHandler func(w http.ResponseWriter, r *http.Request, v Verdict)

// StatusOnly writes the verdict's status code with no body.
func StatusOnly(w http.ResponseWriter, _ *http.Request, v Verdict) {
	w.WriteHeader(v.StatusCode())
}

// ErrorDocument writes the verdict's status code with a JSON:API errors
// document describing the rejection.
func ErrorDocument(w http.ResponseWriter, r *http.Request, v Verdict) {
	writeErrors(w, v.StatusCode(), rejectionError(r, v))
}

// rejectionError describes v as a JSON:API error object.
func rejectionError(r *http.Request, v Verdict) ErrorObject {
	status := v.StatusCode()
	obj := ErrorObject{
		Status: strconv.Itoa(status),
		Code:   v.String(),
		Title:  http.StatusText(status),
	}
	switch v {
	case RejectNotAcceptable:
		obj.Detail = fmt.Sprintf("Accept lists %s only with media type parameters.", MediaType)
		obj.Source = &ErrorSource{Header: "Accept"}
	case RejectUnsupportedMediaType:
		obj.Detail = "Content-Type must not carry media type parameters."
		obj.Source = &ErrorSource{Header: "Content-Type"}
	}
	if res, ok := ResourceFromRequest(r); ok {
		obj.Meta = map[string]any{"resourceType": res.ResourceType()}
	}
	return obj
}

func writeErrors(w http.ResponseWriter, status int, errs ...ErrorObject) {
	w.Header().Set("Content-Type", MediaType)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorsDocument{
		JSONAPI: &JSONAPIObject{Version: Version},
		Errors:  errs,
	})
}

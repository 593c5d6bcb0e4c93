package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeRequest reads a JSON body into dst and validates it.
// Every failure is an *ErrValidation.
func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, s.maxBody)
	dec := json.NewDecoder(body)

	if err := dec.Decode(dst); err != nil {
		var (
			typeErr *json.UnmarshalTypeError
			sizeErr *http.MaxBytesError
		)
		switch {
		case errors.As(err, &typeErr):
			return &ErrValidation{Field: typeErr.Field, Message: fmt.Sprintf("must be a %s", jsonKind(typeErr.Type))}
		case errors.As(err, &sizeErr):
			return &ErrValidation{Field: "body", Message: fmt.Sprintf("exceeds %d bytes", sizeErr.Limit)}
		case errors.Is(err, io.EOF):
			return &ErrValidation{Field: "body", Message: "is empty"}
		default:
			return &ErrValidation{Field: "body", Message: "invalid JSON"}
		}
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return &ErrValidation{Field: "body", Message: "invalid JSON"}
	}

	if err := s.validate.Struct(dst); err != nil {
		return validationError(err)
	}
	return nil
}

// jsonKind names a Go type the way a JSON client would.
func jsonKind(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Struct, reflect.Map:
		return "object"
	case reflect.Bool:
		return "boolean"
	default:
		return "number"
	}
}

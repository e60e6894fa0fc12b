package validation

import (
	"strings"
	"testing"

	"github.com/skillsenselab/protokoll/errors"
)

type submitRequest struct {
	URL      string `json:"url" validate:"required,url"`
	Language string `json:"language" validate:"omitempty,min=2,max=5"`
	Provider string `json:"provider" validate:"omitempty,oneof=pyannote whisper"`
}

func TestValidateOK(t *testing.T) {
	req := submitRequest{URL: "https://youtu.be/abc", Language: "de"}
	if err := Validate(req); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestValidateMissingRequired(t *testing.T) {
	err := Validate(submitRequest{})
	if err == nil {
		t.Fatal("expected error")
	}

	appErr, ok := errors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.Code != errors.ErrCodeInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %s", appErr.Code)
	}
	if !strings.Contains(appErr.Message, "url: is required") {
		t.Errorf("unexpected message: %s", appErr.Message)
	}
}

func TestValidateCollectsAllFields(t *testing.T) {
	err := Validate(submitRequest{URL: "notaurl", Language: "x", Provider: "bogus"})
	if err == nil {
		t.Fatal("expected error")
	}

	appErr, _ := errors.AsAppError(err)
	fields, ok := appErr.Details["fields"].([]FieldError)
	if !ok {
		t.Fatalf("expected field details, got %T", appErr.Details["fields"])
	}
	if len(fields) != 3 {
		t.Fatalf("expected 3 field errors, got %d: %v", len(fields), fields)
	}
}

func TestValidateSnakeCaseNames(t *testing.T) {
	type cfg struct {
		OutputRoot string `validate:"required"`
	}
	err := Validate(cfg{})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "output_root") {
		t.Errorf("expected snake_case field name, got %v", err)
	}
}

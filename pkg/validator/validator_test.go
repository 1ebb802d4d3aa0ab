package validator_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pkgvalidator "github.com/ghuser/voiceshop/pkg/validator"
)

type sampleStruct struct {
	Name     string `validate:"required,min=1,max=10"`
	Category string `validate:"omitempty,oneof=mug hoodie cap"`
	Address  string `validate:"omitempty,notblank"`
}

func TestValidate_valid(t *testing.T) {
	s := sampleStruct{Name: "hello", Category: "mug"}
	if err := pkgvalidator.Validate(&s); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestValidate_missingRequired(t *testing.T) {
	s := sampleStruct{}
	if err := pkgvalidator.Validate(&s); err == nil {
		t.Fatal("expected validation error for empty struct")
	}
}

func TestFormatValidationErrors_required(t *testing.T) {
	err := pkgvalidator.Validate(&sampleStruct{})
	m := pkgvalidator.FormatValidationErrors(err)
	if m["Name"] != "This field is required" {
		t.Errorf("unexpected Name message: %q", m["Name"])
	}
}

func TestFormatValidationErrors_oneof(t *testing.T) {
	err := pkgvalidator.Validate(&sampleStruct{Name: "ok", Category: "sock"})
	m := pkgvalidator.FormatValidationErrors(err)
	if m["Category"] != "Must be one of: mug, hoodie, cap" {
		t.Errorf("unexpected Category message: %q", m["Category"])
	}
}

func TestFormatValidationErrors_notblank(t *testing.T) {
	err := pkgvalidator.Validate(&sampleStruct{Name: "ok", Address: "   "})
	m := pkgvalidator.FormatValidationErrors(err)
	if m["Address"] != "This field is required" {
		t.Errorf("unexpected Address message: %q", m["Address"])
	}
}

func TestFormatValidationErrors_max(t *testing.T) {
	err := pkgvalidator.Validate(&sampleStruct{Name: "12345678901"}) // 11 chars > max=10
	m := pkgvalidator.FormatValidationErrors(err)
	if m["Name"] != "Maximum length is 10" {
		t.Errorf("unexpected Name message: %q", m["Name"])
	}
}

func TestFormatValidationErrors_nonValidationError(t *testing.T) {
	m := pkgvalidator.FormatValidationErrors(http.ErrNoCookie)
	if len(m) != 0 {
		t.Errorf("expected empty map for non-validation error, got %v", m)
	}
}

// --- ValidateRequest ---

type lineReq struct {
	ProductIdentifier string `json:"product_identifier" validate:"required,notblank"`
	Quantity          int    `json:"quantity"           validate:"gte=0"`
}

type orderReq struct {
	Items []lineReq `json:"items" validate:"required,min=1,dive"`
}

func TestValidateRequest_valid(t *testing.T) {
	body := `{"items":[{"product_identifier":"hoodie-001","quantity":2}]}`
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	req, ok := pkgvalidator.ValidateRequest[orderReq](w, r)
	if !ok {
		t.Fatalf("expected ok=true, got false. Response: %s", w.Body.String())
	}
	if req.Items[0].ProductIdentifier != "hoodie-001" {
		t.Errorf("unexpected product: %q", req.Items[0].ProductIdentifier)
	}
}

func TestValidateRequest_invalidJSON(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{bad json"))
	w := httptest.NewRecorder()

	_, ok := pkgvalidator.ValidateRequest[orderReq](w, r)
	if ok {
		t.Fatal("expected ok=false for malformed JSON")
	}
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Invalid JSON") {
		t.Errorf("expected 'Invalid JSON' in body, got: %s", w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"code":"invalid_json"`) {
		t.Errorf("expected invalid_json code in body, got: %s", w.Body.String())
	}
}

func TestValidateRequest_missingField(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
	w := httptest.NewRecorder()

	_, ok := pkgvalidator.ValidateRequest[orderReq](w, r)
	if ok {
		t.Fatal("expected ok=false for missing items")
	}
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Validation failed") {
		t.Errorf("expected 'Validation failed' in body, got: %s", w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"code":"validation_failed"`) {
		t.Errorf("expected validation_failed code in body, got: %s", w.Body.String())
	}
}

func TestValidateRequest_nestedFieldPath(t *testing.T) {
	body := `{"items":[{"product_identifier":"mug-001"},{"product_identifier":"  ","quantity":-1}]}`
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	w := httptest.NewRecorder()

	_, ok := pkgvalidator.ValidateRequest[orderReq](w, r)
	if ok {
		t.Fatal("expected ok=false for blank identifier")
	}
	for _, want := range []string{`"items[1].product_identifier"`, `"items[1].quantity"`} {
		if !strings.Contains(w.Body.String(), want) {
			t.Errorf("expected %s in body, got: %s", want, w.Body.String())
		}
	}
}

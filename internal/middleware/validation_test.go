package middleware

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

type lineRequest struct {
	Checkout string `json:"checkout" validate:"required"`
	LineItem string `json:"lineItem" validate:"required,max=512"`
}

func TestProperty_RequiredFieldValidationWorks(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("missing required ids are rejected", prop.ForAll(
		func(includeCheckout bool, includeLine bool) bool {
			body := make(map[string]interface{})
			if includeCheckout {
				body["checkout"] = "gid://shopify/Checkout/1"
			}
			if includeLine {
				body["lineItem"] = "gid://shopify/CheckoutLineItem/1"
			}

			raw, _ := json.Marshal(body)
			req := httptest.NewRequest("POST", "/api/removeLine", bytes.NewReader(raw))

			var decoded lineRequest
			err := DecodeAndValidate(req, &decoded)

			if includeCheckout && includeLine {
				return err == nil
			}
			return err != nil
		},
		gen.Bool(),
		gen.Bool(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestFormatValidationErrors(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/removeLine",
		strings.NewReader(`{"lineItem":"`+strings.Repeat("x", 600)+`"}`))

	var decoded lineRequest
	err := DecodeAndValidate(req, &decoded)
	if err == nil {
		t.Fatal("expected validation to fail")
	}

	errs := FormatValidationErrors(err)
	if len(errs) != 2 {
		t.Fatalf("expected 2 field errors, got %+v", errs)
	}
	messages := map[string]string{}
	for _, e := range errs {
		messages[e.Field] = e.Message
	}
	if messages["Checkout"] != "This field is required" {
		t.Errorf("unexpected checkout message %q", messages["Checkout"])
	}
	if messages["LineItem"] != "Value is too long" {
		t.Errorf("unexpected lineItem message %q", messages["LineItem"])
	}
}

func TestDecodeAndValidate_MalformedJSON(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/addLine", strings.NewReader("{not json"))

	var decoded lineRequest
	err := DecodeAndValidate(req, &decoded)
	if err == nil {
		t.Fatal("expected decode error")
	}
	if len(FormatValidationErrors(err)) != 0 {
		t.Error("decode errors are not validation errors")
	}
}

func TestFormatValidationErrors_UnmappedTag(t *testing.T) {
	var decoded struct {
		Quantity int `json:"quantity" validate:"min=1"`
	}
	err := DecodeAndValidate(httptest.NewRequest("POST", "/api/updateLine", strings.NewReader(`{"quantity":0}`)), &decoded)

	errs := FormatValidationErrors(err)
	if len(errs) != 1 || errs[0].Message != "Invalid value" {
		t.Errorf("expected the generic message, got %+v", errs)
	}
}

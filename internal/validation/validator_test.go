// Utilitrack - Daily Utility Consumption Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/utilitrack

package validation

import (
	"strings"
	"testing"
)

type targetRequest struct {
	PeriodType   string  `json:"period_type" validate:"required,periodtype"`
	ResourceType string  `json:"resource_type" validate:"omitempty,resource"`
	Value        float64 `json:"value" validate:"gt=0"`
	ValidFrom    string  `json:"valid_from" validate:"required,isodate"`
}

type boundsRequest struct {
	Name   string `validate:"min=2,max=4"`
	Months int    `json:"months,omitempty" validate:"min=1,max=36"`
	Kind   string `json:"kind" validate:"oneof=all year month"`
}

func TestGetValidatorSingleton(t *testing.T) {
	t.Parallel()

	if GetValidator() != GetValidator() {
		t.Error("GetValidator should return the same instance")
	}
}

func TestValidateStructCustomTags(t *testing.T) {
	t.Parallel()

	valid := targetRequest{PeriodType: "monthly", ResourceType: "el", Value: 400, ValidFrom: "2026-02-01"}

	tests := []struct {
		name      string
		mutate    func(*targetRequest)
		wantField string
		wantTag   string
	}{
		{"valid", func(*targetRequest) {}, "", ""},
		{"resource is optional", func(r *targetRequest) { r.ResourceType = "" }, "", ""},
		{"resource case-insensitive", func(r *targetRequest) { r.ResourceType = "WATER" }, "", ""},
		{"unknown resource", func(r *targetRequest) { r.ResourceType = "gas" }, "resource_type", "resource"},
		{"missing period type", func(r *targetRequest) { r.PeriodType = "" }, "period_type", "required"},
		{"unknown period type", func(r *targetRequest) { r.PeriodType = "hourly" }, "period_type", "periodtype"},
		{"zero value", func(r *targetRequest) { r.Value = 0 }, "value", "gt"},
		{"negative value", func(r *targetRequest) { r.Value = -5 }, "value", "gt"},
		{"date with time", func(r *targetRequest) { r.ValidFrom = "2026-02-01T00:00:00" }, "valid_from", "isodate"},
		{"non-existent date", func(r *targetRequest) { r.ValidFrom = "2026-02-30" }, "valid_from", "isodate"},
		{"unpadded date", func(r *targetRequest) { r.ValidFrom = "2026-2-1" }, "valid_from", "isodate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := valid
			tt.mutate(&req)

			verr := ValidateStruct(&req)
			if tt.wantField == "" {
				if verr != nil {
					t.Fatalf("unexpected error: %v", verr)
				}
				return
			}
			if verr == nil {
				t.Fatalf("expected a %s error on %s", tt.wantTag, tt.wantField)
			}
			errs := verr.Errors()
			if len(errs) != 1 {
				t.Fatalf("got %d errors, want 1: %v", len(errs), verr)
			}
			if errs[0].Field() != tt.wantField || errs[0].Tag() != tt.wantTag {
				t.Errorf("got %s/%s, want %s/%s", errs[0].Field(), errs[0].Tag(), tt.wantField, tt.wantTag)
			}
		})
	}
}

func TestTranslateErrorMessages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		req  any
		want string
	}{
		{"isodate", &targetRequest{PeriodType: "daily", Value: 1, ValidFrom: "yesterday"}, "valid_from must be a date in YYYY-MM-DD format"},
		{"resource", &targetRequest{PeriodType: "daily", ResourceType: "gas", Value: 1, ValidFrom: "2026-01-01"}, "resource_type must be one of: el, water"},
		{"gt", &targetRequest{PeriodType: "daily", Value: 0, ValidFrom: "2026-01-01"}, "value must be greater than 0"},
		{"string min", &boundsRequest{Name: "a", Months: 3, Kind: "all"}, "Name must be at least 2 characters"},
		{"number max", &boundsRequest{Name: "abc", Months: 40, Kind: "all"}, "months must be at most 36"},
		{"oneof", &boundsRequest{Name: "abc", Months: 3, Kind: "decade"}, "kind must be one of: all year month"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			verr := ValidateStruct(tt.req)
			if verr == nil {
				t.Fatal("expected an error")
			}
			if verr.Error() != tt.want {
				t.Errorf("message = %q, want %q", verr.Error(), tt.want)
			}
		})
	}
}

func TestToAPIError(t *testing.T) {
	t.Parallel()

	single := ValidateStruct(&targetRequest{PeriodType: "weekly", Value: 1, ValidFrom: "bad"}).ToAPIError()
	if single.Code != "VALIDATION_ERROR" || single.Details["field"] != "valid_from" {
		t.Errorf("single = %+v", single)
	}

	multi := ValidateStruct(&targetRequest{}).ToAPIError()
	if multi.Code != "VALIDATION_ERROR" {
		t.Errorf("Code = %s", multi.Code)
	}
	fields, ok := multi.Details["fields"].([]map[string]any)
	if !ok || len(fields) != 3 {
		t.Fatalf("fields = %#v", multi.Details["fields"])
	}
	if !strings.Contains(multi.Message, "period_type: period_type is required") {
		t.Errorf("Message = %q", multi.Message)
	}

	empty := (&RequestValidationError{}).ToAPIError()
	if empty.Message != "Validation failed" {
		t.Errorf("empty = %+v", empty)
	}
}

func TestValidateStructNonStruct(t *testing.T) {
	t.Parallel()

	verr := ValidateStruct("not a struct")
	if verr == nil || verr.Errors()[0].Field() != "unknown" {
		t.Errorf("expected an unknown-field error, got %v", verr)
	}
}

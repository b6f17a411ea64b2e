package validator

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
)

type momentPayload struct {
	Moment string `binding:"required,moment"`
	Period string `binding:"omitempty,period_type"`
	Date   string `binding:"omitempty,kpi_date"`
}

func TestValidateCustomTags(t *testing.T) {
	Init()

	cases := []struct {
		name    string
		payload momentPayload
		valid   bool
	}{
		{name: "debut", payload: momentPayload{Moment: "debut"}, valid: true},
		{name: "fin with period", payload: momentPayload{Moment: "fin", Period: "month", Date: "2025-12-02"}, valid: true},
		{name: "unknown moment", payload: momentPayload{Moment: "noon"}, valid: false},
		{name: "unknown period", payload: momentPayload{Moment: "fin", Period: "year"}, valid: false},
		{name: "bad date", payload: momentPayload{Moment: "fin", Date: "02/12/2025"}, valid: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := binding.Validator.ValidateStruct(tc.payload)
			if tc.valid && err != nil {
				t.Fatalf("expected payload to be valid, got %v", err)
			}
			if !tc.valid && err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestSanitizeString(t *testing.T) {
	cases := map[string]string{
		"  plain note ":                 "plain note",
		"<script>alert(1)</script>kept": "kept",
		"<b>bold</b> and <i>italic</i>": "bold and italic",
		"don't & won't":                 "don't & won't",
	}
	for input, expected := range cases {
		if got := SanitizeString(input); got != expected {
			t.Errorf("SanitizeString(%q) = %q, expected %q", input, got, expected)
		}
	}
}

func TestParseDate(t *testing.T) {
	parsed, err := ParseDate(" 2025-12-02 ")
	if err != nil {
		t.Fatalf("ParseDate returned error: %v", err)
	}
	if parsed.Year() != 2025 || parsed.Month() != 12 || parsed.Day() != 2 {
		t.Fatalf("unexpected date %v", parsed)
	}
	if _, err := ParseDate("yesterday"); err == nil {
		t.Fatalf("expected error for invalid date")
	}
}

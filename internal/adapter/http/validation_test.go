package http

import (
	"strings"
	"testing"
)

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

type sampleReq struct {
	MemberID string  `json:"member_id" validate:"required,hex32"`
	Amount   float64 `json:"amount" validate:"required,gt=0,dec2"`
	Name     string  `json:"name" validate:"omitempty,min=3"`
}

func TestValidator_AcceptsValidRequest(t *testing.T) {
	cv := NewValidator()
	err := cv.Validate(&sampleReq{
		MemberID: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		Amount:   100.50,
	})
	if err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}
}

func TestValidator_Hex32(t *testing.T) {
	cv := NewValidator()
	bad := []string{
		"",
		"short",
		"AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA",  // uppercase
		"zzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzz",  // non-hex
		"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", // 33 chars
	}
	for _, id := range bad {
		err := cv.Validate(&sampleReq{MemberID: id, Amount: 10})
		if err == nil {
			t.Errorf("hex32 should reject %q", id)
			continue
		}
		fields := ToFieldErrors(err)
		wantMsg := "32-char lowercase hex"
		if id == "" {
			wantMsg = "is required"
		}
		if !containsFieldMsg(fields, "MemberID", wantMsg) {
			t.Errorf("%q: field errors = %+v, want MemberID %q", id, fields, wantMsg)
		}
	}
}

func TestValidator_Dec2(t *testing.T) {
	cv := NewValidator()

	ok := []float64{1, 0.01, 100.50, 99999.99}
	for _, a := range ok {
		if err := cv.Validate(&sampleReq{MemberID: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", Amount: a}); err != nil {
			t.Errorf("dec2 should accept %v: %v", a, err)
		}
	}

	err := cv.Validate(&sampleReq{MemberID: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", Amount: 10.999})
	if err == nil {
		t.Fatal("dec2 should reject 10.999")
	}
	if !containsFieldMsg(ToFieldErrors(err), "Amount", "2 decimal places") {
		t.Errorf("field errors = %+v", ToFieldErrors(err))
	}
}

func TestToFieldErrors_MessagesPerTag(t *testing.T) {
	cv := NewValidator()

	err := cv.Validate(&sampleReq{MemberID: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", Amount: -5})
	if err == nil {
		t.Fatal("gt should reject -5")
	}
	if !containsFieldMsg(ToFieldErrors(err), "Amount", "greater than 0") {
		t.Errorf("gt message missing: %+v", ToFieldErrors(err))
	}

	err = cv.Validate(&sampleReq{MemberID: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", Amount: 10, Name: "ab"})
	if err == nil {
		t.Fatal("min should reject a 2-char name")
	}
	if !containsFieldMsg(ToFieldErrors(err), "Name", "at least 3 characters") {
		t.Errorf("min message missing: %+v", ToFieldErrors(err))
	}
}

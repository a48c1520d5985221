package validator

import (
	"context"
	"strings"
	"testing"

	"github.com/Rajesh001100/cultural/internal/dto"
)

func validRegisterRequest() dto.RegisterRequest {
	return dto.RegisterRequest{
		Name:       "Asha",
		Email:      "a@x.com",
		Phone:      "9000000000",
		Year:       "2",
		Department: "CSE",
		RollNo:     "21CS01",
		College:    "X",
		Event:      "Codeathon",
		PassType:   "Day 1 Pass (₹250)",
		Amount:     250,
	}
}

func TestValidateRegisterRequest(t *testing.T) {
	if err := Validate(context.Background(), validRegisterRequest()); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}
}

func TestValidateRegisterRequestMissingFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*dto.RegisterRequest)
	}{
		{"no name", func(r *dto.RegisterRequest) { r.Name = "" }},
		{"no email", func(r *dto.RegisterRequest) { r.Email = "" }},
		{"bad email", func(r *dto.RegisterRequest) { r.Email = "not-an-email" }},
		{"no phone", func(r *dto.RegisterRequest) { r.Phone = "" }},
		{"no year", func(r *dto.RegisterRequest) { r.Year = "" }},
		{"no department", func(r *dto.RegisterRequest) { r.Department = "" }},
		{"no roll no", func(r *dto.RegisterRequest) { r.RollNo = "" }},
		{"no college", func(r *dto.RegisterRequest) { r.College = "" }},
		{"no pass type", func(r *dto.RegisterRequest) { r.PassType = "" }},
		{"zero amount", func(r *dto.RegisterRequest) { r.Amount = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRegisterRequest()
			tt.mutate(&req)
			if err := Validate(context.Background(), req); err == nil {
				t.Errorf("request with %s accepted", tt.name)
			}
		})
	}
}

func TestValidateEventUpsertEnums(t *testing.T) {
	req := dto.EventUpsertRequest{
		Title:    "Codeathon",
		Category: "technical",
		Type:     "SOLO",
	}
	if err := Validate(context.Background(), req); err != nil {
		t.Fatalf("valid event rejected: %v", err)
	}

	req.Category = "music"
	err := Validate(context.Background(), req)
	if err == nil {
		t.Fatal("unknown category accepted")
	}
	if !strings.Contains(err.Error(), "category") {
		t.Errorf("err = %v, want category message", err)
	}

	req.Category = "technical"
	req.Type = "DUO"
	if err := Validate(context.Background(), req); err == nil {
		t.Fatal("unknown participation type accepted")
	}
}

package validation

import (
	"testing"
	"time"

	"ekklesia/registry/internal/models/dtos/requests"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"plain name", "Thandiwe", false},
		{"hyphenated", "Mary-Anne", false},
		{"apostrophe", "N'Kosi", false},
		{"diacritics", "Siphesihle Ndlovu", false},
		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"digits", "John3", true},
		{"punctuation run", "a---b", true},
		{"over 100 chars", string(make([]byte, 101)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input, "name")
			if tt.wantErr {
				assert.NotNil(t, err)
			} else {
				assert.Nil(t, err)
			}
		})
	}
}

func TestValidatePhone(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"international", "+263771234567", false},
		{"with spacing", "+263 77 123 4567", false},
		{"seven digits", "+2637712", false},
		{"sixteen digits", "+2637712345678901", false},
		{"missing plus", "0771234567", true},
		{"six digits", "+263771", true},
		{"seventeen digits", "+26377123456789012", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePhone(tt.input, "phone")
			if tt.wantErr {
				assert.NotNil(t, err)
			} else {
				assert.Nil(t, err)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	assert.Nil(t, ValidateEmail(""))
	assert.Nil(t, ValidateEmail("someone@example.org"))
	assert.NotNil(t, ValidateEmail("not-an-email"))
	assert.NotNil(t, ValidateEmail("two@at@signs.com"))
}

func TestValidateDateOfBirth(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", "1990-06-01", false},
		{"today", "2026-03-15", false},
		{"future", "2026-03-16", true},
		{"garbage", "not-a-date", true},
		{"empty", "", true},
		{"age 120", "1906-03-15", false},
		{"age 121", "1905-03-14", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDateOfBirth(tt.input, testNow)
			if tt.wantErr {
				assert.NotNil(t, err)
			} else {
				assert.Nil(t, err)
			}
		})
	}
}

func validCreateRequest() requests.CreateMemberRequest {
	return requests.CreateMemberRequest{
		Name:          "Thandiwe",
		Surname:       "Moyo",
		Gender:        "female",
		DateOfBirth:   "1995-04-20",
		Phone:         "+263771234567",
		DateOfEntry:   "2025-11-01",
		ReasonOfEntry: "Transferred from the Harare branch",
		Address:       "12 Main Street, Bulawayo",
		NextOfKin: requests.NextOfKinPayload{
			Name:         "Nomsa",
			Surname:      "Moyo",
			Relationship: "parent",
			Phone:        "+263772223344",
			Address:      "12 Main Street, Bulawayo",
		},
		MainBranch: "bulawayo-hq",
	}
}

func TestValidateCreateMember(t *testing.T) {
	t.Run("valid request passes", func(t *testing.T) {
		req := validCreateRequest()
		errs := ValidateCreateMember(&req, testNow)
		assert.Empty(t, errs)
	})

	t.Run("collects every failing field", func(t *testing.T) {
		req := validCreateRequest()
		req.Name = "123"
		req.Phone = "bad"
		req.NextOfKin.Relationship = "cousin"

		errs := ValidateCreateMember(&req, testNow)
		require.NotEmpty(t, errs)

		fields := make(map[string]bool)
		for _, e := range errs {
			fields[e.Field] = true
		}
		assert.True(t, fields["name"])
		assert.True(t, fields["phone"])
		assert.True(t, fields["nextOfKin.relationship"])
	})

	t.Run("one error per field", func(t *testing.T) {
		req := validCreateRequest()
		req.Phone = ""

		errs := ValidateCreateMember(&req, testNow)
		count := 0
		for _, e := range errs {
			if e.Field == "phone" {
				count++
			}
		}
		assert.Equal(t, 1, count)
	})
}

func TestValidateUpdateMember(t *testing.T) {
	t.Run("empty patch passes", func(t *testing.T) {
		errs := ValidateUpdateMember(&requests.UpdateMemberRequest{}, testNow)
		assert.Empty(t, errs)
	})

	t.Run("only present fields checked", func(t *testing.T) {
		bad := "9"
		errs := ValidateUpdateMember(&requests.UpdateMemberRequest{Phone: &bad}, testNow)
		require.Len(t, errs, 1)
		assert.Equal(t, "phone", errs[0].Field)
	})
}

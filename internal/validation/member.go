package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"ekklesia/registry/internal/models/dtos"
	"ekklesia/registry/internal/models/dtos/requests"

	"github.com/go-playground/validator/v10"
)

const (
	maxNameLen    = 100
	maxEmailLen   = 254
	maxAddressLen = 200
	maxReasonLen  = 500
	maxAge        = 120
)

var (
	validate = validator.New(validator.WithRequiredStructEnabled())

	nameRe     = regexp.MustCompile(`^[\p{L} ,.'-]+$`)
	punctRunRe = regexp.MustCompile(`[^\p{L}]{3,}`)
	emailRe    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	addressRe  = regexp.MustCompile(`^[\p{L}0-9 .,\-'/#&]+$`)
	reasonRe   = regexp.MustCompile(`^[\p{L}0-9 .,!?\-'"]+$`)
	digitsRe   = regexp.MustCompile(`[^\d+]`)
)

// Struct runs the validator tags on a request DTO and maps failures to
// field errors. Field-content rules beyond the tags live in the
// Validate* helpers below.
func Struct(req any) []dtos.FieldError {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []dtos.FieldError{{Field: "body", Message: err.Error()}}
	}

	errors := make([]dtos.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		errors = append(errors, dtos.FieldError{
			Field:   fieldName(fe.Namespace()),
			Message: tagMessage(fe),
		})
	}
	return errors
}

func fieldName(namespace string) string {
	// "CreateMemberRequest.NextOfKin.Phone" -> "nextOfKin.phone"
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, p := range parts {
		parts[i] = lowerFirst(p)
	}
	return strings.Join(parts, ".")
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", lowerFirst(fe.Field()))
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", lowerFirst(fe.Field()), fe.Param())
	case "email":
		return "please enter a valid email address"
	default:
		return fmt.Sprintf("%s is invalid", lowerFirst(fe.Field()))
	}
}

// ValidateName checks a given name or surname.
func ValidateName(name, field string) *dtos.FieldError {
	name = strings.TrimSpace(name)
	if name == "" {
		return &dtos.FieldError{Field: field, Message: "name is required"}
	}
	if len(name) > maxNameLen {
		return &dtos.FieldError{Field: field, Message: "name must be less than 100 characters"}
	}
	if !nameRe.MatchString(name) {
		return &dtos.FieldError{Field: field, Message: "name can only contain letters, spaces, hyphens and apostrophes"}
	}
	if punctRunRe.MatchString(name) {
		return &dtos.FieldError{Field: field, Message: "name has too many consecutive non-letter characters"}
	}
	if !strings.ContainsFunc(name, unicode.IsLetter) {
		return &dtos.FieldError{Field: field, Message: "name must contain letters"}
	}
	return nil
}

// ValidatePhone requires international format: leading + and 7-16 digits.
func ValidatePhone(phone, field string) *dtos.FieldError {
	if strings.TrimSpace(phone) == "" {
		return &dtos.FieldError{Field: field, Message: "phone number is required"}
	}
	normalized := digitsRe.ReplaceAllString(phone, "")
	if !strings.HasPrefix(normalized, "+") {
		return &dtos.FieldError{Field: field, Message: "phone number must start with a country code, e.g. +263"}
	}
	if strings.Contains(normalized[1:], "+") {
		return &dtos.FieldError{Field: field, Message: "phone number can only contain digits and a leading plus"}
	}
	// The + is not a digit; only the digits count toward the bounds.
	digits := len(normalized) - 1
	if digits < 7 || digits > 16 {
		return &dtos.FieldError{Field: field, Message: "phone number must be between 7 and 16 digits including country code"}
	}
	return nil
}

// ValidateEmail accepts empty (email is optional).
func ValidateEmail(email string) *dtos.FieldError {
	if strings.TrimSpace(email) == "" {
		return nil
	}
	if len(email) > maxEmailLen {
		return &dtos.FieldError{Field: "email", Message: "email must be less than 254 characters"}
	}
	if !emailRe.MatchString(email) {
		return &dtos.FieldError{Field: "email", Message: "please enter a valid email address"}
	}
	return nil
}

func ValidateAddress(address, field string) *dtos.FieldError {
	address = strings.TrimSpace(address)
	if address == "" {
		return &dtos.FieldError{Field: field, Message: "address is required"}
	}
	if len(address) > maxAddressLen {
		return &dtos.FieldError{Field: field, Message: "address must be less than 200 characters"}
	}
	if !addressRe.MatchString(address) {
		return &dtos.FieldError{Field: field, Message: "address contains invalid characters"}
	}
	return nil
}

// ValidateDateOfBirth parses an ISO date and bounds the age at 0-120.
func ValidateDateOfBirth(dob string, now time.Time) *dtos.FieldError {
	if dob == "" {
		return &dtos.FieldError{Field: "dateOfBirth", Message: "date of birth is required"}
	}
	parsed, err := time.Parse("2006-01-02", dob)
	if err != nil {
		return &dtos.FieldError{Field: "dateOfBirth", Message: "please enter a valid date"}
	}
	if parsed.After(now) {
		return &dtos.FieldError{Field: "dateOfBirth", Message: "date of birth cannot be in the future"}
	}
	age := now.Year() - parsed.Year()
	if parsed.AddDate(age, 0, 0).After(now) {
		age--
	}
	if age > maxAge {
		return &dtos.FieldError{Field: "dateOfBirth", Message: "age must be less than 120"}
	}
	return nil
}

func ValidateReasonOfEntry(reason string) *dtos.FieldError {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return &dtos.FieldError{Field: "reasonOfEntry", Message: "reason of entry is required"}
	}
	if len(reason) > maxReasonLen {
		return &dtos.FieldError{Field: "reasonOfEntry", Message: "reason of entry must be less than 500 characters"}
	}
	if !reasonRe.MatchString(reason) {
		return &dtos.FieldError{Field: "reasonOfEntry", Message: "reason of entry contains invalid characters"}
	}
	return nil
}

// ValidateCreateMember runs the tag pass plus the content rules on a
// create payload, collecting every failure rather than stopping early.
func ValidateCreateMember(req *requests.CreateMemberRequest, now time.Time) []dtos.FieldError {
	errors := Struct(req)

	appendErr := func(e *dtos.FieldError) {
		if e != nil {
			errors = append(errors, *e)
		}
	}

	appendErr(ValidateName(req.Name, "name"))
	appendErr(ValidateName(req.Surname, "surname"))
	appendErr(ValidatePhone(req.Phone, "phone"))
	if req.Email != nil {
		appendErr(ValidateEmail(*req.Email))
	}
	appendErr(ValidateAddress(req.Address, "address"))
	appendErr(ValidateDateOfBirth(req.DateOfBirth, now))
	appendErr(ValidateReasonOfEntry(req.ReasonOfEntry))

	appendErr(ValidateName(req.NextOfKin.Name, "nextOfKin.name"))
	appendErr(ValidateName(req.NextOfKin.Surname, "nextOfKin.surname"))
	appendErr(ValidatePhone(req.NextOfKin.Phone, "nextOfKin.phone"))
	appendErr(ValidateAddress(req.NextOfKin.Address, "nextOfKin.address"))

	return dedupeByField(errors)
}

// ValidateUpdateMember checks only the fields present in the patch.
func ValidateUpdateMember(req *requests.UpdateMemberRequest, now time.Time) []dtos.FieldError {
	errors := Struct(req)

	appendErr := func(e *dtos.FieldError) {
		if e != nil {
			errors = append(errors, *e)
		}
	}

	if req.Name != nil {
		appendErr(ValidateName(*req.Name, "name"))
	}
	if req.Surname != nil {
		appendErr(ValidateName(*req.Surname, "surname"))
	}
	if req.Phone != nil {
		appendErr(ValidatePhone(*req.Phone, "phone"))
	}
	if req.Email != nil {
		appendErr(ValidateEmail(*req.Email))
	}
	if req.Address != nil {
		appendErr(ValidateAddress(*req.Address, "address"))
	}
	if req.ReasonOfEntry != nil {
		appendErr(ValidateReasonOfEntry(*req.ReasonOfEntry))
	}
	if req.NextOfKin != nil {
		appendErr(ValidateName(req.NextOfKin.Name, "nextOfKin.name"))
		appendErr(ValidateName(req.NextOfKin.Surname, "nextOfKin.surname"))
		appendErr(ValidatePhone(req.NextOfKin.Phone, "nextOfKin.phone"))
		appendErr(ValidateAddress(req.NextOfKin.Address, "nextOfKin.address"))
	}

	return dedupeByField(errors)
}

func dedupeByField(errors []dtos.FieldError) []dtos.FieldError {
	if len(errors) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(errors))
	out := errors[:0]
	for _, e := range errors {
		if seen[e.Field] {
			continue
		}
		seen[e.Field] = true
		out = append(out, e)
	}
	return out
}

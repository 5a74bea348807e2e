package reconcile

import "strings"

// Canonical field names produced by header normalization
const (
	FieldName         = "candidateName"
	FieldEmail        = "email"
	FieldPhone        = "phone"
	FieldExperience   = "experience"
	FieldCompany      = "company"
	FieldCurrentCTC   = "currentCtc"
	FieldExpectedCTC  = "expectedCtc"
	FieldNoticePeriod = "noticePeriod"
	FieldLocations    = "locations"
	FieldAvailability = "availability"
)

// headerSynonyms maps normalized human header variants to canonical fields.
// Lookup is case-insensitive and whitespace-trimmed; headers missing from
// this table are silently dropped.
var headerSynonyms = map[string]string{
	"name":           FieldName,
	"candidate name": FieldName,
	"candidate":      FieldName,
	"full name":      FieldName,
	"applicant name": FieldName,

	"email":         FieldEmail,
	"e-mail":        FieldEmail,
	"e mail":        FieldEmail,
	"e mail id":     FieldEmail,
	"e-mail id":     FieldEmail,
	"email id":      FieldEmail,
	"mail":          FieldEmail,
	"mail id":       FieldEmail,
	"email address": FieldEmail,

	"phone":          FieldPhone,
	"phone number":   FieldPhone,
	"phone no":       FieldPhone,
	"mobile":         FieldPhone,
	"mobile number":  FieldPhone,
	"mobile no":      FieldPhone,
	"contact":        FieldPhone,
	"contact number": FieldPhone,

	"experience":          FieldExperience,
	"total experience":    FieldExperience,
	"experience years":    FieldExperience,
	"years of experience": FieldExperience,
	"yoe":                 FieldExperience,
	"exp":                 FieldExperience,

	"company":          FieldCompany,
	"current company":  FieldCompany,
	"current employer": FieldCompany,
	"employer":         FieldCompany,
	"organization":     FieldCompany,

	"ctc":                  FieldCurrentCTC,
	"current ctc":          FieldCurrentCTC,
	"current salary":       FieldCurrentCTC,
	"current compensation": FieldCurrentCTC,

	"ectc":                  FieldExpectedCTC,
	"expected ctc":          FieldExpectedCTC,
	"expected salary":       FieldExpectedCTC,
	"expected compensation": FieldExpectedCTC,

	"notice":               FieldNoticePeriod,
	"notice period":        FieldNoticePeriod,
	"notice period (days)": FieldNoticePeriod,

	"location":            FieldLocations,
	"locations":           FieldLocations,
	"current location":    FieldLocations,
	"preferred location":  FieldLocations,
	"preferred locations": FieldLocations,
	"city":                FieldLocations,

	"availability":      FieldAvailability,
	"available from":    FieldAvailability,
	"availability date": FieldAvailability,
	"joining date":      FieldAvailability,
}

// normalizeHeader lowercases, trims and collapses internal whitespace so
// variants like " E mail  Id " resolve through the synonym table
func normalizeHeader(raw string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(raw))), " ")
}

// CanonicalField resolves a raw spreadsheet header to its canonical field
// name. The second return is false for unknown headers.
func CanonicalField(rawHeader string) (string, bool) {
	canon, ok := headerSynonyms[normalizeHeader(rawHeader)]
	return canon, ok
}

// NormalizeRow maps one raw row into canonical fields, dropping unknown
// headers and empty values
func NormalizeRow(raw map[string]string) map[string]string {
	mapped := make(map[string]string, len(raw))
	for key, value := range raw {
		canon, ok := CanonicalField(key)
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		mapped[canon] = value
	}
	return mapped
}

// ValidateStructure checks whether the header set can yield row identity.
// A file whose headers resolve to neither email nor phone can never produce
// a valid row.
func ValidateStructure(headers []string) (bool, string) {
	hasEmail, hasPhone := false, false
	for _, h := range headers {
		switch canon, _ := CanonicalField(h); canon {
		case FieldEmail:
			hasEmail = true
		case FieldPhone:
			hasPhone = true
		}
	}

	if !hasEmail && !hasPhone {
		return false, "email_or_phone"
	}
	return true, ""
}

package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// airportCodeRegex matches IATA airport and metropolitan-area codes.
var airportCodeRegex = regexp.MustCompile(`^[A-Z]{3}$`)

// ValidateAirportCode checks that code is a three-letter upper-case IATA code.
func ValidateAirportCode(code string) error {
	if code == "" {
		return New(ErrCodeInvalidAirport, "airport code cannot be empty")
	}
	if !airportCodeRegex.MatchString(code) {
		return New(ErrCodeInvalidAirport, "invalid airport code %q (want three upper-case letters)", code)
	}
	return nil
}

// zoneNameRegex matches IANA zone names such as "America/New_York" or "UTC".
var zoneNameRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_+-]*(/[A-Za-z0-9_+-]+)*$`)

// ValidateZoneName checks the shape of an IANA time zone name. It does not
// check that the zone exists; loading it does that.
func ValidateZoneName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidZone, "time zone name cannot be empty")
	}
	if strings.Contains(name, "..") || !zoneNameRegex.MatchString(name) {
		return New(ErrCodeInvalidZone, "invalid time zone name %q", name)
	}
	return nil
}

// ValidatePath validates a local file path given on the command line or in
// configuration.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}

// Package datauri validates and decodes the image payloads clients send as
// data-URLs, plus the free-form values (conditions, emails) that share the
// same rejection rules.
package datauri

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// JPEGPrefix is the only accepted data-URL header for uploaded images.
const JPEGPrefix = "data:image/jpeg;base64"

// Validation failures carry the exact client-facing messages.
var (
	ErrEmpty         = errors.New("Error!, Empty inputs not allowed!")
	ErrNumericInput  = errors.New("Error!, Number inputs not allowed!")
	ErrInvalidFormat = errors.New("Error!, Invalid format")
)

// ValidateImage checks a request-body image value. The check order is part of
// the contract: Empty, then NumericInput, then InvalidFormat, so a numeric
// string reports the more specific numeric reason and never the format one.
func ValidateImage(v any) error {
	s, err := requireText(v)
	if err != nil {
		return err
	}
	if strings.SplitN(s, ",", 2)[0] != JPEGPrefix {
		return ErrInvalidFormat
	}
	return nil
}

// ValidateValue applies only the empty and numeric checks. Used for condition
// strings, account emails, and the report-removal path, which does not
// require the data-URL prefix on imgURL.
func ValidateValue(v any) error {
	_, err := requireText(v)
	return err
}

// Decode strips the data-URL header and returns the raw image bytes.
func Decode(s string) ([]byte, error) {
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("data url has no payload")
	}
	data, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, fmt.Errorf("decode base64 payload: %w", err)
	}
	return data, nil
}

// requireText rejects absent, numeric, and non-string values, returning the
// payload as a string otherwise.
func requireText(v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return "", ErrEmpty
	case string:
		if val == "" {
			return "", ErrEmpty
		}
		if isNumeric(val) {
			return "", ErrNumericInput
		}
		return val, nil
	case float64, int, int64, json.Number, bool:
		// JSON numbers and booleans coerce to numbers in the client contract.
		return "", ErrNumericInput
	default:
		return "", ErrEmpty
	}
}

// isNumeric reports whether the string coerces to a number: blank strings
// (whitespace only) and anything strconv parses as a float both count.
func isNumeric(s string) bool {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return true
	}
	_, err := strconv.ParseFloat(trimmed, 64)
	return err == nil
}

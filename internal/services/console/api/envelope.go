package api

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// SuccessCode is the envelope code that marks a successful call.
const SuccessCode = 200

// Envelope is the wrapper every backend API response uses.
type Envelope[T any] struct {
	Code    int    `json:"code"`
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
}

// rawEnvelope keeps code and message undecoded: only a JSON number equal to
// SuccessCode succeeds, and any message is reported as sent.
type rawEnvelope struct {
	Code    json.RawMessage `json:"code"`
	Data    json.RawMessage `json:"data"`
	Message json.RawMessage `json:"message"`
}

// succeeded reports whether code is the number 200. 200.0 and 2e2 count;
// the string "200" does not.
func (e rawEnvelope) succeeded() bool {
	value, ok := e.numericCode()
	return ok && value == SuccessCode
}

func (e rawEnvelope) numericCode() (float64, bool) {
	code := bytes.TrimSpace(e.Code)
	if len(code) == 0 || (code[0] != '-' && (code[0] < '0' || code[0] > '9')) {
		return 0, false
	}
	value, err := strconv.ParseFloat(string(code), 64)
	return value, err == nil
}

// code renders the envelope code for error metadata.
func (e rawEnvelope) code() string {
	if value, ok := e.numericCode(); ok {
		return strconv.FormatFloat(value, 'f', -1, 64)
	}
	var text string
	if err := json.Unmarshal(e.Code, &text); err == nil {
		return strings.TrimSpace(text)
	}
	return ""
}

// message returns the envelope message as text. Strings are used as is,
// other truthy scalars in their JSON form.
func (e rawEnvelope) message() string {
	raw := bytes.TrimSpace(e.Message)
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return strings.TrimSpace(text)
	}
	if raw[0] == '{' || raw[0] == '[' || string(raw) == "false" {
		return ""
	}
	if value, err := strconv.ParseFloat(string(raw), 64); err == nil && value == 0 {
		return ""
	}
	return string(raw)
}

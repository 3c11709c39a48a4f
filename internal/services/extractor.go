package services

import (
	"encoding/json"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"alfredoptarigan/ats-resume-checker/internal/models"
)

var compiledEvaluationSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewStringLoader(evaluationSchema))
})

// ExtractStructured looks for the evaluation object in free-form model output.
// It returns nil when no complete, valid object can be read; it never panics.
func ExtractStructured(text string) (result *models.EvaluationResult) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
		}
	}()

	raw, ok := firstJSONObject(text)
	if !ok {
		return nil
	}

	schema, err := compiledEvaluationSchema()
	if err != nil {
		return nil
	}
	validation, err := schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil || !validation.Valid() {
		return nil
	}

	// Second gate: the schema accepts 82.0 and 1e1 as integers, decoding into
	// int rejects them.
	var out models.EvaluationResult
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return &out
}

// firstJSONObject decodes exactly one JSON value starting at the first '{'.
// Braces inside string values and prose after the object do not affect the
// bounds.
func firstJSONObject(text string) (json.RawMessage, bool) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return nil, false
	}

	var raw json.RawMessage
	dec := json.NewDecoder(strings.NewReader(text[start:]))
	if err := dec.Decode(&raw); err != nil {
		return nil, false
	}
	return raw, true
}

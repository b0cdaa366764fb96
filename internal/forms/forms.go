// Package forms validates admin form payloads against fixed JSON schemas and
// normalizes the free-text fields they carry.
package forms

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/qri-io/jsonschema"
)

//go:embed job_schema.json
var jobSchemaJSON []byte

// Validator holds the compiled form schemas.
type Validator struct {
	job *jsonschema.Schema
}

func NewValidator() (*Validator, error) {
	rs := &jsonschema.Schema{}
	if err := json.Unmarshal(jobSchemaJSON, rs); err != nil {
		return nil, fmt.Errorf("compile job schema: %w", err)
	}

	return &Validator{job: rs}, nil
}

// ValidateJob checks a raw job form payload against the job schema. Schema
// violations come back as a single error listing every failed property.
func (v *Validator) ValidateJob(ctx context.Context, payload []byte) error {
	keyErrs, err := v.job.ValidateBytes(ctx, payload)
	if err != nil {
		return fmt.Errorf("validate job payload: %w", err)
	}
	if len(keyErrs) > 0 {
		msgs := make([]string, 0, len(keyErrs))
		for _, ke := range keyErrs {
			msgs = append(msgs, ke.Message)
		}
		return fmt.Errorf("invalid job payload: %s", strings.Join(msgs, "; "))
	}

	return nil
}

// SplitRequirements turns the newline-separated requirements textarea into an
// ordered list: entries trimmed, blank lines dropped.
func SplitRequirements(text string) []string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		out = append(out, l)
	}

	return out
}

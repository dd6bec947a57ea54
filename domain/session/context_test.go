package session

import (
	"testing"

	"ikigai/internal/errors"
)

func TestNewContext_Validation(t *testing.T) {
	tests := []struct {
		name        string
		userName    string
		age         int
		profession  string
		expectError bool
	}{
		{
			name:       "valid context",
			userName:   "Marina Silva",
			age:        29,
			profession: "Designer",
		},
		{
			name:        "empty name",
			userName:    "",
			age:         29,
			profession:  "Designer",
			expectError: true,
		},
		{
			name:        "single character name",
			userName:    "M",
			age:         29,
			profession:  "Designer",
			expectError: true,
		},
		{
			name:        "whitespace padded single character",
			userName:    "  M  ",
			age:         29,
			profession:  "Designer",
			expectError: true,
		},
		{
			name:       "two character name is enough",
			userName:   "Jo",
			age:        29,
			profession: "Designer",
		},
		{
			name:        "single accented character counts as one",
			userName:    "É",
			age:         29,
			profession:  "Designer",
			expectError: true,
		},
		{
			name:       "two accented characters are enough",
			userName:   "Éô",
			age:        29,
			profession: "Designer",
		},
		{
			name:        "age below range",
			userName:    "Marina",
			age:         9,
			profession:  "Designer",
			expectError: true,
		},
		{
			name:       "age at lower bound",
			userName:   "Marina",
			age:        10,
			profession: "Designer",
		},
		{
			name:       "age at upper bound",
			userName:   "Marina",
			age:        120,
			profession: "Designer",
		},
		{
			name:        "age above range",
			userName:    "Marina",
			age:         121,
			profession:  "Designer",
			expectError: true,
		},
		{
			name:        "empty profession",
			userName:    "Marina",
			age:         29,
			profession:  "",
			expectError: true,
		},
		{
			name:        "whitespace profession",
			userName:    "Marina",
			age:         29,
			profession:  "   ",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, err := NewContext(tt.userName, tt.age, tt.profession, "Arts", LifeStageEmployed, "exploring options")

			if tt.expectError {
				if err == nil {
					t.Fatalf("expected validation error, got none")
				}
				if !errors.HasCode(err, errors.CodeValidationError) {
					t.Errorf("expected VALIDATION_ERROR code, got %s", errors.GetCode(err))
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ctx.Name != tt.userName || ctx.Age != tt.age || ctx.CurrentProfession != tt.profession {
				t.Errorf("context fields did not round-trip: %+v", ctx)
			}
		})
	}
}

func TestParseLifeStage(t *testing.T) {
	for _, valid := range []string{"student", "employed", "unemployed", "transition", "retired"} {
		if _, err := ParseLifeStage(valid); err != nil {
			t.Errorf("expected %q to parse, got %v", valid, err)
		}
	}

	if _, err := ParseLifeStage("astronaut"); err == nil {
		t.Error("expected unknown life stage to be rejected")
	}
}

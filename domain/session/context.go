package session

import (
	"strings"
	"unicode/utf8"

	"ikigai/internal/errors"
)

// LifeStage identifies where the user currently is in their working life
type LifeStage string

const (
	LifeStageStudent    LifeStage = "student"
	LifeStageEmployed   LifeStage = "employed"
	LifeStageUnemployed LifeStage = "unemployed"
	LifeStageTransition LifeStage = "transition"
	LifeStageRetired    LifeStage = "retired"
)

// LifeStageLabels maps life stages to human-readable labels for prompts and reports
var LifeStageLabels = map[LifeStage]string{
	LifeStageStudent:    "Student",
	LifeStageEmployed:   "Employed",
	LifeStageUnemployed: "Unemployed",
	LifeStageTransition: "In career transition",
	LifeStageRetired:    "Retired",
}

// IsValid reports whether the life stage is one of the known values
func (ls LifeStage) IsValid() bool {
	_, ok := LifeStageLabels[ls]
	return ok
}

// ParseLifeStage converts a raw string into a LifeStage, used at the HTTP boundary
func ParseLifeStage(raw string) (LifeStage, error) {
	ls := LifeStage(raw)
	if !ls.IsValid() {
		return "", errors.ValidationError("unknown life stage: " + raw)
	}
	return ls, nil
}

// Context holds the user profile supplied at session creation.
// Immutable after construction; NewContext is the only way to build one.
type Context struct {
	Name              string    `json:"name"`
	Age               int       `json:"age"`
	CurrentProfession string    `json:"currentProfession"`
	EducationArea     string    `json:"educationArea"`
	LifeStage         LifeStage `json:"lifeStage"`
	CurrentSituation  string    `json:"currentSituation"`
}

// NewContext validates and builds a user context. A Context that fails
// validation never exists.
func NewContext(name string, age int, currentProfession, educationArea string, lifeStage LifeStage, currentSituation string) (Context, error) {
	// Count runes, not bytes: "É" is one character even at two bytes.
	if utf8.RuneCountInString(strings.TrimSpace(name)) < 2 {
		return Context{}, errors.ValidationError("name must have at least 2 characters")
	}
	if age < 10 || age > 120 {
		return Context{}, errors.ValidationError("age must be between 10 and 120")
	}
	if strings.TrimSpace(currentProfession) == "" {
		return Context{}, errors.ValidationError("current profession is required")
	}
	return Context{
		Name:              name,
		Age:               age,
		CurrentProfession: currentProfession,
		EducationArea:     educationArea,
		LifeStage:         lifeStage,
		CurrentSituation:  currentSituation,
	}, nil
}

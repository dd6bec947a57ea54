package ai

import (
	"fmt"
	"strings"

	"ikigai/domain/session"
)

// BuildPrompt renders the career-coach prompt from the user's context and
// their four-pillar answers. The model is instructed to return bare JSON
// matching the analysis shape.
func BuildPrompt(userCtx session.Context, answers session.Answers) string {
	var b strings.Builder

	b.WriteString("You are a career coach specialized in the Ikigai method.\n")
	b.WriteString("Analyze the answers below and provide a complete, empathetic and practical analysis.\n\n")

	b.WriteString("## USER CONTEXT\n")
	fmt.Fprintf(&b, "Name: %s\n", userCtx.Name)
	fmt.Fprintf(&b, "Age: %d years\n", userCtx.Age)
	fmt.Fprintf(&b, "Current profession: %s\n", userCtx.CurrentProfession)
	fmt.Fprintf(&b, "Education area: %s\n", orUnknown(userCtx.EducationArea))
	fmt.Fprintf(&b, "Life stage: %s\n", session.LifeStageLabels[userCtx.LifeStage])
	fmt.Fprintf(&b, "Current situation: %s\n\n", orUnknown(userCtx.CurrentSituation))

	b.WriteString("## IKIGAI ANSWERS\n\n")
	writePillar(&b, "What they love (Passion)", answers.Love)
	writePillar(&b, "What they are good at (Skills)", answers.Skills)
	writePillar(&b, "What the world needs (Mission)", answers.WorldNeeds)
	writePillar(&b, "What they can be paid for (Profession)", answers.PaidFor)

	b.WriteString("## INSTRUCTIONS\n")
	b.WriteString("Analyze the answers deeply, identify patterns, connections between the 4 pillars and gaps.\n")
	b.WriteString("Return ONLY valid JSON (no markdown, no explanations) with this structure:\n")
	b.WriteString(`{
  "profileSummary": "Detailed 2-3 paragraph summary of this person's profile, strengths and essence based on the answers",
  "suggestedCareers": ["Career 1: short explanation of the fit", "Career 2: short explanation", "...up to 5 careers"],
  "identifiedGaps": ["Gap 1: description and how to close it", "Gap 2: description and solution", "...up to 4 gaps"],
  "actionPlan": "Practical action plan in running text with 5-7 concrete steps the person can start today/this week/this month",
  "currentSituationAnalysis": "Analysis of how the person's current situation relates to their Ikigai with recommendations specific to their life stage"
}`)

	return strings.TrimSpace(b.String())
}

func writePillar(b *strings.Builder, title string, entries []string) {
	fmt.Fprintf(b, "### %s:\n", title)
	if len(entries) == 0 {
		b.WriteString("- No answers\n\n")
		return
	}
	for _, entry := range entries {
		fmt.Fprintf(b, "- %s\n", entry)
	}
	b.WriteString("\n")
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Not provided"
	}
	return s
}

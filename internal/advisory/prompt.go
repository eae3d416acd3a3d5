package advisory

import (
	"encoding/json"
	"fmt"

	"github.com/iwvelando/ifta-report/internal/ifta"
	"google.golang.org/genai"
)

const promptTemplate = `Analyze the following IFTA trip logs for potential audit risks or data inconsistencies.
The fleet is operating under 2026 tax rates.

Trip Data:
%s

Please provide:
1. A risk level assessment for an IFTA audit (Low, Medium, or High).
2. A concise summary explaining the data (focus on MPG consistency and jurisdiction distribution).
3. Actionable recommendations for the carrier.`

// BuildPrompt renders the assessment prompt for trips.
func BuildPrompt(trips []ifta.Trip) (string, error) {
	if trips == nil {
		trips = []ifta.Trip{}
	}
	data, err := json.Marshal(trips)
	if err != nil {
		return "", fmt.Errorf("failed to encode trips: %w", err)
	}
	return fmt.Sprintf(promptTemplate, data), nil
}

// generateConfig asks the model for JSON matching Insights.
func generateConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"riskLevel":       {Type: genai.TypeString, Description: "Low, Medium, or High"},
				"summary":         {Type: genai.TypeString},
				"recommendations": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
			},
			Required: []string{"riskLevel", "summary", "recommendations"},
		},
	}
}

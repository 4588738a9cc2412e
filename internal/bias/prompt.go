package bias

import "fmt"

const analysisPromptTemplate = `
Return ONLY valid JSON.

Schema:
{
  "summary": "string",
  "bias_scores": {
    "Left": float,
    "Center": float,
    "Right": float
  },
  "top_signal": "string",
  "essay": "string",
  "global_perspective": "string"
}

Rules:
- bias_scores must sum to 1
- summary = 4-6 sentences
- essay = 5-7 sentences
- global_perspective = 4-6 sentences, describing how different regions and political cultures might interpret this story.
- Keep global_perspective balanced; avoid claiming a single world consensus.

Article:
%s
`

const repairPromptPrefix = "Convert this to valid JSON using the exact schema and no markdown:\n\n"

func analysisPrompt(text string) string {
	return fmt.Sprintf(analysisPromptTemplate, text)
}

func repairPrompt(raw string) string {
	return repairPromptPrefix + raw
}

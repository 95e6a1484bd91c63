package constant

import "ide-assistant-be/pkg/llm"

// AssistantTools declares the functions the editor client can act on. The
// backend never executes these; tool invocations are returned verbatim.
func AssistantTools() []llm.Tool {
	return []llm.Tool{
		{
			Name:        "openFile",
			Description: "Open a file in the editor, using the project directory structure from the context to resolve the path.",
			Parameters: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Path of the file to open, relative to the project root.",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "getGithubIssue",
			Description: "Return the number of the GitHub issue the user mentioned, with an explanation and a proposed solution when the issue description is available.",
			Parameters: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"issueNumber": map[string]interface{}{
						"type":        "integer",
						"description": "Number of the mentioned issue.",
					},
					"issueDescription": map[string]interface{}{
						"type":        "string",
						"description": "Explanation of the issue, when its description was given.",
					},
					"issueSolution": map[string]interface{}{
						"type":        "string",
						"description": "Code with explanation solving the issue, when its description was given.",
					},
				},
				"required": []string{"issueNumber"},
			},
		},
	}
}

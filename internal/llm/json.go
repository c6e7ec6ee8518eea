package llm

import (
	"encoding/json"
	"strings"
)

// DecodeJSON parses a JSON object out of raw model output. Models sometimes
// wrap JSON in markdown code fences even when asked not to, so fences are
// stripped before decoding. A decode failure is a fatal RemoteCallError:
// resending the same prompt is unlikely to fix a malformed response.
func DecodeJSON(content string, out any) error {
	clean := strings.TrimSpace(content)

	if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```json")
		clean = strings.TrimPrefix(clean, "```")
		clean = strings.TrimSuffix(strings.TrimSpace(clean), "```")
		clean = strings.TrimSpace(clean)
	}

	if err := json.Unmarshal([]byte(clean), out); err != nil {
		return Fatal(err)
	}
	return nil
}

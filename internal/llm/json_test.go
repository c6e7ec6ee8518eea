package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSONPlain(t *testing.T) {
	var out map[string]any
	require.NoError(t, DecodeJSON(`{"name": "serum", "count": 3}`, &out))
	assert.Equal(t, "serum", out["name"])
}

func TestDecodeJSONStripsFences(t *testing.T) {
	var out struct {
		Questions []string `json:"questions"`
	}
	raw := "```json\n{\"questions\": [\"one\", \"two\"]}\n```"
	require.NoError(t, DecodeJSON(raw, &out))
	assert.Equal(t, []string{"one", "two"}, out.Questions)
}

func TestDecodeJSONStripsBareFences(t *testing.T) {
	var out map[string]any
	raw := "```\n{\"k\": true}\n```"
	require.NoError(t, DecodeJSON(raw, &out))
	assert.Equal(t, true, out["k"])
}

func TestDecodeJSONTrimsWhitespace(t *testing.T) {
	var out map[string]any
	require.NoError(t, DecodeJSON("  \n {\"k\": 1} \n ", &out))
}

func TestDecodeJSONMalformedIsFatal(t *testing.T) {
	var out map[string]any
	err := DecodeJSON("this is not json", &out)
	require.Error(t, err)

	var rce *RemoteCallError
	require.ErrorAs(t, err, &rce)
	assert.False(t, rce.Transient)
}

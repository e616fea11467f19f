package vision

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseModelReply_PlainJSON(t *testing.T) {
	result := ParseModelReply(`{"brand": "Padron", "name": "1964 Anniversary", "strength": "Full", "details": "Maduro wrapper"}`)

	require.NotNil(t, result.Info)
	assert.Equal(t, "Padron", result.Info.Brand)
	assert.Equal(t, "1964 Anniversary", result.Info.Name)
	assert.Equal(t, "Full", result.Info.Strength)
	assert.Empty(t, result.ErrMessage)
}

func TestParseModelReply_FencedJSON(t *testing.T) {
	content := "```json\n{\"brand\": \"Cohiba\", \"name\": \"Behike\", \"strength\": \"Medium-Full\", \"details\": \"\"}\n```"
	result := ParseModelReply(content)

	require.NotNil(t, result.Info)
	assert.Equal(t, "Cohiba", result.Info.Brand)
}

func TestParseModelReply_ModelDeclined(t *testing.T) {
	result := ParseModelReply(`{"error": "Unable to identify cigar"}`)

	assert.Nil(t, result.Info)
	assert.Equal(t, "Unable to identify cigar", result.ErrMessage)
}

func TestParseModelReply_NotJSON(t *testing.T) {
	result := ParseModelReply("I think this might be a Montecristo but I'm not sure.")

	assert.Nil(t, result.Info)
	assert.Empty(t, result.ErrMessage)
	assert.NotEmpty(t, result.Raw)
}

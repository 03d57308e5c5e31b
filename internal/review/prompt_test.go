package review

import (
	"testing"

	"github.com/critiq-cli/critiq/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptBuilder(t *testing.T) {
	pb, err := NewPromptBuilder()
	require.NoError(t, err)

	system, err := pb.SystemPrompt()
	require.NoError(t, err)
	assert.Contains(t, system, "securityChecklist")
	assert.Contains(t, system, "critical, high, medium, low, info")
	assert.Contains(t, system, "valid JSON object")

	user, err := pb.UserPrompt(model.UploadedFile{
		Name:     "server.py",
		Language: "python",
		Content:  "import os\nprint(os.environ)",
	})
	require.NoError(t, err)
	assert.Contains(t, user, "Filename: server.py")
	assert.Contains(t, user, "python")
	assert.Contains(t, user, "print(os.environ)")
}

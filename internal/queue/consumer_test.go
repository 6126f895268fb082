package queue

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleMessageAppendsLines(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	for _, email := range []string{"a@jacksongov.org", "b@courts.mo.gov"} {
		body, err := json.Marshal(ActivityEvent{ID: "ev-" + email, Kind: KindLogin, Email: email, SessionID: "s1", OccurredAt: "2025-05-01T12:00:00Z"})
		require.NoError(t, err)
		require.NoError(t, HandleMessage(dir, body))
	}

	bs, err := os.ReadFile(filepath.Join(dir, "activity.log"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(bs)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "[2025-05-01T12:00:00Z] LOGIN | email=a@jacksongov.org")
	assert.Contains(t, lines[1], "email=b@courts.mo.gov")
}

func TestHandleMessageRejectsBadPayloads(t *testing.T) {
	dir := t.TempDir()
	assert.Error(t, HandleMessage(dir, []byte("{not json")))
	assert.Error(t, HandleMessage(dir, []byte(`{"kind":"LOGIN"}`)))

	_, err := os.Stat(filepath.Join(dir, "activity.log"))
	assert.True(t, os.IsNotExist(err))
}

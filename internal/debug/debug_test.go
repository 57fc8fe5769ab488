package debug

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrintf_DisabledByDefault(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(nil)

	t.Setenv("DEBUG", "")
	Printf("should not appear %d\n", 1)
	assert.Empty(t, buf.String())
}

func TestLog_EnabledViaEnv(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(nil)

	t.Setenv("DEBUG", "1")
	LogWalk("visiting %s\n", "/tmp")
	LogScan("scanning %s\n", "a.txt")

	out := buf.String()
	assert.Contains(t, out, "[DEBUG:WALK] visiting /tmp")
	assert.Contains(t, out, "[DEBUG:SCAN] scanning a.txt")
}

func TestLog_NilWriterIsSafe(t *testing.T) {
	SetOutput(nil)
	t.Setenv("DEBUG", "true")
	// Must not panic with no writer configured.
	Printf("dropped\n")
	Log("WATCH", "dropped\n")
}

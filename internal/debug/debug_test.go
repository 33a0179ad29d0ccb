package debug

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToggle(t *testing.T) {
	buf := new(bytes.Buffer)
	SetOutput(buf)
	defer SetOutput(os.Stderr)
	defer Toggle(false)

	Format("hidden %d", 1)
	assert.Empty(t, buf.String())

	Toggle(true)
	Format("visible %d", 2)
	Log(Fields{"field": 3}, "structured")

	out := buf.String()
	assert.Contains(t, out, "visible 2")
	assert.Contains(t, out, "structured")
	assert.Contains(t, out, "field=3")
	assert.NotContains(t, out, "hidden")

	called := false
	Do(func() { called = true })
	assert.True(t, called)
}

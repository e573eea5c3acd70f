package cmd

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oaslint.dev/pkg/oaslint/internal/lint"
)

func TestVersionCmd_Output(t *testing.T) {
	cmd := newVersionCmd()

	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.NoError(t, err)

	output := out.String()
	assert.Contains(t, output, fmt.Sprintf("default rules\t %d", len(lint.DefaultRules())))

	if strings.Contains(output, "version: unknown") {
		return
	}

	assert.Contains(t, output, "oaslint version")
	assert.Contains(t, output, "go version")
}

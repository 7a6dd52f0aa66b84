package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestRunEvalPrintsTerm(t *testing.T) {
	exprPath := writeTempFile(t, "expr.json", `{"kind":"operator","operator":"+","args":[{"kind":"term","term":{"kind":"literal","lexical":"2","datatype":"http://www.w3.org/2001/XMLSchema#integer"}},{"kind":"term","term":{"kind":"literal","lexical":"3","datatype":"http://www.w3.org/2001/XMLSchema#integer"}}]}`)

	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"--expr", exprPath})

	err := root.Execute()
	require.NoError(t, err)
	assert.Contains(t, out.String(), "5")
}

func TestRunEvalReportsEvaluationError(t *testing.T) {
	exprPath := writeTempFile(t, "expr.json", `{"kind":"variable","name":"unbound"}`)

	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"--expr", exprPath})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, out.String(), "error:")
}

func TestRunEvalWithMapping(t *testing.T) {
	exprPath := writeTempFile(t, "expr.json", `{"kind":"variable","name":"x"}`)
	mappingPath := writeTempFile(t, "mapping.json", `{"x":{"kind":"literal","lexical":"hello","datatype":"http://www.w3.org/2001/XMLSchema#string"}}`)

	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"--expr", exprPath, "--mapping", mappingPath})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "hello")
}

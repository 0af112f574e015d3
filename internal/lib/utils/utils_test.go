package utils

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, PrintJSON(&buf, map[string]string{"method": "GET"}))
	assert.Equal(t, "{\n\t\"method\": \"GET\"\n}\n", buf.String())
}

func TestPrintJSON_Unsupported(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := PrintJSON(&buf, make(chan int))
	require.Error(t, err)
	assert.Empty(t, buf.String())
}

package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleStatement() Statement {
	return Statement{
		Title:   "Statement of Results",
		Lines:   []string{"Name: Priya Raman", "Registration Number: REG-001"},
		Headers: []string{"Subject", "Score", "Grade"},
		Rows: []map[string]string{
			{"Subject": "Algorithms", "Score": "92", "Grade": "O"},
			{"Subject": "Networks", "Score": "-", "Grade": "UA"},
		},
	}
}

func TestRenderPDF(t *testing.T) {
	data, err := NewStatementExporter().RenderPDF(sampleStatement())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "%PDF"))
}

func TestRenderPDFRequiresHeaders(t *testing.T) {
	_, err := NewStatementExporter().RenderPDF(Statement{Title: "x"})
	assert.Error(t, err)
}

func TestRenderCSV(t *testing.T) {
	data, err := NewStatementExporter().RenderCSV(sampleStatement())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "Name: Priya Raman", lines[0])
	assert.Equal(t, "Subject,Score,Grade", lines[2])
	assert.Equal(t, "Algorithms,92,O", lines[3])
	assert.Equal(t, "Networks,-,UA", lines[4])
}

func TestRenderCSVRequiresHeaders(t *testing.T) {
	_, err := NewStatementExporter().RenderCSV(Statement{})
	assert.Error(t, err)
}

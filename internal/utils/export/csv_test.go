package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVStreamerWritesRows(t *testing.T) {
	var buf bytes.Buffer
	s := NewCSVStreamer(&buf)

	require.NoError(t, s.WriteComment("# Trial Balance as of 2026-01-31"))
	require.NoError(t, s.WriteRow([]string{"Account", "Debit", "Credit"}))
	require.NoError(t, s.WriteRow([]string{"1000 Cash", "150.00", ""}))
	require.NoError(t, s.Close())

	lines := strings.Split(buf.String(), "\r\n")
	assert.Equal(t, "# Trial Balance as of 2026-01-31", lines[0])
	assert.Equal(t, "Account,Debit,Credit", lines[1])
	assert.Equal(t, "1000 Cash,150.00,", lines[2])
}

func TestCSVStreamerQuotesSpecialCharacters(t *testing.T) {
	var buf bytes.Buffer
	s := NewCSVStreamer(&buf)

	require.NoError(t, s.WriteRow([]string{`Acme, Inc.`, `said "hello"`}))
	require.NoError(t, s.Close())

	assert.Equal(t, "\"Acme, Inc.\",\"said \"\"hello\"\"\"\r\n", buf.String())
}

func TestCSVStreamerPeriodicFlush(t *testing.T) {
	var buf bytes.Buffer
	s := NewCSVStreamer(&buf)
	s.flushEvery = 2

	require.NoError(t, s.WriteRow([]string{"one"}))
	assert.Zero(t, buf.Len(), "first row should stay buffered")

	require.NoError(t, s.WriteRow([]string{"two"}))
	assert.Equal(t, "one\r\ntwo\r\n", buf.String(), "second row should trigger a flush")
}

func TestCSVStreamerNotInitialised(t *testing.T) {
	var s *CSVStreamer
	assert.Error(t, s.WriteRow([]string{"x"}))
	assert.Error(t, s.WriteComment("x"))
	assert.Error(t, s.Flush())
}

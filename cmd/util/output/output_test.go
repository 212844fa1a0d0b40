//go:build unit || !integration

package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

var columns = []TableColumn[row]{
	{ColumnConfig: table.ColumnConfig{Name: "ID"}, Value: func(r row) string { return r.ID }},
	{ColumnConfig: table.ColumnConfig{Name: "Name"}, Value: func(r row) string { return r.Name }},
}

func newCmd() (*cobra.Command, *bytes.Buffer) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)
	return cmd, &buf
}

func TestOutputCSV(t *testing.T) {
	cmd, buf := newCmd()
	err := Output(cmd, columns, OutputOptions{Format: CSVFormat}, []row{{"inst-1", "support"}, {"inst-2", "sales"}})
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "id,name", strings.ToLower(lines[0]))
	assert.Equal(t, []string{"inst-1,support", "inst-2,sales"}, lines[1:])
}

func TestOutputJSON(t *testing.T) {
	cmd, buf := newCmd()
	err := Output(cmd, columns, OutputOptions{Format: JSONFormat}, []row{{"inst-1", "support"}})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"inst-1","name":"support"}]`, buf.String())
}

func TestOutputOneYAML(t *testing.T) {
	cmd, buf := newCmd()
	err := OutputOne(cmd, columns, OutputOptions{Format: YAMLFormat}, row{"inst-1", "support"})
	require.NoError(t, err)
	assert.Equal(t, "id: inst-1\nname: support\n", buf.String())
}

func TestOutputInvalidFormat(t *testing.T) {
	cmd, _ := newCmd()
	err := OutputOneNonTabular(cmd, NonTabularOutputOptions{Format: "xml"}, row{})
	require.Error(t, err)
}

func TestKeyValue(t *testing.T) {
	cmd, buf := newCmd()
	KeyValue(cmd, []lo.Entry[string, any]{
		{Key: "Name", Value: "support"},
		{Key: "Phone", Value: ""},
		{Key: "Status", Value: "connected"},
	})
	assert.Equal(t, "Name   = support\nStatus = connected\n", buf.String())
}

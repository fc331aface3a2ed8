package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/rshade/tablekit/internal/cli"
	"github.com/rshade/tablekit/internal/render"
)

func TestExport_CSVAllFiltered(t *testing.T) {
	setupCLITest(t)
	out := filepath.Join(t.TempDir(), "nested", "accessories.csv")

	stdout, _, err := execute(t, "export", "products", "--filter", "accessories", "--all", "--out", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Exported 3 rows to "+out)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t,
		"ID,Product Name,Price,In Stock,Category\n"+
			"102,Wireless Mouse,$29,150,Accessories\n"+
			"103,USB-C Cable,$19,200,Accessories\n"+
			"105,Keyboard,$79,45,Accessories\n",
		string(data))
}

func TestExport_PageScope(t *testing.T) {
	setupCLITest(t)
	out := filepath.Join(t.TempDir(), "page.csv")

	stdout, _, err := execute(t, "export", "users", "--sort", "id:desc", "--page-size", "2", "--out", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Exported 2 rows")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t,
		"ID,Name,Email,Role,Status\n"+
			"5,Charlie Brown,charlie@example.com,Viewer,Active\n"+
			"4,Alice Williams,alice@example.com,Editor,Inactive\n",
		string(data))
}

func TestExport_XLSX(t *testing.T) {
	setupCLITest(t)
	out := filepath.Join(t.TempDir(), "projects.xlsx")

	_, _, err := execute(t, "export", "projects", "--all", "--sort", "dueDate", "--out", out)
	require.NoError(t, err)

	f, err := excelize.OpenFile(out)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Data")
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, []string{"ID", "Project Name", "Status", "Progress", "Due Date"}, rows[0])
	assert.Equal(t, "API Integration", rows[1][1])
}

func TestExport_FormatFlagOverridesExtension(t *testing.T) {
	setupCLITest(t)
	out := filepath.Join(t.TempDir(), "users.dat")

	_, _, err := execute(t, "export", "users", "--format", "csv", "--out", out)
	require.NoError(t, err)
	assert.FileExists(t, out)
}

func TestExport_ExistingFile(t *testing.T) {
	setupCLITest(t)
	out := filepath.Join(t.TempDir(), "users.csv")
	require.NoError(t, os.WriteFile(out, []byte("keep"), 0o600))

	_, _, err := execute(t, "export", "users", "--out", out)
	require.ErrorIs(t, err, cli.ErrOutputExists)
	data, _ := os.ReadFile(out)
	assert.Equal(t, "keep", string(data))

	_, _, err = execute(t, "export", "users", "--out", out, "--force")
	require.NoError(t, err)
	data, _ = os.ReadFile(out)
	assert.Contains(t, string(data), "John Doe")
}

func TestExport_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{name: "unknown extension", args: []string{"export", "users", "--out", "users.txt"}, wantErr: render.ErrUnknownFormat},
		{name: "non-file format", args: []string{"export", "users", "--format", "json", "--out", "users.json"}, wantErr: render.ErrUnknownFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupCLITest(t)
			_, _, err := execute(t, tt.args...)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExport_RequiresOut(t *testing.T) {
	setupCLITest(t)
	_, _, err := execute(t, "export", "users")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out")
}

func TestExport_CSVToStdout(t *testing.T) {
	setupCLITest(t)

	stdout, _, err := execute(t, "export", "users", "--sort", "id:desc", "--page-size", "2", "--out", "-")
	require.NoError(t, err)
	assert.Equal(t,
		"ID,Name,Email,Role,Status\n"+
			"5,Charlie Brown,charlie@example.com,Viewer,Active\n"+
			"4,Alice Williams,alice@example.com,Editor,Inactive\n",
		stdout)
	assert.NoFileExists(t, "-")
}

func TestExport_XLSXToStdout(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantRows int
	}{
		{name: "page", args: []string{"--page-size", "2"}, wantRows: 3},
		{name: "all", args: []string{"--all"}, wantRows: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupCLITest(t)
			args := append([]string{"export", "projects", "--format", "xlsx", "--out", "-"}, tt.args...)

			stdout, _, err := execute(t, args...)
			require.NoError(t, err)

			f, err := excelize.OpenReader(bytes.NewReader([]byte(stdout)))
			require.NoError(t, err)
			defer f.Close()

			rows, err := f.GetRows("Data")
			require.NoError(t, err)
			assert.Len(t, rows, tt.wantRows)
		})
	}
}

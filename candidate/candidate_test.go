package candidate

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sboxeval "github.com/themarkrogers/ai-s-box"
	"github.com/themarkrogers/ai-s-box/core"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_JSON(t *testing.T) {
	path := writeFile(t, "present.json", `{
  "name": "present",
  "input_bits": 4,
  "output_bits": 4,
  "indexing": "row-major",
  "table": [["C", "5", "6", "B", "9", "0", "A", "D"], "3 E F 8 4 7 1 2"]
}`)

	f, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "present", f.Name)
	require.NotNil(t, f.InputBits)
	assert.Equal(t, 4, *f.InputBits)
	assert.Nil(t, f.Symbols)
	assert.Equal(t, sboxeval.Table{
		{"C", "5", "6", "B", "9", "0", "A", "D"},
		{"3", "E", "F", "8", "4", "7", "1", "2"},
	}, f.Table())
}

func TestLoad_JSONRejectsNumbers(t *testing.T) {
	path := writeFile(t, "bad.json", `{"table": [[1, 2], [3, 4]]}`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_YAMLKeepsRawScalars(t *testing.T) {
	path := writeFile(t, "des.yaml", `
name: des-s5
input_bits: 6
output_bits: 4
parsers: [bin, hex]
table:
  - [0010, 1100, 0100, 0001]
  - "1110 1011 0010 1100"
  - [0x7c, 63, ff, 🔥]
`)

	f, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"bin", "hex"}, f.Parsers)
	assert.Equal(t, sboxeval.Table{
		{"0010", "1100", "0100", "0001"},
		{"1110", "1011", "0010", "1100"},
		{"0x7c", "63", "ff", "🔥"},
	}, f.Table())
}

func TestLoad_YAMLRejectsNested(t *testing.T) {
	path := writeFile(t, "bad.yml", "table:\n  - [[0, 1]]\n")
	_, err := Load(path)
	assert.Error(t, err)

	path = writeFile(t, "bad2.yml", "table: nope\n")
	_, err = Load(path)
	assert.Error(t, err)
}

func TestLoad_TSV(t *testing.T) {
	path := writeFile(t, "gost.tsv", "# GOST S1\n4\ta\t9\t2\n\nd,8,0,e\n  6 b 1 c  \n7\tf\t5\t3\n")

	f, err := Load(path)
	require.NoError(t, err)
	assert.Nil(t, f.InputBits)
	assert.Equal(t, sboxeval.Table{
		{"4", "a", "9", "2"},
		{"d", "8", "0", "e"},
		{"6", "b", "1", "c"},
		{"7", "f", "5", "3"},
	}, f.Table())
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = Load("table.xlsx")
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))

	_, err = Parse([]byte("{}"), Format("toml"))
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestFile_Params(t *testing.T) {
	n, m := 4, 2
	f := &File{Name: "gf4", InputBits: &n, OutputBits: &m, Indexing: "row-major"}

	p, err := f.Params(core.AESParams)
	require.NoError(t, err)
	assert.Equal(t, "gf4", p.Name)
	assert.Equal(t, 4, p.InputBits)
	assert.Equal(t, 2, p.OutputBits)
	assert.Equal(t, core.AESParams.Symbols, p.Symbols)
	assert.Equal(t, sboxeval.RowMajor, p.Indexing)

	// Nothing set keeps the base.
	p, err = (&File{}).Params(core.AESParams)
	require.NoError(t, err)
	assert.Equal(t, core.AESParams, p)

	_, err = (&File{Indexing: "diagonal"}).Params(core.AESParams)
	assert.Error(t, err)
}

package normalize

import (
	"strings"
	"testing"

	sboxeval "github.com/themarkrogers/ai-s-box"
)

// FuzzNormalize splits the input into a table and checks that distinct tokens
// never share a value.
func FuzzNormalize(f *testing.F) {
	f.Add("63 7c 77 7b\nf2 6b 6f c5")
	f.Add("0010 1100\n0001 0000")
	f.Add("🔥 0 🌊 2")
	f.Add("a\nb c")
	f.Add("")

	f.Fuzz(func(t *testing.T, data string) {
		var table sboxeval.Table
		for _, line := range strings.Split(data, "\n") {
			table = append(table, strings.Fields(line))
		}

		res, err := Normalize(table, sboxeval.RowMajor)
		if err != nil {
			return
		}
		if len(res.SBox) != res.Rows*res.Cols {
			t.Fatalf("SBox has %d entries for %dx%d", len(res.SBox), res.Rows, res.Cols)
		}

		byValue := make(map[int]string)
		for r, row := range table {
			for c, token := range row {
				v := res.SBox[r*res.Cols+c]
				if v < 0 {
					t.Fatalf("negative value %d for %q", v, token)
				}
				if prev, ok := byValue[v]; ok && !sameValue(prev, token) {
					t.Fatalf("tokens %q and %q both map to %d", prev, token, v)
				}
				byValue[v] = token
			}
		}
	})
}

// sameValue reports whether two distinct spellings parse to the same number,
// such as "0A" and "a".
func sameValue(a, b string) bool {
	if a == b {
		return true
	}
	va, okA := firstParse(a)
	vb, okB := firstParse(b)
	return okA && okB && va == vb
}

func firstParse(token string) (int, bool) {
	for _, parse := range DefaultParsers() {
		if v, ok := parse(token); ok {
			return v, true
		}
	}
	return 0, false
}

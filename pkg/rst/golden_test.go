package rst

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGoldenFixtures parses every .rst file under testdata/golden and
// compares its dumped AST against the matching .ast.golden file. This is
// the corpus-wide regression net: unlike the table-driven unit tests
// elsewhere in this package, a golden fixture exercises the parser
// end to end exactly as the rst2x CLI does.
func TestGoldenFixtures(t *testing.T) {
	fixtures, err := filepath.Glob("testdata/golden/*.rst")
	require.NoError(t, err)
	require.NotEmpty(t, fixtures, "expected at least one golden fixture")

	for _, fixture := range fixtures {
		fixture := fixture
		name := strings.TrimSuffix(filepath.Base(fixture), ".rst")
		t.Run(name, func(t *testing.T) {
			src, err := os.ReadFile(fixture)
			require.NoError(t, err)

			goldenPath := strings.TrimSuffix(fixture, ".rst") + ".ast.golden"
			want, err := os.ReadFile(goldenPath)
			require.NoError(t, err, "missing golden file %s", goldenPath)

			ast, _, err := Parse(string(src), fixture, 0, 0, ParseOptions{}, nil, nil)
			require.NoError(t, err)

			got := DumpString(ast)
			if got != string(want) {
				diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
					A:        difflib.SplitLines(string(want)),
					B:        difflib.SplitLines(got),
					FromFile: goldenPath,
					ToFile:   "got",
					Context:  3,
				})
				t.Errorf("AST mismatch for %s:\n%s", fixture, diff)
			}
			assert.Equal(t, string(want), got)
		})
	}
}

package fuzztests

import (
	"os"
	"path/filepath"
	"testing"
)

const maxSeedBytes = 64 << 10 // 64 KiB: ограничение для тестового корпуса

var languageSeeds = []string{
	"",
	"let x = 1;\n",
	"let x = 1;\nlet y = z;\n",
	"pub let mut x: int = 42;\nconst LIMIT = 10;\n",
	"fn add(a: int, b: int) -> int {\n    return a + b;\n}\n",
	"fn f() { if x { return; } else { while true { } } }",
	"/// doc\nfn main() -> int { return -(1 + 2) * 3; }\n",
	"let s = \"unterminated",
	"let = ;",
	"fn f( { let",
	"let café = 1;\nlet café = 2;\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range languageSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

// addTestdataSeeds picks up any *.st files kept next to the harnesses.
func addTestdataSeeds(f *testing.F) {
	matches, err := filepath.Glob(filepath.Join("testdata", "*.st"))
	if err != nil {
		return
	}
	for _, path := range matches {
		// #nosec G304 -- path comes from a testdata glob
		src, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		f.Add(clampSeed(src))
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

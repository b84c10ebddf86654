package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"asmodeus/internal/driver"
)

const (
	maxSeedBytes = 64 << 10
	maxFuzzInput = 1 << 16
)

var languageSeeds = []string{
	"",
	"STP",
	"start:\n    POB #42\n    DOD [10]\n    SOB start\n    STP\n",
	"; comment only",
	"loop: DOD #1 ; tail comment\n      SOB loop",
	"MAKRO TWICE\n    DOD #1\n    DOD #1\nKONM\nTWICE\n",
	"    DOX #42",
	"123invalid:",
	"POB:",
	"POB @#$%",
	"    POB POB POB",
	"DOD\nSOB\nSTP #1",
	"MNO [0x1F]\nDZI #7\nMOD label",
	"label:\tPOB\t#1\r\n",
	"ąę: POB #1 ; żółw 🐢",
	":::",
	"#[]0x",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range languageSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || !driver.IsSourceFile(path) {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clamp(src, maxSeedBytes))
		return nil
	})
}

func clamp(src []byte, limit int) []byte {
	if len(src) <= limit {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:limit]...)
}

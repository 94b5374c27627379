package fuzztests

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

const (
	maxSeedBytes = 4 << 10 // 4 KiB, выражения короткие
)

// fixtureCase mirrors the conversion tables under internal/format/testdata.
type fixtureCase struct {
	Latex string `yaml:"latex"`
	Plain string `yaml:"plain"`
}

func addCorpusSeeds(f *testing.F) {
	addFixtureSeeds(f)
	for _, s := range []string{
		"",
		`{`,
		`}}`,
		`\dfrac`,
		`\dfrac{`,
		`a//b`,
		`/`,
		`1{,}5 \cdot 10^{`,
		`\sum_{`,
		`sum{n=1}{`,
		`"unterminated`,
		`\text{`,
		`[[[`,
	} {
		f.Add([]byte(s))
	}
}

func addFixtureSeeds(f *testing.F) {
	root := filepath.Join("..", "format", "testdata")
	paths, err := filepath.Glob(filepath.Join(root, "*.yaml"))
	if err != nil {
		return
	}
	for _, path := range paths {
		// #nosec G304 -- path comes from repository testdata glob
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var cases []fixtureCase
		if err := yaml.Unmarshal(data, &cases); err != nil {
			continue
		}
		for _, c := range cases {
			f.Add(clampSeed([]byte(c.Latex)))
			f.Add(clampSeed([]byte(c.Plain)))
		}
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

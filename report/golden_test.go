// Lesson: golden files.
//
// When the subject's output is a formatted blob, spelling the expectation
// inside the test gets unreadable fast. Golden files flip it around: the
// expected output lives in testdata, the test renders and compares, and a
// flag regenerates the files when the format changes on purpose:
//
//	go test ./report -run TestGolden -update
//
// Always read the diff of regenerated goldens before committing; the whole
// point is that format changes become visible in review. The archives here
// are txtar bundles, one file of several named sections, so each case's
// input and goldens travel together.
package report

import (
	"bytes"
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/tools/txtar"
)

var update = flag.Bool("update", false, "rewrite golden files inside the txtar archives")

// goldenCase pairs one .json input with its .txt and .md goldens.
type goldenCase struct {
	name     string
	input    []byte
	text     []byte
	markdown []byte
}

func TestGolden(t *testing.T) {
	archives, err := filepath.Glob("testdata/*.txtar")
	if err != nil {
		t.Fatalf("globbing testdata: %v", err)
	}
	if len(archives) == 0 {
		t.Fatal("no txtar archives in testdata")
	}

	for _, path := range archives {
		t.Run(filepath.Base(path), func(t *testing.T) {
			runArchive(t, path)
		})
	}
}

func runArchive(t *testing.T, path string) {
	archive, err := txtar.ParseFile(path)
	if err != nil {
		t.Fatalf("parsing %s: %v", path, err)
	}

	// Group the archive's files into cases by basename, keeping the
	// order cases first appear so -update writes a stable file.
	byName := make(map[string]*goldenCase)
	var order []string
	for _, f := range archive.Files {
		ext := filepath.Ext(f.Name)
		name := strings.TrimSuffix(f.Name, ext)
		c, ok := byName[name]
		if !ok {
			c = &goldenCase{name: name}
			byName[name] = c
			order = append(order, name)
		}
		switch ext {
		case ".json":
			c.input = f.Data
		case ".txt":
			c.text = f.Data
		case ".md":
			c.markdown = f.Data
		}
	}

	for _, name := range order {
		c := byName[name]
		t.Run(c.name, func(t *testing.T) {
			if c.input == nil {
				t.Fatalf("case %s has no .json input", c.name)
			}

			var r Report
			if err := json.Unmarshal(c.input, &r); err != nil {
				t.Fatalf("decoding %s.json: %v", c.name, err)
			}

			var text, md bytes.Buffer
			if err := Render(&text, r); err != nil {
				t.Fatalf("Render: %v", err)
			}
			if err := RenderMarkdown(&md, r); err != nil {
				t.Fatalf("RenderMarkdown: %v", err)
			}

			if *update {
				c.text = text.Bytes()
				c.markdown = md.Bytes()
				return
			}

			if diff := cmp.Diff(string(c.text), text.String()); diff != "" {
				t.Errorf("Render mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(string(c.markdown), md.String()); diff != "" {
				t.Errorf("RenderMarkdown mismatch (-want +got):\n%s", diff)
			}
		})
	}

	if *update {
		files := make([]txtar.File, 0, len(order)*3)
		for _, name := range order {
			c := byName[name]
			files = append(files,
				txtar.File{Name: name + ".json", Data: c.input},
				txtar.File{Name: name + ".txt", Data: c.text},
				txtar.File{Name: name + ".md", Data: c.markdown},
			)
		}
		out := txtar.Format(&txtar.Archive{Comment: archive.Comment, Files: files})
		if err := os.WriteFile(path, out, 0o644); err != nil {
			t.Fatalf("rewriting %s: %v", path, err)
		}
		t.Logf("rewrote %s", path)
	}
}

package history

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/lox/blackjack/internal/fileutil"
)

// Extension is the file extension of saved records
const Extension = ".hcl"

func encodeFile(rec *Record) *hclwrite.File {
	f := hclwrite.NewEmptyFile()
	gohcl.EncodeIntoBody(rec, f.Body())
	return f
}

// Encode renders a record as HCL
func Encode(rec *Record) []byte {
	return encodeFile(rec).Bytes()
}

// Save writes rec to <dir>/<round id>.hcl and returns the path
func Save(dir string, rec *Record) (string, error) {
	if rec.RoundID == "" {
		return "", fmt.Errorf("history: record has no round id")
	}

	path := filepath.Join(dir, rec.RoundID+Extension)
	err := fileutil.WriteAtomic(path, 0o644, func(w io.Writer) error {
		_, err := encodeFile(rec).WriteTo(w)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("history: save %s: %w", rec.RoundID, err)
	}
	return path, nil
}

// Load reads a record written by Save
func Load(path string) (*Record, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var rec Record
	if diags := gohcl.DecodeBody(file.Body, nil, &rec); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}
	return &rec, nil
}

// List returns the saved record files in dir, oldest round id first. Round
// ids sort by creation time so this is also chronological.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), Extension) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

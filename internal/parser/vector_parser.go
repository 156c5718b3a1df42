package parser

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/mahdiidarabi/mprsa/pkg/mpint"
)

// KeyVector is a known key: primes p and q, public exponent e and, when
// given, the expected private exponent d.
type KeyVector struct {
	Name    string
	P, Q, E *mpint.Int
	D       *mpint.Int // nil when the vector does not pin d
}

// SumVector is a known addition a + b = sum.
type SumVector struct {
	Name      string
	A, B, Sum *mpint.Int
}

// VectorSet is everything a vector file can hold.
type VectorSet struct {
	Keys []*KeyVector
	Sums []*SumVector
}

type jsonVectors struct {
	Keys []struct {
		Name string `json:"name"`
		P    string `json:"p"`
		Q    string `json:"q"`
		E    string `json:"e"`
		D    string `json:"d,omitempty"`
	} `json:"keys"`
	Sums []struct {
		Name string `json:"name"`
		A    string `json:"a"`
		B    string `json:"b"`
		Sum  string `json:"sum"`
	} `json:"sums"`
}

// ParseVectorsFromJSON decodes a vector set.
//
// Expected format:
//
//	{
//	  "keys": [{"name": "...", "p": "3D", "q": "35", "e": "11", "d": "AC1"}],
//	  "sums": [{"name": "...", "a": "FF", "b": "1", "sum": "100"}]
//	}
//
// All values are big-endian hex; "d" is optional.
func ParseVectorsFromJSON(r io.Reader) (*VectorSet, error) {
	var raw jsonVectors
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	set := &VectorSet{}
	for i, k := range raw.Keys {
		kv, err := newKeyVector(k.Name, k.P, k.Q, k.E, k.D)
		if err != nil {
			return nil, fmt.Errorf("key vector %d: %w", i, err)
		}
		set.Keys = append(set.Keys, kv)
	}
	for i, s := range raw.Sums {
		sv := &SumVector{Name: s.Name}
		var err error
		if sv.A, err = parseHexField("a", s.A); err != nil {
			return nil, fmt.Errorf("sum vector %d: %w", i, err)
		}
		if sv.B, err = parseHexField("b", s.B); err != nil {
			return nil, fmt.Errorf("sum vector %d: %w", i, err)
		}
		if sv.Sum, err = parseHexField("sum", s.Sum); err != nil {
			return nil, fmt.Errorf("sum vector %d: %w", i, err)
		}
		set.Sums = append(set.Sums, sv)
	}
	return set, nil
}

// ParseKeyVectorsFromCSV reads key vectors from CSV with a header row.
// Column names default to name, p, q, e and d; the name and d columns
// may be absent.
func ParseKeyVectorsFromCSV(r io.Reader, pCol, qCol, eCol, dCol string) ([]*KeyVector, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	if pCol == "" {
		pCol = "p"
	}
	if qCol == "" {
		qCol = "q"
	}
	if eCol == "" {
		eCol = "e"
	}
	if dCol == "" {
		dCol = "d"
	}

	nameIdx, pIdx, qIdx, eIdx, dIdx := -1, -1, -1, -1, -1
	for i, col := range header {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case "name":
			nameIdx = i
		case strings.ToLower(pCol):
			pIdx = i
		case strings.ToLower(qCol):
			qIdx = i
		case strings.ToLower(eCol):
			eIdx = i
		case strings.ToLower(dCol):
			dIdx = i
		}
	}
	if pIdx == -1 || qIdx == -1 || eIdx == -1 {
		return nil, fmt.Errorf("missing required columns: need %s, %s and %s", pCol, qCol, eCol)
	}

	var vectors []*KeyVector
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}

		cell := func(idx int) string {
			if idx < 0 || idx >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[idx])
		}
		kv, err := newKeyVector(cell(nameIdx), cell(pIdx), cell(qIdx), cell(eIdx), cell(dIdx))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		vectors = append(vectors, kv)
	}
	return vectors, nil
}

// ParseFile loads a vector file, choosing the format by extension. CSV
// files only carry key vectors.
func ParseFile(fsys fs.FS, name string) (*VectorSet, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return ParseVectorsFromJSON(f)
	case ".csv":
		keys, err := ParseKeyVectorsFromCSV(f, "", "", "", "")
		if err != nil {
			return nil, err
		}
		return &VectorSet{Keys: keys}, nil
	default:
		return nil, fmt.Errorf("unsupported vector file %q (want .json or .csv)", name)
	}
}

// ParsePath is ParseFile against the local filesystem.
func ParsePath(path string) (*VectorSet, error) {
	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	return ParseFile(os.DirFS(dir), name)
}

func newKeyVector(name, p, q, e, d string) (*KeyVector, error) {
	kv := &KeyVector{Name: name}
	var err error
	if kv.P, err = parseHexField("p", p); err != nil {
		return nil, err
	}
	if kv.Q, err = parseHexField("q", q); err != nil {
		return nil, err
	}
	if kv.E, err = parseHexField("e", e); err != nil {
		return nil, err
	}
	if d != "" {
		if kv.D, err = parseHexField("d", d); err != nil {
			return nil, err
		}
	}
	return kv, nil
}

func parseHexField(field, s string) (*mpint.Int, error) {
	if s == "" {
		return nil, fmt.Errorf("missing %s field", field)
	}
	v, err := mpint.ParseHex(s)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", field, err)
	}
	return v, nil
}

// Package fixtures embeds the hex test vectors shared by tests and the
// selftest command.
package fixtures

import "embed"

// FS holds vectors.json and key_vectors.csv.
//
//go:embed vectors.json key_vectors.csv
var FS embed.FS

const (
	// VectorsJSON is the name of the JSON vector file in FS.
	VectorsJSON = "vectors.json"

	// KeyVectorsCSV is the name of the CSV key vector file in FS.
	KeyVectorsCSV = "key_vectors.csv"
)

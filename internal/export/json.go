package export

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/thermobin/internal/viz"
)

// Document is the JSON form of an inspected set of thermodynamics files.
type Document struct {
	OutputPath string        `json:"output_path"`
	NGridboxes int           `json:"ngridboxes,omitempty"`
	NTime      int           `json:"ntime,omitempty"`
	Files      []string      `json:"files"`
	Fields     []viz.Summary `json:"fields"`
}

func Encode(w io.Writer, doc Document) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(doc)
}

// WriteJSON writes doc to path, or to stdout when path is "-".
func WriteJSON(path string, doc Document) error {
	if path == "-" {
		return Encode(os.Stdout, doc)
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return Encode(file, doc)
}

package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/thermobin/internal/viz"
)

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inspect.json")
	doc := Document{
		OutputPath: "share/dimlessthermo.dat",
		NGridboxes: 3,
		NTime:      2,
		Files:      []string{"share/dimlessthermo_press.dat"},
		Fields:     []viz.Summary{{Field: "press", Unit: "P", DType: "float64", NData: 6, Min: 1, Max: 1, Mean: 1}},
	}
	if err := WriteJSON(path, doc); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var got Document
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if got.NTime != 2 || len(got.Fields) != 1 || got.Fields[0].Field != "press" {
		t.Errorf("got %+v", got)
	}
}

func TestWriteJSON_BadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "inspect.json")
	if err := WriteJSON(path, Document{}); err == nil {
		t.Error("expected error")
	}
}

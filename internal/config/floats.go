package config

import (
	"bufio"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// Floats maps a constant or config parameter name to its numeric value.
type Floats map[string]float64

func (f Floats) Lookup(key string) (float64, bool) {
	v, ok := f[key]
	return v, ok
}

// cxxTypes are the declaration prefixes recognised in a constants header,
// longest first so that "constexprdouble" wins over "double".
var cxxTypes = []string{
	"constexprdouble",
	"constexprint",
	"constdouble",
	"constint",
	"double",
	"int",
}

// ReadConstants reads the numeric constants assigned in a C++ header.
// Assignments whose value is an expression rather than a literal are
// returned in the second map, unparsed.
func ReadConstants(path string) (Floats, map[string]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()
	return ParseConstants(file)
}

func ParseConstants(r io.Reader) (Floats, map[string]string, error) {
	floats := Floats{}
	notFloats := map[string]string{}

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.ReplaceAll(sc.Text(), " ", "")
		line = strings.TrimSpace(line)
		if line == "" || line[0] == '/' {
			continue
		}
		if !strings.Contains(line, "double") && !strings.Contains(line, "int") {
			continue
		}
		eq := strings.Index(line, "=")
		semi := strings.Index(line, ";")
		if eq == -1 || semi == -1 || semi < eq {
			continue
		}

		decl := line[:eq]
		name := ""
		for _, typ := range cxxTypes {
			if strings.HasPrefix(decl, typ) {
				name = decl[len(typ):]
				break
			}
		}
		if name == "" {
			continue
		}

		value := line[eq+1 : semi]
		if v, err := strconv.ParseFloat(value, 64); err == nil {
			floats[name] = v
		} else {
			notFloats[name] = value
		}
	}
	if err := sc.Err(); err != nil {
		return nil, nil, err
	}
	return floats, notFloats, nil
}

// ReadConfigFloats reads the numeric "name = value" settings of a model
// config text file.
func ReadConfigFloats(path string) (Floats, map[string]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()
	return ParseConfigFloats(file)
}

func ParseConfigFloats(r io.Reader) (Floats, map[string]string, error) {
	floats := Floats{}
	notFloats := map[string]string{}

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		if line == "" || line[0] == '#' || line[0] == '/' || !strings.Contains(line, "=") {
			continue
		}
		line = strings.ReplaceAll(strings.TrimSpace(line), " ", "")
		if i := strings.Index(line, "#"); i != -1 {
			line = line[:i]
		}

		eq := strings.Index(line, "=")
		if eq == -1 {
			continue
		}
		name, value := line[:eq], line[eq+1:]
		if v, err := strconv.ParseFloat(value, 64); err == nil {
			floats[name] = v
		} else {
			notFloats[name] = value
		}
	}
	if err := sc.Err(); err != nil {
		return nil, nil, err
	}

	// number of spatial dimensions is an integer
	if v, ok := floats["SDnspace"]; ok {
		floats["SDnspace"] = math.Trunc(v)
	}
	return floats, notFloats, nil
}

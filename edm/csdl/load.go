package csdl

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/reoring/odatajson/edm"
)

// LoadXML reads an OData CSDL XML document (edmx:Edmx) and builds a model.
func LoadXML(r io.Reader) (*edm.Model, error) {
	docs, err := loadXMLDocs(r)
	if err != nil {
		return nil, err
	}
	return build(docs)
}

// Load reads a schema file, choosing the format by extension: .xml for CSDL
// XML, .yaml or .yml for the YAML form.
func Load(path string) (*edm.Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xml", ".edmx":
		return LoadXML(f)
	case ".yaml", ".yml":
		return LoadYAML(f)
	default:
		return nil, fmt.Errorf("csdl: unsupported schema file extension %q", filepath.Ext(path))
	}
}

package csdl

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/reoring/odatajson/edm"
)

// LoadYAML reads a stream of YAML documents, one schema per document, and
// builds a model from them. Unknown and duplicated keys are errors.
//
//	namespace: Namespace1_Alias
//	entityTypes:
//	  - name: ETTwoPrim
//	    properties:
//	      - {name: PropertyInt16, type: Edm.Int16, nullable: false}
//	      - {name: PropertyString, type: Edm.String}
func LoadYAML(r io.Reader) (*edm.Model, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var docs []schemaDoc
	for {
		var doc schemaDoc
		if err := dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("csdl: yaml document %d: %w", len(docs)+1, err)
		}
		docs = append(docs, doc)
	}
	if len(docs) == 0 {
		return nil, errors.New("csdl: no schema document found")
	}
	return build(docs)
}

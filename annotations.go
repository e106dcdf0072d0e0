package odatajson

import (
	"strings"

	eng "github.com/reoring/odatajson/internal/engine"
)

const (
	controlInformationMarker = "@odata."
	annotationMarker         = "@"
)

// visited records the members of one JSON object that were consumed.
type visited map[string]struct{}

func (v visited) add(name string) { v[name] = struct{}{} }

// checkRemaining applies the annotation policy to the members of obj that
// were not consumed. Control information is dropped, a custom annotation is
// not_implemented, and anything else is unknown_content. Annotations are
// reported before unknown content; both name the first offending member in
// document order.
func checkRemaining(obj *eng.Node, seen visited, p pathRef) error {
	unknown := ""
	for _, f := range obj.Fields {
		if _, ok := seen[f.Name]; ok {
			continue
		}
		switch {
		case strings.Contains(f.Name, controlInformationMarker):
		case strings.Contains(f.Name, annotationMarker):
			return fieldError(KeyNotImplemented, p, f.Name)
		case unknown == "":
			unknown = f.Name
		}
	}
	if unknown != "" {
		return fieldError(KeyUnknownContent, p, unknown)
	}
	return nil
}

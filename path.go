package odatajson

import (
	"strconv"
	"strings"
)

// pathRef builds JSON Pointer paths in a chain-safe way. The zero value is
// the document root.
type pathRef struct {
	parts []string
}

var rootPath = pathRef{}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func (p pathRef) Field(name string) pathRef {
	// escape '~' -> '~0', '/' -> '~1' per RFC6901
	return pathRef{parts: append(append([]string{}, p.parts...), pointerEscaper.Replace(name))}
}

func (p pathRef) Index(i int) pathRef {
	return pathRef{parts: append(append([]string{}, p.parts...), strconv.Itoa(i))}
}

func (p pathRef) Pointer() string {
	if len(p.parts) == 0 {
		return "/"
	}
	return "/" + strings.Join(p.parts, "/")
}

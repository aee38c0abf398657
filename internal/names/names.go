package names

import (
	"fmt"
	"strings"
)

// FirstGeneratedTag is the first tag handed out by a Source. Tags below it
// are reserved for the intrinsic namespace, so a generated name can never
// collide with a builtin.
const FirstGeneratedTag = 1000

// VName is a base name paired with a unique integer tag. Two VNames are the
// same name only if both base and tag are equal; equal base text with
// different tags denotes different names.
type VName struct {
	Base string
	Tag  int
}

func (v VName) String() string {
	if v.Tag < FirstGeneratedTag {
		return v.Base
	}
	return fmt.Sprintf("%s_%d", v.Base, v.Tag)
}

// IsGenerated reports whether v was produced by a Source rather than the
// intrinsic table.
func (v VName) IsGenerated() bool {
	return v.Tag >= FirstGeneratedTag
}

// QualIdent is a source-level qualified identifier: zero or more module
// qualifiers followed by a leaf name, all still surface text.
type QualIdent struct {
	Quals []string
	Name  string
}

func Ident(name string) QualIdent {
	return QualIdent{Name: name}
}

func Qualified(name string, quals ...string) QualIdent {
	return QualIdent{Quals: quals, Name: name}
}

func (q QualIdent) String() string {
	if len(q.Quals) == 0 {
		return q.Name
	}
	return strings.Join(q.Quals, ".") + "." + q.Name
}

// QualVName is a resolved qualified name: every segment is a globally unique
// VName.
type QualVName struct {
	Quals []VName
	Name  VName
}

func (q QualVName) String() string {
	if len(q.Quals) == 0 {
		return q.Name.String()
	}
	parts := make([]string, 0, len(q.Quals)+1)
	for _, v := range q.Quals {
		parts = append(parts, v.String())
	}
	parts = append(parts, q.Name.String())
	return strings.Join(parts, ".")
}

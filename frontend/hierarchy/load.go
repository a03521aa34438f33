package hierarchy

import (
	"github.com/cottand/narrow/frontend/ast"
	"github.com/cottand/narrow/frontend/checkerr"
	"github.com/cottand/narrow/frontend/types"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
	"io"
	"maps"
	"os"
	"slices"
)

// FromFile builds a Static from the class declarations of file.
// A property whose declared type is malformed fails with a
// checkerr.NewMalformedType positioned at its class.
func FromFile(file *ast.File) (*Static, error) {
	h := New()
	for _, decl := range file.Classes {
		class := Class{
			Name:       decl.Name,
			Extends:    decl.Extends,
			Implements: decl.Implements,
			Properties: make(map[string]types.Union, len(decl.Properties)),
		}
		for _, prop := range decl.Properties {
			t, err := types.Parse(prop.Type)
			if err != nil {
				var asCheck checkerr.CheckError
				if errors.As(err, &asCheck) {
					return nil, checkerr.At(asCheck, decl.Range)
				}
				return nil, err
			}
			class.Properties[prop.Name] = t
		}
		h.Add(class)
	}
	return h, nil
}

type yamlDocument struct {
	Classes map[string]yamlClass `yaml:"classes"`
}

type yamlClass struct {
	Extends    string            `yaml:"extends"`
	Implements []string          `yaml:"implements"`
	Properties map[string]string `yaml:"properties"`
}

// LoadYAML reads a hierarchy of the form
//
//	classes:
//	  A: {}
//	  B:
//	    extends: A
//	    properties:
//	      foo: string|B
func LoadYAML(r io.Reader) (*Static, error) {
	var doc yamlDocument
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "could not decode class hierarchy")
	}

	h := New()
	for _, name := range slices.Sorted(maps.Keys(doc.Classes)) {
		decl := doc.Classes[name]
		class := Class{
			Name:       name,
			Extends:    decl.Extends,
			Implements: decl.Implements,
			Properties: make(map[string]types.Union, len(decl.Properties)),
		}
		for prop, text := range decl.Properties {
			t, err := types.Parse(text)
			if err != nil {
				return nil, errors.Wrapf(err, "property %s->%s", name, prop)
			}
			class.Properties[prop] = t
		}
		h.Add(class)
	}
	return h, nil
}

// LoadYAMLFile is LoadYAML on the file at path
func LoadYAMLFile(path string) (*Static, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "could not open class hierarchy")
	}
	defer f.Close()
	h, err := LoadYAML(f)
	if err != nil {
		return nil, errors.Wrapf(err, "in %s", path)
	}
	return h, nil
}

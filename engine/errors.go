package engine

import "github.com/loian/fuzzyengine/ferr"

func ferrDuplicate(kind, name string) error {
	return ferr.NewSemanticError(kind + " " + name + " already registered")
}

func ferrUnknownVariable(name string) error {
	return ferr.NewSemanticError(name)
}

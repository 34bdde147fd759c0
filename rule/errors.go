package rule

import "github.com/loian/fuzzyengine/ferr"

func newSyntaxError(pos int, message string) error {
	return ferr.NewSyntaxError(pos, message)
}

func newSemanticError(name string) error {
	return ferr.NewSemanticError(name)
}

func newMissingOperatorError(operator string) error {
	return ferr.NewMissingOperatorError(operator)
}

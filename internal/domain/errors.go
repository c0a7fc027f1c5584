package domain

import "errors"

// Domain errors. Each one is terminal for the check that raised it only.
var (
	ErrMissingFile       = errors.New("asset file not found")
	ErrParse             = errors.New("translation data could not be parsed")
	ErrEmptyBase         = errors.New("base language has no keys")
	ErrParity            = errors.New("translation key sets differ between languages")
	ErrDanglingReference = errors.New("markup references undefined keys")
	ErrMissingElement    = errors.New("required markup element missing")
)

var codes = []struct {
	err  error
	code string
}{
	{ErrMissingFile, "missing_file"},
	{ErrParse, "parse_error"},
	{ErrEmptyBase, "empty_base"},
	{ErrParity, "parity_mismatch"},
	{ErrDanglingReference, "dangling_reference"},
	{ErrMissingElement, "missing_element"},
}

// Code returns the stable code of the domain error wrapped by err, or "" when
// err does not wrap one.
func Code(err error) string {
	if err == nil {
		return ""
	}
	for _, c := range codes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return ""
}

package db

import (
	"fmt"
	"strings"
)

// SQLSTATE for a value whose text cannot be read as the column type.
const CodeInvalidTextRepresentation = "22P02"

// ParseBool reads text the way Postgres reads BOOLEAN input: case and
// surrounding blanks are ignored, and any unambiguous prefix of true, false,
// yes, no, on, off as well as 1 and 0 is accepted. nil is false.
func ParseBool(op string, text *string) (bool, error) {
	if text == nil {
		return false, nil
	}
	v := strings.ToLower(strings.TrimSpace(*text))
	switch {
	case v == "":
	case v == "1", strings.HasPrefix("true", v), strings.HasPrefix("yes", v):
		return true, nil
	case v == "0", strings.HasPrefix("false", v), strings.HasPrefix("no", v):
		return false, nil
	case v == "on":
		return true, nil
	case len(v) >= 2 && strings.HasPrefix("off", v):
		return false, nil
	}
	return false, &DatabaseError{
		Op:   op,
		Code: CodeInvalidTextRepresentation,
		Err:  fmt.Errorf("invalid input syntax for type boolean: %q", *text),
	}
}

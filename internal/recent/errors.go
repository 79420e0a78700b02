package recent

import "fmt"

// MalformedRecordError reports a record file that is not well-formed XML or
// lacks the expected component element. Callers treat it as "no projects".
type MalformedRecordError struct {
	Path string
	Err  error
}

func (e *MalformedRecordError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("malformed recent projects record: %v", e.Err)
	}
	return fmt.Sprintf("malformed recent projects record %s: %v", e.Path, e.Err)
}

func (e *MalformedRecordError) Unwrap() error {
	return e.Err
}

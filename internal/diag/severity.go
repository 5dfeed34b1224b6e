package diag

// Severity ranks a diagnostic. Warnings never fail a conversion run;
// errors put the file on the failed list.
type Severity uint8

const (
	// SevInfo is advisory output.
	SevInfo Severity = iota
	// SevWarning flags suspicious input that still converts, like a
	// duplicate alias.
	SevWarning
	// SevError marks input that could not be converted.
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}

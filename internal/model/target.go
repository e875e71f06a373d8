package model

// ConnectionTarget identifies the database engine backing the management server.
type ConnectionTarget struct {
	Host string
	// Instance is empty for the default (unnamed) instance.
	Instance string
}

// Named reports whether the target refers to a named instance.
func (t ConnectionTarget) Named() bool {
	return t.Instance != ""
}

func (t ConnectionTarget) String() string {
	if t.Named() {
		return t.Host + `\` + t.Instance
	}
	return t.Host
}

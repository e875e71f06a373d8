package validation

// Validation types understood by RunValidations.
const (
	TypePathAbsent        = "path_absent"
	TypeRegistryKeyAbsent = "registry_key_absent"
	TypeServiceSatisfied  = "service_satisfied"
	TypePrefixSatisfied   = "prefix_satisfied"
)

// Validation is one post-run re-inspection rule. Target is a path, a key
// path under HKLM, a service name, or a service name prefix depending on
// Type.
type Validation struct {
	Type   string
	Target string
}

// ValidationResult captures the outcome of executing a single validation rule.
type ValidationResult struct {
	Validation Validation
	Passed     bool
	Message    string
	Error      error
}

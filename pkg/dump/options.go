package dump

// Options modify how a dump is produced and written.
type Options struct {
	// SchemaOnly dumps object definitions without data.
	SchemaOnly bool
	// DataOnly dumps data without object definitions.
	DataOnly bool
	// Append adds the dump to the end of an existing file instead of
	// replacing it.
	Append bool
}

// Validate checks that options do not contradict each other or the target.
func (o Options) Validate(t Target) error {
	if o.SchemaOnly && o.DataOnly {
		return InvalidOptionsError("schema-only and data-only cannot be combined")
	}
	if !t.UsesPgDump() && (o.SchemaOnly || o.DataOnly) {
		return InvalidOptionsError(
			"schema-only and data-only apply to schema and table dumps only")
	}
	return nil
}

// Package form defines the declarative form schemas the wizard flows hand
// to their front-ends, and the coercion layer that turns raw text input
// back into typed values.
//
// A flow describes each step as a Schema of Fields (string, int, bool or
// select). Front-ends render the schema however they like (huh forms in the
// TUI, numbered prompts in plain mode) and submit the collected input as a
// raw map[string]string. Schema.Validate coerces and checks that input,
// returning typed Values on success or a ValidationError carrying per-field
// error codes the front-end can render inline.
//
// # Validation Rules
//
//   - Required fields must be present and non-empty.
//   - Int fields must parse and fall inside the field's [Min, Max] bounds.
//   - Select fields must match one of the field's Options.
//   - Optional fields that were left empty stay absent from Values; the
//     flows apply their own defaults.
//
// # Usage Example
//
//	schema := form.Schema{
//	    Name: "user",
//	    Fields: []form.Field{
//	        {Name: "username", Kind: form.String, Required: true},
//	        {Name: "password", Kind: form.String, Required: true, Secret: true},
//	    },
//	}
//
//	values, err := schema.Validate(raw)
//	if err != nil {
//	    var verr *form.ValidationError
//	    if errors.As(err, &verr) {
//	        // verr.Fields maps field name -> error code
//	    }
//	}
package form

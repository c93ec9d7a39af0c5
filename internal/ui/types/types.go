package types

// =============================================================================
// FORM VIEW MODELS
// =============================================================================
// Handlers describe a form as a list of fields, templates.Form renders it.

type FieldKind string

const (
	FieldText     FieldKind = "text"
	FieldNumber   FieldKind = "number"
	FieldDecimal  FieldKind = "decimal" // rendered as a number input with step 0.01
	FieldDate     FieldKind = "date"
	FieldEmail    FieldKind = "email"
	FieldTel      FieldKind = "tel"
	FieldURL      FieldKind = "url"
	FieldTextarea FieldKind = "textarea"
	FieldSelect   FieldKind = "select"
	FieldCheckbox FieldKind = "checkbox"
)

// Field is one input of a form. Value holds the submitted or stored value as text.
type Field struct {
	Name        string
	Label       string
	Kind        FieldKind
	Value       string
	Checked     bool
	Options     []Option
	Required    bool
	Min         string
	Max         string
	Placeholder string
}

// FormPage is a create or edit form
type FormPage struct {
	Heading      string
	Action       string
	Fields       []Field
	SubmitLabel  string
	BackHref     string
	DeleteAction string // empty on create forms
	DeleteLabel  string
	Error        string // shown above the form after a failed submit
}

// Value returns the value of the named field
func (f FormPage) Value(name string) string {
	for _, field := range f.Fields {
		if field.Name == name {
			return field.Value
		}
	}
	return ""
}

// =============================================================================
// LIST VIEW MODELS
// =============================================================================

type Column struct {
	Label   string
	Numeric bool
}

type Link struct {
	Href  string
	Label string
}

// Row is one line of a list. Warn highlights the row (materials below their minimum stock).
type Row struct {
	Cells        []string
	Links        []Link
	DeleteAction string
	DeleteLabel  string // subject shown in the confirm dialog
	Warn         bool
}

// TableView is a titled list with its toolbar links
type TableView struct {
	Heading    string
	Columns    []Column
	Rows       []Row
	AddHref    string
	AddLabel   string
	ExportHref string
	Empty      string
}

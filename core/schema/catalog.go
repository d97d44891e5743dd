package schema

// Kind classifies how a field's cell value is coerced during import.
type Kind int

const (
	// KindText is a trimmed free-text value.
	KindText Kind = iota
	// KindNumber is a float value; unparsable input coerces to 0.
	KindNumber
	// KindInt is a non-negative integer value; unparsable input coerces to 0.
	KindInt
	// KindDate is a calendar date normalized to YYYY-MM-DD.
	KindDate
)

// Field describes one column of a managed table.
type Field struct {
	// Name is the canonical column name, used both for the database column
	// and for exported sheet headers.
	Name string

	// Kind controls value coercion.
	Kind Kind

	// Aliases are the accepted header spellings in priority order.
	// The canonical name is always first; the first alias found in a row wins.
	Aliases []string
}

// Table describes one managed table and its sheet mapping.
type Table struct {
	// Name is the database table name.
	Name string

	// SheetName is the display sheet name in imported/exported workbooks.
	SheetName string

	// BusinessKey is the canonical name of the field that must be non-empty
	// for a row to be importable.
	BusinessKey string

	// KeyParts lists the fields joined to form the reconciliation key.
	// When empty the business key field alone identifies a record.
	KeyParts []string

	// Fields is the canonical field list in declaration order.
	Fields []Field
}

// Field returns the descriptor for a canonical field name.
func (t *Table) Field(name string) (*Field, bool) {
	for i := range t.Fields {
		if t.Fields[i].Name == name {
			return &t.Fields[i], true
		}
	}
	return nil, false
}

// FieldNames returns the canonical field names in declaration order.
func (t *Table) FieldNames() []string {
	names := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		names[i] = f.Name
	}
	return names
}

// KeyFields returns the fields that form the reconciliation key.
func (t *Table) KeyFields() []string {
	if len(t.KeyParts) > 0 {
		return t.KeyParts
	}
	return []string{t.BusinessKey}
}

func text(name string, aliases ...string) Field {
	return Field{Name: name, Kind: KindText, Aliases: append([]string{name}, aliases...)}
}

func number(name string, aliases ...string) Field {
	return Field{Name: name, Kind: KindNumber, Aliases: append([]string{name}, aliases...)}
}

func integer(name string, aliases ...string) Field {
	return Field{Name: name, Kind: KindInt, Aliases: append([]string{name}, aliases...)}
}

func date(name string, aliases ...string) Field {
	return Field{Name: name, Kind: KindDate, Aliases: append([]string{name}, aliases...)}
}

// tables is the fixed catalog of the nine managed tables. Alias lists carry
// the spellings observed in circulated workbooks: canonical snake_case,
// underscored title case (with upper-cased ID), and space-separated title case.
var tables = []Table{
	{
		Name:        "general_info",
		SheetName:   "General Info",
		BusinessKey: "field",
		Fields: []Field{
			text("field", "Field"),
			text("value", "Value"),
		},
	},
	{
		Name:        "bookies_data",
		SheetName:   "Bookies Data",
		BusinessKey: "area",
		Fields: []Field{
			text("area", "Area"),
			number("target", "Target"),
			number("actual", "Actual"),
		},
	},
	{
		Name:        "risks",
		SheetName:   "Risks",
		BusinessKey: "risk_id",
		Fields: []Field{
			text("risk_id", "Risk_ID", "Risk ID"),
			text("risk_name", "Risk_Name", "Risk Name"),
			number("probability", "Probability"),
			number("impact", "Impact"),
			number("risk_score", "Risk_Score", "Risk Score"),
			text("mitigation", "Mitigation"),
		},
	},
	{
		Name:        "milestones",
		SheetName:   "Milestones + Deliverables",
		BusinessKey: "milestone",
		Fields: []Field{
			text("milestone", "Milestone"),
			text("phase", "Phase"),
			date("due_date", "Due_Date", "Due Date"),
			text("status", "Status"),
			number("progress", "Progress"),
		},
	},
	{
		Name:        "action_log",
		SheetName:   "Action Log",
		BusinessKey: "action_id",
		Fields: []Field{
			text("action_id", "Action_ID", "Action ID"),
			text("source", "Source"),
			text("description", "Description"),
			text("status", "Status"),
			date("due_date", "Due_Date", "Due Date"),
			text("owner", "Owner"),
		},
	},
	{
		Name:        "material_procurement",
		SheetName:   "Material Procurement",
		BusinessKey: "material_id",
		Fields: []Field{
			text("material_id", "Material_ID", "Material ID"),
			text("material_name", "Material_Name", "Material Name"),
			text("supplier", "Supplier"),
			date("initiation_date", "Initiation_Date", "Initiation Date"),
			date("required_date", "Required_Date", "Required Date"),
			integer("lead_time_days", "Lead_Time_Days", "Lead Time Days"),
			text("status", "Status"),
		},
	},
	{
		Name:        "service_procurement",
		SheetName:   "Service Procurement",
		BusinessKey: "service_id",
		Fields: []Field{
			text("service_id", "Service_ID", "Service ID"),
			text("service_name", "Service_Name", "Service Name"),
			text("provider", "Provider"),
			date("initiation_date", "Initiation_Date", "Initiation Date"),
			date("required_date", "Required_Date", "Required Date"),
			integer("lead_time_days", "Lead_Time_Days", "Lead Time Days"),
			text("status", "Status"),
		},
	},
	{
		Name:        "comments_notes",
		SheetName:   "Comments-Notes",
		BusinessKey: "comment",
		// Comment text alone is a fragile identity; author and date are folded
		// into the reconciliation key.
		KeyParts: []string{"comment", "author", "date"},
		Fields: []Field{
			text("comment", "Comment"),
			text("author", "Author"),
			text("category", "Category"),
			date("date", "Date"),
		},
	},
	{
		Name:        "deliverables_status",
		SheetName:   "Deliverables Status",
		BusinessKey: "deliverable",
		Fields: []Field{
			text("deliverable", "Deliverable"),
			text("phase", "Phase"),
			text("owner", "Owner"),
			date("due_date", "Due_Date", "Due Date"),
			text("status", "Status"),
			number("progress", "Progress"),
		},
	},
}

var (
	byName  = make(map[string]*Table, len(tables))
	bySheet = make(map[string]*Table, len(tables))
)

func init() {
	for i := range tables {
		t := &tables[i]
		byName[t.Name] = t
		bySheet[t.SheetName] = t
	}
}

// Tables returns the catalog in declaration order.
func Tables() []*Table {
	out := make([]*Table, len(tables))
	for i := range tables {
		out[i] = &tables[i]
	}
	return out
}

// TableNames returns the table names in declaration order.
func TableNames() []string {
	names := make([]string, len(tables))
	for i := range tables {
		names[i] = tables[i].Name
	}
	return names
}

// ByName looks up a table descriptor by database table name.
func ByName(name string) (*Table, bool) {
	t, ok := byName[name]
	return t, ok
}

// BySheet looks up a table descriptor by display sheet name.
func BySheet(sheetName string) (*Table, bool) {
	t, ok := bySheet[sheetName]
	return t, ok
}

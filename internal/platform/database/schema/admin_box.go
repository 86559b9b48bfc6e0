package schema

// AdminBoxTable represents the 'admin.box' table
type AdminBoxTable struct {
	Table     string
	ID        string
	TitleID   string
	TitleName string
	Year      string
	Barcode   string
	Active    string
	CreatedAt string
	UpdatedAt string
}

// AdminBox is the schema definition for admin.box
var AdminBox = AdminBoxTable{
	Table:     "admin.box",
	ID:        "id",
	TitleID:   "title_id",
	TitleName: "title_name",
	Year:      "year",
	Barcode:   "barcode",
	Active:    "active",
	CreatedAt: "created_at",
	UpdatedAt: "updated_at",
}

func (t AdminBoxTable) Columns() []string {
	return []string{t.ID, t.TitleID, t.TitleName, t.Year, t.Barcode, t.Active, t.CreatedAt, t.UpdatedAt}
}

package schema

// AdminContactTable represents the 'admin.contact' table
type AdminContactTable struct {
	Table     string
	ID        string
	TitleID   string
	Name      string
	Email     string
	Phone     string
	Note      string
	CreatedAt string
	UpdatedAt string
}

// AdminContact is the schema definition for admin.contact
var AdminContact = AdminContactTable{
	Table:     "admin.contact",
	ID:        "id",
	TitleID:   "title_id",
	Name:      "name",
	Email:     "email",
	Phone:     "phone",
	Note:      "note",
	CreatedAt: "created_at",
	UpdatedAt: "updated_at",
}

func (t AdminContactTable) Columns() []string {
	return []string{t.ID, t.TitleID, t.Name, t.Email, t.Phone, t.Note, t.CreatedAt, t.UpdatedAt}
}

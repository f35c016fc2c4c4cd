package pagetitle

// PageTitle is the single-field record served by the title endpoint.
// Rows and the table itself may be managed outside this service, so the
// column carries no type or constraint tags that gorm could try to enforce.
type PageTitle struct {
	ID    uint `gorm:"primaryKey"`
	Title string
}

// TableName keeps the table name used by the existing deployment's schema.
func (PageTitle) TableName() string {
	return "api_pagetitle"
}

package pagetitle

// TitleView is the JSON representation of the first page title.
// Title is nil, and encodes as null, when no record exists.
type TitleView struct {
	Title *string `json:"title" nullable:"true" doc:"Title of the first stored record, null when none exists"`
}

// Serialize maps a record, or its absence, to a TitleView. The title is passed through unchanged.
func Serialize(record *PageTitle) TitleView {
	if record == nil {
		return TitleView{}
	}

	title := record.Title
	return TitleView{Title: &title}
}

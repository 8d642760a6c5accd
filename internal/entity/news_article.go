package entity

// NewsArticle is one row of the input table.
type NewsArticle struct {
	Headline string
	Date     string
	Article  string
}

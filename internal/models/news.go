package models

// NewsArticle - статья NewsAPI. В выдачу попадают только статьи,
// у которых есть и картинка, и описание.
type NewsArticle struct {
	Title       string
	ImageURL    string
	Description string
	URL         string
	PublishedAt string
}

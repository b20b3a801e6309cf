package models

import "time"

// StoryItem описывает историю или вакансию Hacker News.
type StoryItem struct {
	ID     int64
	Title  string
	URL    string
	Time   int64
	Author string
	Type   string
}

func (s StoryItem) Posted() time.Time {
	return time.Unix(s.Time, 0).UTC()
}

package models

import "gorm.io/gorm"

// FeedRecord stores a registered feed for one language.
// Position keeps the registry order stable across reads.
type FeedRecord struct {
	gorm.Model
	Language string `json:"language" gorm:"not null;index:idx_feed_lang_pos"`
	Position int    `json:"position" gorm:"not null;index:idx_feed_lang_pos"`
	Name     string `json:"name" gorm:"not null"`
	URL      string `json:"url" gorm:"not null"`
}

// TableName overrides the default table name
func (FeedRecord) TableName() string {
	return "registry_feeds"
}

// ToDescriptor converts the record into the engine-facing descriptor
func (r FeedRecord) ToDescriptor() FeedDescriptor {
	return FeedDescriptor{Name: r.Name, URL: r.URL}
}

// SingleRecord stores a curated single episode for one language
type SingleRecord struct {
	gorm.Model
	Language    string `json:"language" gorm:"not null;index:idx_single_lang_pos"`
	Position    int    `json:"position" gorm:"not null;index:idx_single_lang_pos"`
	Title       string `json:"title" gorm:"not null"`
	PodcastName string `json:"podcast_name"`
	AudioURL    string `json:"audio_url" gorm:"not null;column:audio_url"`
	CoverImage  string `json:"cover_image"`
	Duration    string `json:"duration"`
	PubDate     string `json:"pub_date"`
}

// TableName overrides the default table name
func (SingleRecord) TableName() string {
	return "registry_singles"
}

// ToDescriptor converts the record into the engine-facing descriptor
func (r SingleRecord) ToDescriptor() SingleDescriptor {
	return SingleDescriptor{
		Title:       r.Title,
		PodcastName: r.PodcastName,
		AudioURL:    r.AudioURL,
		CoverImage:  r.CoverImage,
		Duration:    r.Duration,
		PubDate:     r.PubDate,
	}
}

// AllModels lists every model managed by migrations
func AllModels() []any {
	return []any{&FeedRecord{}, &SingleRecord{}}
}

package registry

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/killallgit/podradio/internal/models"
)

// DatabaseRegistry serves the registry from the registry_feeds and
// registry_singles tables
type DatabaseRegistry struct {
	db *gorm.DB
}

// NewDatabaseRegistry creates a registry backed by db
func NewDatabaseRegistry(db *gorm.DB) *DatabaseRegistry {
	return &DatabaseRegistry{db: db}
}

// GetFeeds returns the language's feeds ordered by position
func (r *DatabaseRegistry) GetFeeds(ctx context.Context, lang Language) ([]models.FeedDescriptor, error) {
	if !IsValidLanguage(string(lang)) {
		return nil, NewLanguageError(string(lang))
	}

	var records []models.FeedRecord
	err := r.db.WithContext(ctx).
		Where("language = ?", string(lang)).
		Order("position ASC, id ASC").
		Find(&records).Error
	if err != nil {
		return nil, NewReadError("registry_feeds", err)
	}

	feeds := make([]models.FeedDescriptor, 0, len(records))
	for _, rec := range records {
		feeds = append(feeds, rec.ToDescriptor())
	}
	return feeds, nil
}

// GetSingles returns the language's singles ordered by position
func (r *DatabaseRegistry) GetSingles(ctx context.Context, lang Language) ([]models.SingleDescriptor, error) {
	if !IsValidLanguage(string(lang)) {
		return nil, NewLanguageError(string(lang))
	}

	var records []models.SingleRecord
	err := r.db.WithContext(ctx).
		Where("language = ?", string(lang)).
		Order("position ASC, id ASC").
		Find(&records).Error
	if err != nil {
		return nil, NewReadError("registry_singles", err)
	}

	singles := make([]models.SingleDescriptor, 0, len(records))
	for _, rec := range records {
		singles = append(singles, rec.ToDescriptor())
	}
	return singles, nil
}

// ImportResult counts the rows written for one language
type ImportResult struct {
	Language Language
	Feeds    int
	Singles  int
}

// Import copies each language from src into db, replacing existing rows for
// that language in a single transaction per language
func Import(ctx context.Context, src Accessor, db *gorm.DB, langs []Language) ([]ImportResult, error) {
	results := make([]ImportResult, 0, len(langs))

	for _, lang := range langs {
		feeds, err := src.GetFeeds(ctx, lang)
		if err != nil {
			return results, fmt.Errorf("loading feeds for %s: %w", lang, err)
		}
		singles, err := src.GetSingles(ctx, lang)
		if err != nil {
			return results, fmt.Errorf("loading singles for %s: %w", lang, err)
		}

		err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Unscoped().Where("language = ?", string(lang)).Delete(&models.FeedRecord{}).Error; err != nil {
				return fmt.Errorf("clearing feeds: %w", err)
			}
			if err := tx.Unscoped().Where("language = ?", string(lang)).Delete(&models.SingleRecord{}).Error; err != nil {
				return fmt.Errorf("clearing singles: %w", err)
			}

			for i, f := range feeds {
				rec := models.FeedRecord{Language: string(lang), Position: i, Name: f.Name, URL: f.URL}
				if err := tx.Create(&rec).Error; err != nil {
					return fmt.Errorf("inserting feed %s: %w", f.URL, err)
				}
			}
			for i, s := range singles {
				rec := models.SingleRecord{
					Language:    string(lang),
					Position:    i,
					Title:       s.Title,
					PodcastName: s.PodcastName,
					AudioURL:    s.AudioURL,
					CoverImage:  s.CoverImage,
					Duration:    s.Duration,
					PubDate:     s.PubDate,
				}
				if err := tx.Create(&rec).Error; err != nil {
					return fmt.Errorf("inserting single %s: %w", s.AudioURL, err)
				}
			}
			return nil
		})
		if err != nil {
			return results, fmt.Errorf("importing %s: %w", lang, err)
		}

		results = append(results, ImportResult{Language: lang, Feeds: len(feeds), Singles: len(singles)})
	}

	return results, nil
}

package specification

import (
	"gorm.io/gorm"
)

type BySlug struct {
	Slug string
}

func (s BySlug) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("slug = ?", s.Slug)
}

type ByChapterKey struct {
	Key string
}

func (s ByChapterKey) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("key = ?", s.Key)
}

// SyllabusOnly excludes virtual chapters, so ad hoc units never count as "the
// first chapter" or show up in progress summaries.
type SyllabusOnly struct{}

func (s SyllabusOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_virtual = FALSE")
}

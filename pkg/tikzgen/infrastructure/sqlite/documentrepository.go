package sqlite

import (
	"time"

	"gorm.io/gorm"

	"kgeyst.com/tikzgen/pkg/tikzgen/domain"
)

// The persisted shape of a generated document. Compile artifacts are deliberately not stored: they are
// large, and regenerating them from the stored code is a single Compile call away.
type storedDocument struct {
	ID         string `gorm:"primaryKey"`
	Caption    string `gorm:"index"`
	Code       string
	HasContent bool
	CreatedAt  time.Time
}

func (storedDocument) TableName() string {
	return "documents"
}

type documentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) (domain.DocumentRepository, error) {
	err := db.AutoMigrate(&storedDocument{})
	if err != nil {
		return nil, err
	}
	return &documentRepository{db: db}, nil
}

func (d *documentRepository) Store(document *domain.TikzDocument) error {
	stored := storedDocument{
		ID:         document.ID,
		Caption:    document.Caption,
		Code:       document.Code,
		HasContent: document.HasContent(),
		CreatedAt:  document.CreatedAt,
	}
	return d.db.Save(&stored).Error
}

func (d *documentRepository) Find(filter domain.DocumentFilter) ([]*domain.TikzDocument, error) {
	query := d.db.Order("created_at desc")
	if filter.Caption != "" {
		query = query.Where("caption LIKE ?", "%"+filter.Caption+"%")
	}
	if filter.LatestCount > 0 {
		query = query.Limit(filter.LatestCount)
	}
	var stored []storedDocument
	err := query.Find(&stored).Error
	if err != nil {
		return nil, err
	}
	documents := make([]*domain.TikzDocument, 0, len(stored))
	for _, s := range stored {
		documents = append(documents, domain.NewStoredTikzDocument(s.ID, s.Caption, s.Code, s.HasContent, s.CreatedAt))
	}
	return documents, nil
}

func (d *documentRepository) RemoveAll() error {
	return d.db.Where("1 = 1").Delete(&storedDocument{}).Error
}

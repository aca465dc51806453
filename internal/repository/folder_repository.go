package repository

import (
	"vocab_edu_backend/internal/model"

	"gorm.io/gorm"
)

type FolderRepository struct {
	DB *gorm.DB
}

func NewFolderRepository(db *gorm.DB) *FolderRepository {
	return &FolderRepository{DB: db}
}

func (r *FolderRepository) Create(folder *model.Folder) error {
	return r.DB.Create(folder).Error
}

func (r *FolderRepository) FindByID(id uint) (*model.Folder, error) {
	var folder model.Folder
	err := r.DB.First(&folder, id).Error
	return &folder, err
}

func (r *FolderRepository) Update(folder *model.Folder) error {
	return r.DB.Save(folder).Error
}

func (r *FolderRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("folder_id = ?", id).Delete(&model.Vocabulary{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Folder{}, id).Error
	})
}

type FolderListRow struct {
	model.Folder
	WordCount int `json:"wordCount"`
}

func (r *FolderRepository) ListByOwner(ownerID uint) ([]FolderListRow, error) {
	var rows []FolderListRow
	err := r.DB.Table("folders f").
		Select("f.*, (SELECT COUNT(*) FROM vocabularies v WHERE v.folder_id = f.id AND v.deleted_at IS NULL) as word_count").
		Where("f.owner_id = ? AND f.deleted_at IS NULL", ownerID).
		Order("f.created_at desc").
		Scan(&rows).Error
	return rows, err
}

func (r *FolderRepository) CreateVocabulary(vocab *model.Vocabulary) error {
	return r.DB.Create(vocab).Error
}

func (r *FolderRepository) FindVocabularyByID(id uint) (*model.Vocabulary, error) {
	var vocab model.Vocabulary
	err := r.DB.First(&vocab, id).Error
	return &vocab, err
}

func (r *FolderRepository) UpdateVocabulary(vocab *model.Vocabulary) error {
	return r.DB.Save(vocab).Error
}

func (r *FolderRepository) DeleteVocabulary(id uint) error {
	return r.DB.Delete(&model.Vocabulary{}, id).Error
}

func (r *FolderRepository) ListVocabularies(folderID uint) ([]model.Vocabulary, error) {
	var vocabs []model.Vocabulary
	err := r.DB.Where("folder_id = ?", folderID).
		Order("`order` asc, created_at asc").
		Find(&vocabs).Error
	return vocabs, err
}

func (r *FolderRepository) CountVocabularies(folderID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Vocabulary{}).Where("folder_id = ?", folderID).Count(&count).Error
	return count, err
}

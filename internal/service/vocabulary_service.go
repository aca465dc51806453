package service

import (
	"errors"
	"vocab_edu_backend/internal/model"
	"vocab_edu_backend/internal/repository"
	"vocab_edu_backend/internal/util"
)

type VocabularyService struct {
	FolderRepo *repository.FolderRepository
}

func NewVocabularyService(folderRepo *repository.FolderRepository) *VocabularyService {
	return &VocabularyService{FolderRepo: folderRepo}
}

type FolderReq struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (s *VocabularyService) CreateFolder(ownerID uint, req FolderReq) (*model.Folder, error) {
	if req.Name == nil || *req.Name == "" {
		return nil, errors.New("name is required")
	}

	folder := &model.Folder{
		Name:    *req.Name,
		OwnerID: ownerID,
	}
	if req.Description != nil {
		folder.Description = *req.Description
	}

	if err := s.FolderRepo.Create(folder); err != nil {
		return nil, err
	}
	return folder, nil
}

func (s *VocabularyService) UpdateFolder(folderID, ownerID uint, req FolderReq) (*model.Folder, error) {
	folder, err := s.OwnedFolder(folderID, ownerID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != "" {
		folder.Name = *req.Name
	}
	if req.Description != nil {
		folder.Description = *req.Description
	}

	if err := s.FolderRepo.Update(folder); err != nil {
		return nil, err
	}
	return folder, nil
}

func (s *VocabularyService) DeleteFolder(folderID, ownerID uint) error {
	if _, err := s.OwnedFolder(folderID, ownerID); err != nil {
		return err
	}
	return s.FolderRepo.Delete(folderID)
}

func (s *VocabularyService) ListFolders(ownerID uint) ([]repository.FolderListRow, error) {
	return s.FolderRepo.ListByOwner(ownerID)
}

func (s *VocabularyService) OwnedFolder(folderID, ownerID uint) (*model.Folder, error) {
	folder, err := s.FolderRepo.FindByID(folderID)
	if err != nil {
		return nil, err
	}
	if folder.OwnerID != ownerID {
		return nil, util.ErrPermissionDenied
	}
	return folder, nil
}

type VocabularyReq struct {
	Word     *string `json:"word"`
	Meaning  *string `json:"meaning"`
	Phonetic *string `json:"phonetic"`
	Example  *string `json:"example"`
	AudioURL *string `json:"audioUrl"`
	Order    *int    `json:"order"`
}

func (s *VocabularyService) AddVocabulary(folderID, ownerID uint, req VocabularyReq) (*model.Vocabulary, error) {
	if _, err := s.OwnedFolder(folderID, ownerID); err != nil {
		return nil, err
	}
	if req.Word == nil || *req.Word == "" || req.Meaning == nil || *req.Meaning == "" {
		return nil, errors.New("word and meaning are required")
	}

	vocab := &model.Vocabulary{
		FolderID: folderID,
		Word:     *req.Word,
		Meaning:  *req.Meaning,
	}
	if req.Phonetic != nil {
		vocab.Phonetic = *req.Phonetic
	}
	if req.Example != nil {
		vocab.Example = *req.Example
	}
	if req.AudioURL != nil {
		vocab.AudioURL = *req.AudioURL
	}
	if req.Order != nil {
		vocab.Order = *req.Order
	}

	if err := s.FolderRepo.CreateVocabulary(vocab); err != nil {
		return nil, err
	}
	return vocab, nil
}

func (s *VocabularyService) UpdateVocabulary(vocabID, ownerID uint, req VocabularyReq) (*model.Vocabulary, error) {
	vocab, err := s.FolderRepo.FindVocabularyByID(vocabID)
	if err != nil {
		return nil, err
	}
	if _, err := s.OwnedFolder(vocab.FolderID, ownerID); err != nil {
		return nil, err
	}

	if req.Word != nil && *req.Word != "" {
		vocab.Word = *req.Word
	}
	if req.Meaning != nil && *req.Meaning != "" {
		vocab.Meaning = *req.Meaning
	}
	if req.Phonetic != nil {
		vocab.Phonetic = *req.Phonetic
	}
	if req.Example != nil {
		vocab.Example = *req.Example
	}
	if req.AudioURL != nil {
		vocab.AudioURL = *req.AudioURL
	}
	if req.Order != nil {
		vocab.Order = *req.Order
	}

	if err := s.FolderRepo.UpdateVocabulary(vocab); err != nil {
		return nil, err
	}
	return vocab, nil
}

func (s *VocabularyService) DeleteVocabulary(vocabID, ownerID uint) error {
	vocab, err := s.FolderRepo.FindVocabularyByID(vocabID)
	if err != nil {
		return err
	}
	if _, err := s.OwnedFolder(vocab.FolderID, ownerID); err != nil {
		return err
	}
	return s.FolderRepo.DeleteVocabulary(vocabID)
}

func (s *VocabularyService) ListVocabularies(folderID, ownerID uint) ([]model.Vocabulary, error) {
	if _, err := s.OwnedFolder(folderID, ownerID); err != nil {
		return nil, err
	}
	return s.FolderRepo.ListVocabularies(folderID)
}

package model

// Folder 单词文件夹，测验和作业的词库来源
// swagger:model Folder
type Folder struct {
	BaseModel
	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"size:500" json:"description"`
	OwnerID     uint   `gorm:"index;not null" json:"ownerId"`
}

func (Folder) TableName() string {
	return "folders"
}

// swagger:model Vocabulary
type Vocabulary struct {
	BaseModel
	FolderID uint   `gorm:"index;not null" json:"folderId"`
	Word     string `gorm:"size:100;not null" json:"word"`
	Meaning  string `gorm:"size:255;not null" json:"meaning"`
	Phonetic string `gorm:"size:100" json:"phonetic"`
	Example  string `gorm:"size:500" json:"example"`
	AudioURL string `gorm:"size:255" json:"audioUrl"` // TTS 生成的发音音频地址
	Order    int    `gorm:"default:0" json:"order"`
}

func (Vocabulary) TableName() string {
	return "vocabularies"
}

package model

// Clazz 班级，教师创建，学生通过邀请码加入
// swagger:model Clazz
type Clazz struct {
	BaseModel
	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"size:500" json:"description"`
	InviteCode  string `gorm:"size:10;uniqueIndex;not null" json:"inviteCode"`
	TeacherID   uint   `gorm:"index;not null" json:"teacherId"`
}

func (Clazz) TableName() string {
	return "clazzes"
}

// ClassMember 班级成员关系，学生读取班级内容的前提
type ClassMember struct {
	BaseModel
	ClassID uint `gorm:"uniqueIndex:idx_class_user;not null" json:"classId"`
	UserID  uint `gorm:"uniqueIndex:idx_class_user;not null" json:"userId"`
}

func (ClassMember) TableName() string {
	return "class_members"
}

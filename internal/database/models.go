package database

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// User 表示系统中的账号信息。
type User struct {
	gorm.Model
	Username     string   `gorm:"uniqueIndex;size:64"`
	PasswordHash string   `gorm:"size:255"`
	Resumes      []Resume `gorm:"constraint:OnDelete:CASCADE"`
}

// Resume 表示用户创建的简历。
// Content 存结构化的简历内容（resume.Data），Customization 存随简历
// 一起保存的样式状态（resume.Customization）——两者是独立的 JSONB 列。
// 删除是软删除：IsActive 置 false，行保留，列表查询不再返回。
type Resume struct {
	gorm.Model
	Title         string         `gorm:"size:255"`
	Content       datatypes.JSON `gorm:"type:jsonb"`
	Customization datatypes.JSON `gorm:"type:jsonb"`
	TemplateID    string         `gorm:"size:64;index"`
	AccentColor   string         `gorm:"size:32"`
	IsActive      bool           `gorm:"default:true;index"`
	UserID        uint           `gorm:"index"`
	User          User           `gorm:"constraint:OnDelete:CASCADE"`
	PdfUrl        string         `gorm:"size:512"`
	Status        string         `gorm:"size:32"`
}

// SuggestionRun 记录一次 AI 建议流水线的执行。
// ResumeFileKey 指向 MinIO 中暂存的上传文件。
type SuggestionRun struct {
	gorm.Model
	UserID        uint           `gorm:"index"`
	Sector        string         `gorm:"size:128"`
	Country       string         `gorm:"size:128"`
	Designation   string         `gorm:"size:128"`
	ResumeFileKey string         `gorm:"size:512"`
	Status        string         `gorm:"size:32"`
	Result        datatypes.JSON `gorm:"type:jsonb"`
	ErrorMessage  string         `gorm:"size:1024"`
}

// models/models.go - Core content models
package models

import (
	"time"
)

// Question levels run 1 (Beginner) through 5 (Master).
const (
	MinQuestionLevel = 1
	MaxQuestionLevel = 5
)

// Valid question categories.
var QuestionCategories = []string{"mythology", "culture", "festival", "history"}

// QuizQuestion is an authored quiz question. Options is a JSON-encoded array
// of {"text": ..., "is_correct": ...} pairs; only approved questions are
// eligible for live sessions.
type QuizQuestion struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Level       int       `json:"level" gorm:"not null;index"`
	Category    string    `json:"category" gorm:"not null;size:50;index"`
	Text        string    `json:"question" gorm:"not null;type:text"`
	Options     string    `json:"options" gorm:"not null;type:text"`
	Explanation string    `json:"explanation" gorm:"type:text"`
	Approved    bool      `json:"approved" gorm:"default:false;index"`
	CreatedBy   *uint     `json:"created_by" gorm:"index"`
	Creator     *User     `json:"creator,omitempty" gorm:"foreignKey:CreatedBy"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// QuestionOption is one answer choice as stored in QuizQuestion.Options.
type QuestionOption struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

// Story is a mythology story shown in the kids section. Community submissions
// start unapproved.
type Story struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"not null;size:200"`
	Deity     string    `json:"deity" gorm:"size:100;index"`
	Theme     string    `json:"theme" gorm:"size:100"`
	Content   string    `json:"content" gorm:"not null;type:text"`
	Moral     string    `json:"moral" gorm:"type:text"`
	WordCount int       `json:"word_count" gorm:"default:0"`
	Approved  bool      `json:"approved" gorm:"default:false;index"`
	CreatedBy *uint     `json:"created_by" gorm:"index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Video is a curated YouTube video in the kids learning library. Only admins
// add videos; VideoID is the 11-character YouTube id extracted from the URL.
type Video struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"not null;size:200"`
	URL       string    `json:"url" gorm:"not null;type:text"`
	VideoID   string    `json:"video_id" gorm:"not null;size:20"`
	CreatedBy *uint     `json:"created_by" gorm:"index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// QuizAttempt records one completed quiz session. Lifetime statistics (for
// achievements like first_quiz) are derived from these rows.
type QuizAttempt struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	UserID         uint      `json:"user_id" gorm:"not null;index"`
	User           *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Level          int       `json:"level" gorm:"not null;index"`
	Score          int       `json:"score" gorm:"default:0"`
	MaxScore       int       `json:"max_score" gorm:"default:0"`
	TotalQuestions int       `json:"total_questions" gorm:"default:0"`
	CorrectAnswers int       `json:"correct_answers" gorm:"default:0"`
	IsPerfect      bool      `json:"is_perfect" gorm:"default:false"`
	CreatedAt      time.Time `json:"created_at"`
}

// TableName methods for custom table names
func (QuizQuestion) TableName() string {
	return "quiz_questions"
}

func (Story) TableName() string {
	return "stories"
}

func (Video) TableName() string {
	return "youtube_videos"
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}

package models

import "time"

type Review struct {
	ID          string    `json:"id" yaml:"id" validate:"required"`
	CourseID    string    `json:"courseId" yaml:"courseId" validate:"required"`
	Rating      int       `json:"rating" yaml:"rating" validate:"min=1,max=5"`
	Title       string    `json:"title" yaml:"title"`
	Text        string    `json:"text" yaml:"text"`
	Date        time.Time `json:"date" yaml:"date"`
	AuthorEmail string    `json:"authorEmail" yaml:"authorEmail"`
	AuthorName  string    `json:"authorName" yaml:"authorName"`
}

package models

const (
	LevelBeginner     = "Beginner"
	LevelIntermediate = "Intermediate"
	LevelAdvanced     = "Advanced"
	LevelExpert       = "Expert"
)

// Levels lists the course levels in ascending difficulty.
var Levels = []string{LevelBeginner, LevelIntermediate, LevelAdvanced, LevelExpert}

type Course struct {
	ID          string  `json:"id" yaml:"id" validate:"required"`
	Title       string  `json:"title" yaml:"title" validate:"required"`
	Instructor  string  `json:"instructor" yaml:"instructor" validate:"required"`
	Category    string  `json:"category" yaml:"category"`
	Level       string  `json:"level" yaml:"level" validate:"omitempty,oneof=Beginner Intermediate Advanced Expert"`
	Language    string  `json:"language" yaml:"language"`
	Price       float64 `json:"price" yaml:"price" validate:"gte=0"`
	Rating      float64 `json:"rating" yaml:"rating" validate:"gte=0,lte=5"`
	Duration    string  `json:"duration,omitempty" yaml:"duration"`
	Description string  `json:"description,omitempty" yaml:"description"`
	Image       string  `json:"image,omitempty" yaml:"image"`
	Seats       int     `json:"seats,omitempty" yaml:"seats" validate:"gte=0"`
}

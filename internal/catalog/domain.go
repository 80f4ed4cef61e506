// Package catalog manages the admin-curated content records: videos,
// quizzes with their questions, tests and LMS content.
package catalog

// Video is a hosted lesson video reference.
type Video struct {
	ID          int64
	Title       string
	Description string
	VideoURL    string
}

// Question belongs to a quiz.
type Question struct {
	ID            int64
	QuizID        int64
	QuestionText  string
	OptionA       string
	OptionB       string
	OptionC       string
	OptionD       string
	CorrectOption string
}

// Quiz groups questions under a title and mark total.
type Quiz struct {
	ID          int64
	Title       string
	Description string
	TotalMarks  int
	Questions   []Question
}

// Test is a graded assessment record.
type Test struct {
	ID          int64
	Title       string
	Description string
	MaxMarks    int
}

// LMSContent is a free-form content entry (notes, links, attachments).
type LMSContent struct {
	ID          int64
	Title       string
	Content     string
	ContentType string
}

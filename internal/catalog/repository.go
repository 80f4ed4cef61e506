package catalog

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/studyhall/studyhall/internal/platform/db"
	"github.com/studyhall/studyhall/internal/platform/httpx"
)

// Repository defines persistence operations for catalog records.
type Repository interface {
	CreateVideo(ctx context.Context, video Video) (int64, error)
	ListVideos(ctx context.Context) ([]Video, error)
	DeleteVideo(ctx context.Context, id int64) error

	CreateQuiz(ctx context.Context, quiz Quiz) (int64, error)
	ListQuizzes(ctx context.Context) ([]Quiz, error)
	DeleteQuiz(ctx context.Context, id int64) error

	CreateTest(ctx context.Context, test Test) (int64, error)
	ListTests(ctx context.Context) ([]Test, error)
	DeleteTest(ctx context.Context, id int64) error

	CreateLMSContent(ctx context.Context, content LMSContent) (int64, error)
	ListLMSContent(ctx context.Context) ([]LMSContent, error)
	DeleteLMSContent(ctx context.Context, id int64) error
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

func (r *PGRepository) CreateVideo(ctx context.Context, video Video) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO videos (title, description, video_url) VALUES ($1, $2, $3) RETURNING id`,
		video.Title, video.Description, video.VideoURL).Scan(&id)
	return id, err
}

func (r *PGRepository) ListVideos(ctx context.Context) ([]Video, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, title, description, video_url FROM videos ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	videos := []Video{}
	for rows.Next() {
		var v Video
		if err := rows.Scan(&v.ID, &v.Title, &v.Description, &v.VideoURL); err != nil {
			return nil, err
		}
		videos = append(videos, v)
	}
	return videos, rows.Err()
}

func (r *PGRepository) DeleteVideo(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, `DELETE FROM videos WHERE id = $1`, id)
}

// CreateQuiz inserts the quiz and its questions in one transaction so a
// failed question insert never leaves an empty quiz behind.
func (r *PGRepository) CreateQuiz(ctx context.Context, quiz Quiz) (int64, error) {
	var id int64
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx,
			`INSERT INTO quizzes (title, description, total_marks) VALUES ($1, $2, $3) RETURNING id`,
			quiz.Title, quiz.Description, quiz.TotalMarks).Scan(&id); err != nil {
			return err
		}
		for _, q := range quiz.Questions {
			if _, err := tx.Exec(ctx,
				`INSERT INTO questions (quiz_id, question_text, option_a, option_b, option_c, option_d, correct_option)
				 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
				id, q.QuestionText, q.OptionA, q.OptionB, q.OptionC, q.OptionD, q.CorrectOption); err != nil {
				return err
			}
		}
		return nil
	})
	return id, err
}

func (r *PGRepository) ListQuizzes(ctx context.Context) ([]Quiz, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, title, description, total_marks FROM quizzes ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	quizzes := []Quiz{}
	index := map[int64]int{}
	for rows.Next() {
		var q Quiz
		if err := rows.Scan(&q.ID, &q.Title, &q.Description, &q.TotalMarks); err != nil {
			return nil, err
		}
		q.Questions = []Question{}
		index[q.ID] = len(quizzes)
		quizzes = append(quizzes, q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	qrows, err := r.pool.Query(ctx,
		`SELECT id, quiz_id, question_text, option_a, option_b, option_c, option_d, correct_option
		 FROM questions ORDER BY quiz_id, id`)
	if err != nil {
		return nil, err
	}
	defer qrows.Close()
	for qrows.Next() {
		var q Question
		if err := qrows.Scan(&q.ID, &q.QuizID, &q.QuestionText, &q.OptionA, &q.OptionB, &q.OptionC, &q.OptionD, &q.CorrectOption); err != nil {
			return nil, err
		}
		if i, ok := index[q.QuizID]; ok {
			quizzes[i].Questions = append(quizzes[i].Questions, q)
		}
	}
	return quizzes, qrows.Err()
}

// DeleteQuiz removes a quiz; questions go with it via ON DELETE CASCADE.
func (r *PGRepository) DeleteQuiz(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, `DELETE FROM quizzes WHERE id = $1`, id)
}

func (r *PGRepository) CreateTest(ctx context.Context, test Test) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO tests (title, description, max_marks) VALUES ($1, $2, $3) RETURNING id`,
		test.Title, test.Description, test.MaxMarks).Scan(&id)
	return id, err
}

func (r *PGRepository) ListTests(ctx context.Context) ([]Test, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, title, description, max_marks FROM tests ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	tests := []Test{}
	for rows.Next() {
		var t Test
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.MaxMarks); err != nil {
			return nil, err
		}
		tests = append(tests, t)
	}
	return tests, rows.Err()
}

func (r *PGRepository) DeleteTest(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, `DELETE FROM tests WHERE id = $1`, id)
}

func (r *PGRepository) CreateLMSContent(ctx context.Context, content LMSContent) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO lms_content (title, content, content_type) VALUES ($1, $2, $3) RETURNING id`,
		content.Title, content.Content, content.ContentType).Scan(&id)
	return id, err
}

func (r *PGRepository) ListLMSContent(ctx context.Context) ([]LMSContent, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, title, content, content_type FROM lms_content ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	contents := []LMSContent{}
	for rows.Next() {
		var c LMSContent
		if err := rows.Scan(&c.ID, &c.Title, &c.Content, &c.ContentType); err != nil {
			return nil, err
		}
		contents = append(contents, c)
	}
	return contents, rows.Err()
}

func (r *PGRepository) DeleteLMSContent(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, `DELETE FROM lms_content WHERE id = $1`, id)
}

func (r *PGRepository) deleteByID(ctx context.Context, query string, id int64) error {
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

var _ Repository = (*PGRepository)(nil)

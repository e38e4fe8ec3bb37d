package models

import "time"

// News is an announcement authored by a user, admins in practice.
type News struct {
	ID        string    `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	Content   string    `db:"content" json:"content"`
	UserID    string    `db:"user_id" json:"user_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// NewsDetail joins the news row with the author's name.
type NewsDetail struct {
	News
	AuthorName string `db:"author_name" json:"author_name"`
}

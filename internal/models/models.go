package models

import (
	"time"
)

type User struct {
	UserID       string    `json:"userId" db:"user_id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Surname      string    `json:"surname" db:"surname"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

type Post struct {
	PostID    string    `json:"postId" db:"post_id"`
	AuthorID  string    `json:"authorId" db:"author_id"`
	Title     string    `json:"title" db:"title"`
	Subtitle  string    `json:"subtitle" db:"subtitle"`
	Body      string    `json:"body" db:"body"`
	ImgURL    string    `json:"imgUrl" db:"img_url"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	// filled by joins with users
	AuthorEmail   string `json:"authorEmail" db:"author_email"`
	AuthorSurname string `json:"authorSurname" db:"author_surname"`
}

type Comment struct {
	CommentID string    `json:"commentId" db:"comment_id"`
	PostID    string    `json:"postId" db:"post_id"`
	AuthorID  string    `json:"authorId" db:"author_id"`
	Text      string    `json:"text" db:"content"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	// filled by joins with users
	AuthorEmail   string `json:"authorEmail" db:"author_email"`
	AuthorSurname string `json:"authorSurname" db:"author_surname"`
}

type Session struct {
	SessionID string    `db:"session_id"`
	UserID    string    `db:"user_id"`
	ExpiresAt time.Time `db:"expires_at"`
	CreatedAt time.Time `db:"created_at"`
}

type Counts struct {
	Users    int `json:"users" db:"users"`
	Posts    int `json:"posts" db:"posts"`
	Comments int `json:"comments" db:"comments"`
}

package test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"personalblog/internal/models"
)

func TestCreateComment_Anonymous(t *testing.T) {
	s := newTestServer(t)

	rr := s.do(postForm("/post/post-1", url.Values{"comment_text": {"Nice!"}}))

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/login", rr.Header().Get("Location"))

	var flash string
	for _, c := range rr.Result().Cookies() {
		if c.Name == "flash" {
			flash, _ = url.QueryUnescape(c.Value)
		}
	}
	assert.Equal(t, "You need to login or register to comment.", flash)
	s.comments.AssertNotCalled(t, "CreateComment", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateComment(t *testing.T) {
	s := newTestServer(t)
	s.comments.On("CreateComment", mock.Anything, identityOf(testUser), models.CreateCommentInput{
		PostID: "post-1",
		Text:   "Nice!",
	}).Return(&models.Comment{CommentID: "c-1"}, nil)

	rr := s.do(loggedIn(postForm("/post/post-1", url.Values{"comment_text": {"Nice!"}})))

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/post/post-1", rr.Header().Get("Location"))
	s.comments.AssertExpectations(t)
}

func TestCreateComment_Empty(t *testing.T) {
	s := newTestServer(t)
	s.posts.On("GetPost", mock.Anything, "post-1").Return(testPost, []models.Comment{}, nil)

	rr := s.do(loggedIn(postForm("/post/post-1", url.Values{"comment_text": {"   "}})))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "This field is required.")
	s.comments.AssertNotCalled(t, "CreateComment", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateComment_MissingPost(t *testing.T) {
	s := newTestServer(t)
	s.comments.On("CreateComment", mock.Anything, mock.Anything, mock.Anything).Return(nil, models.ErrNotFound)

	rr := s.do(loggedIn(postForm("/post/missing", url.Values{"comment_text": {"Nice!"}})))

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestDeleteComment(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"allowed", nil, http.StatusSeeOther},
		{"not the author", models.ErrUnauthorized, http.StatusForbidden},
		{"missing", models.ErrNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			s.comments.On("DeleteComment", mock.Anything, identityOf(testUser), "post-1", "c-1").Return(tt.err)

			rr := s.do(loggedIn(get("/delete/post/post-1/comments/c-1")))

			assert.Equal(t, tt.expected, rr.Code)
			if tt.err == nil {
				assert.Equal(t, "/post/post-1", rr.Header().Get("Location"))
			}
		})
	}
}

package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"personalblog/internal/auth"
	"personalblog/internal/models"
)

const coverField = "cover"

func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	posts, err := h.PostService.ListPosts(r.Context())
	if err != nil {
		h.handleError(w, r, "list posts", err)
		return
	}

	h.render(w, r, http.StatusOK, "index.html", &pageData{Posts: posts})
}

func (h *Handlers) ShowPost(w http.ResponseWriter, r *http.Request) {
	h.showPost(w, r, http.StatusOK, models.CreateCommentInput{}, nil)
}

func (h *Handlers) showPost(w http.ResponseWriter, r *http.Request, status int, form models.CreateCommentInput, errs map[string]string) {
	postID := mux.Vars(r)["postId"]

	post, comments, err := h.PostService.GetPost(r.Context(), postID)
	if err != nil {
		h.handleError(w, r, "get post", err)
		return
	}

	h.render(w, r, status, "post.html", &pageData{
		Post:     post,
		Comments: comments,
		Form:     form,
		Errors:   errs,
	})
}

func (h *Handlers) AuthorPage(w http.ResponseWriter, r *http.Request) {
	author, posts, err := h.PostService.PostsByAuthor(r.Context(), mux.Vars(r)["userId"])
	if err != nil {
		h.handleError(w, r, "posts by author", err)
		return
	}

	h.render(w, r, http.StatusOK, "user.html", &pageData{Author: author, Posts: posts})
}

func (h *Handlers) NewPostForm(w http.ResponseWriter, r *http.Request) {
	h.renderPostForm(w, r, http.StatusOK, "", models.CreatePostInput{}, nil, "")
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	req, ok := h.readPostForm(w, r, "")
	if !ok {
		return
	}

	post, err := h.PostService.CreatePost(r.Context(), auth.IdentityFrom(r.Context()), req)
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			h.renderPostForm(w, r, http.StatusConflict, "", req, nil, "A post with that title already exists.")
			return
		}
		h.handleError(w, r, "create post", err)
		return
	}

	log.Printf("Post %s created by %s", post.PostID, post.AuthorID)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handlers) EditPostForm(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["postId"]

	post, _, err := h.PostService.GetPost(r.Context(), postID)
	if err != nil {
		h.handleError(w, r, "get post", err)
		return
	}

	form := models.CreatePostInput{
		Title:    post.Title,
		Subtitle: post.Subtitle,
		Body:     post.Body,
		ImgURL:   post.ImgURL,
	}
	h.renderPostForm(w, r, http.StatusOK, postID, form, nil, "")
}

func (h *Handlers) EditPost(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["postId"]

	req, ok := h.readPostForm(w, r, postID)
	if !ok {
		return
	}

	_, err := h.PostService.EditPost(r.Context(), auth.IdentityFrom(r.Context()), models.EditPostInput{
		PostID:          postID,
		CreatePostInput: req,
	})
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			h.renderPostForm(w, r, http.StatusConflict, postID, req, nil, "A post with that title already exists.")
			return
		}
		h.handleError(w, r, "edit post", err)
		return
	}

	http.Redirect(w, r, "/post/"+postID, http.StatusSeeOther)
}

func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["postId"]

	err := h.PostService.DeletePost(r.Context(), auth.IdentityFrom(r.Context()), postID)
	if err != nil {
		h.handleError(w, r, "delete post", err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handlers) renderPostForm(w http.ResponseWriter, r *http.Request, status int, postID string, form models.CreatePostInput, errs map[string]string, message string) {
	h.render(w, r, status, "make-post.html", &pageData{
		Form:           form,
		Errors:         errs,
		Error:          message,
		Editing:        postID != "",
		PostID:         postID,
		UploadsEnabled: h.Cfg.MinIO.Enabled(),
	})
}

// readPostForm reads and validates the post form, uploading the cover image
// when one is attached. It renders the response itself and reports false
// when the request cannot proceed.
func (h *Handlers) readPostForm(w http.ResponseWriter, r *http.Request, postID string) (models.CreatePostInput, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadSize)

	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.renderPostForm(w, r, http.StatusRequestEntityTooLarge, postID, models.CreatePostInput{}, nil, "The uploaded image is too large.")
		} else {
			h.renderError(w, r, http.StatusBadRequest, "The form could not be read.")
		}
		return models.CreatePostInput{}, false
	}

	req := readPostInput(r)

	file, header, err := r.FormFile(coverField)
	hasCover := err == nil
	if hasCover {
		defer file.Close()
	}

	errs := h.validate(req)
	if hasCover {
		delete(errs, "img_url")
	}
	if len(errs) > 0 {
		h.renderPostForm(w, r, http.StatusBadRequest, postID, req, errs, "")
		return req, false
	}

	if hasCover {
		url, err := h.PostService.UploadCover(r.Context(), auth.IdentityFrom(r.Context()), header.Filename, file, header.Size)
		if err != nil {
			log.Printf("Cover upload failed: %v", err)
			h.renderPostForm(w, r, http.StatusBadGateway, postID, req, nil, "The cover image could not be uploaded.")
			return req, false
		}
		req.ImgURL = url
		req.CoverUploaded = true
	}

	return req, true
}

package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"personalblog/internal/auth"
	"personalblog/internal/middleware"
	"personalblog/internal/models"
)

func (h *Handlers) CreateComment(w http.ResponseWriter, r *http.Request) {
	identity := auth.IdentityFrom(r.Context())
	if identity.IsAnonymous() {
		middleware.SetFlash(w, "You need to login or register to comment.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	postID := mux.Vars(r)["postId"]
	req := models.CreateCommentInput{
		PostID: postID,
		Text:   formValue(r, "comment_text"),
	}

	if errs := h.validate(req); errs != nil {
		h.showPost(w, r, http.StatusBadRequest, req, errs)
		return
	}

	if _, err := h.CommentService.CreateComment(r.Context(), identity, req); err != nil {
		h.handleError(w, r, "create comment", err)
		return
	}

	http.Redirect(w, r, "/post/"+postID, http.StatusSeeOther)
}

func (h *Handlers) DeleteComment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	err := h.CommentService.DeleteComment(r.Context(), auth.IdentityFrom(r.Context()), vars["postId"], vars["commentId"])
	if err != nil {
		h.handleError(w, r, "delete comment", err)
		return
	}

	http.Redirect(w, r, "/post/"+vars["postId"], http.StatusSeeOther)
}

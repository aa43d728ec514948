package models

type RegisterInput struct {
	Email    string `form:"email" validate:"required,email,max=250"`
	Surname  string `form:"surname" validate:"required,max=250"`
	Password string `form:"password" validate:"required,maxbytes=72"`
}

type LoginInput struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

type CreatePostInput struct {
	Title    string `form:"title" validate:"required,max=250"`
	Subtitle string `form:"subtitle" validate:"required,max=250"`
	Body     string `form:"body" validate:"required"`
	ImgURL   string `form:"img_url" validate:"required,url,max=500"`

	// CoverUploaded marks ImgURL as an object uploaded with this request.
	CoverUploaded bool `form:"-"`
}

type EditPostInput struct {
	PostID string `form:"-" validate:"required"`
	CreatePostInput
}

type CreateCommentInput struct {
	PostID string `form:"-" validate:"required"`
	Text   string `form:"comment_text" validate:"required,max=5000"`
}

type ContactInput struct {
	Name    string `form:"name" validate:"required,max=100"`
	Email   string `form:"email" validate:"required,email"`
	Phone   string `form:"phone" validate:"omitempty,max=30"`
	Message string `form:"message" validate:"required,max=5000"`
}

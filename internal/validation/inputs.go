package validation

// Input shapes, one per mutating endpoint. Pointer fields distinguish
// "absent" from "present but empty" on partial updates.

type RegisterInput struct {
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type BookInput struct {
	Key              string   `json:"key" validate:"required"`
	Title            string   `json:"title" validate:"required"`
	AuthorName       []string `json:"author_name"`
	FirstPublishYear int      `json:"first_publish_year"`
}

type UserUpdateInput struct {
	Username     *string    `json:"username" validate:"omitempty,min=3"`
	Password     *string    `json:"password" validate:"omitempty,min=8"`
	FavoriteBook *BookInput `json:"favoriteBook"`
}

type PostCreateInput struct {
	Title   string `json:"title" validate:"required,min=1"`
	Content string `json:"content" validate:"required,min=1"`
	// AuthorID is accepted on the wire but never trusted; the resolved
	// session always wins.
	AuthorID string `json:"authorId"`
}

type PostUpdateInput struct {
	Title   *string `json:"title" validate:"omitempty,min=1"`
	Content *string `json:"content" validate:"omitempty,min=1"`
}

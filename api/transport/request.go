package transport

// LoginRequest carries dashboard credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// StatusChangeRequest moves a task to a new board column.
type StatusChangeRequest struct {
	Status string `json:"status"`
}

// CommentRequest appends a note to a task.
type CommentRequest struct {
	Content string `json:"content"`
}

// AttachmentRequest registers an uploaded file against a task.
type AttachmentRequest struct {
	Name     string `json:"name"`
	URL      string `json:"url"`
	MimeType string `json:"mime_type"`
	Size     int64  `json:"size"`
}

// CreateUserRequest registers a new dashboard account.
type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// RoleChangeRequest promotes or demotes an account.
type RoleChangeRequest struct {
	Role string `json:"role"`
}

// BlockRequest suspends or reinstates an account.
type BlockRequest struct {
	Blocked bool `json:"blocked"`
}

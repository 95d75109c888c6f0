package model

// Todo represents a to-do item row in the database.
type Todo struct {
	ID          int64
	Title       string
	Description string
	Priority    int
	Completed   bool
	OwnerID     int64
}

// TodoRequest represents a to-do create or update request.
type TodoRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"required,min=1,max=250"`
	Priority    int    `json:"priority" validate:"required,gt=0,lt=11"`
	Completed   bool   `json:"completed"`
}

// Validate checks the to-do request against its field constraints.
func (r TodoRequest) Validate() error {
	return validate.Struct(r)
}

// TodoResponse represents a to-do item in API responses.
type TodoResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    int    `json:"priority"`
	Completed   bool   `json:"completed"`
	OwnerID     int64  `json:"owner_id"`
}

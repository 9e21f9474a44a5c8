package types

// RegisterRequest is the payload for user registration.
type RegisterRequest struct {
	Username string  `json:"username" binding:"required,min=3,max=80"`
	Password string  `json:"password" binding:"required,min=6"`
	Age      int     `json:"age" binding:"omitempty,min=1,max=120"`
	Gender   string  `json:"gender"`
	Height   float64 `json:"height"`
	Weight   float64 `json:"weight"`
	Goal     string  `json:"goal"`
	Role     string  `json:"role"`
}

// LoginRequest is the payload for login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ActivityRequest is the payload for logging a day's activity.
type ActivityRequest struct {
	Date     string `json:"date"`
	Steps    int    `json:"steps" binding:"min=0"`
	Exercise string `json:"exercise"`
	Calories int    `json:"calories" binding:"min=0"`
}

// GoalRequest updates the user's health goal.
type GoalRequest struct {
	Goal string `json:"goal" binding:"required"`
}

// ChatRequest is a question for the assistant.
type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

// CommentRequest is a doctor's comment on a report.
type CommentRequest struct {
	Comment string `json:"comment" binding:"required"`
}

// MessageRequest sends a message to another user.
type MessageRequest struct {
	ReceiverID      string `json:"receiver_id" binding:"required"`
	Content         string `json:"content" binding:"required"`
	MessageType     string `json:"message_type"`
	RelatedReportID string `json:"related_report_id"`
}

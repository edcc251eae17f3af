package shared

const (
	UserID   = "user_id"
	UserRole = "user_role"

	RoleUser  = "user"
	RoleAdmin = "admin"

	SubmissionTypeText  = "text"
	SubmissionTypeLink  = "link"
	SubmissionTypeImage = "image"

	EventModeOnline  = "online"
	EventModeOffline = "offline"
	EventModeHybrid  = "hybrid"
)

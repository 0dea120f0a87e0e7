package constant

const (
	ChatMessageRoleUser   = "user"
	ChatMessageRoleModel  = "model"
	ChatMessageRoleSystem = "system"

	DefaultSessionTitle = "Unnamed session"
)

// Event codes published on the bus and mapped to notification types.
const (
	EventSessionCreated   = "SESSION_CREATED"
	EventSessionRenamed   = "SESSION_RENAMED"
	EventChapterCompleted = "CHAPTER_COMPLETED"
	EventCourseCompleted  = "COURSE_COMPLETED"
)

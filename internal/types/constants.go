package types

const (
	ContextUserKey = "user"
	TokenCookie    = "token"
)

const (
	TaskCreated = "task.created"
	TaskUpdated = "task.updated"
	TaskDeleted = "task.deleted"
)

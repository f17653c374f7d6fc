package broker

// NATS subjects, one per entity.
const (
	UserSubject    = "organizer.users"
	ProjectSubject = "organizer.projects"
	TaskSubject    = "organizer.tasks"
	SubtaskSubject = "organizer.subtasks"
)

type EventType string

const (
	// Standardized event types in format: <resource>.<action>
	ProjectCreated EventType = "project.created"
	ProjectUpdated EventType = "project.updated"
	ProjectDeleted EventType = "project.deleted"

	TaskCreated EventType = "task.created"
	TaskUpdated EventType = "task.updated"
	TaskDeleted EventType = "task.deleted"
	TaskToggled EventType = "task.toggled"

	SubtaskCreated EventType = "subtask.created"
	SubtaskUpdated EventType = "subtask.updated"
	SubtaskDeleted EventType = "subtask.deleted"

	UserCreated EventType = "user.created"
	UserUpdated EventType = "user.updated"
	UserDeleted EventType = "user.deleted"
)

// SubjectForEntity maps an event's entity to the subject it is published on.
func SubjectForEntity(entity string) string {
	switch entity {
	case "project":
		return ProjectSubject
	case "task":
		return TaskSubject
	case "subtask":
		return SubtaskSubject
	case "user":
		return UserSubject
	default:
		return TaskSubject
	}
}

package types

const ContextUserKey = "user"

const ContextRequestIDKey = "request_id"

// Entity names carried by project refresh events.
const (
	EntityProject            = "project"
	EntityIssue              = "issue"
	EntitySprint             = "sprint"
	EntityRelease            = "release"
	EntityTask               = "task"
	EntityTest               = "test"
	EntityDocumentation      = "documentation"
	EntityDocumentationIssue = "documentation_issue"
)

// DefaultAllowedOrigins are the local development front-ends.
var DefaultAllowedOrigins = []string{
	"http://localhost:3000",
	"http://localhost:3001",
	"http://localhost:5173",
}

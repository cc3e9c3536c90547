package httpserver

import "github.com/taskboard/server/internal/model"

// Operation names for the role table.
const (
	opTaskCreate    = "tasks.create"
	opCommentCreate = "comments.create"
)

// requiredRoles maps an operation to the role set allowed to perform it.
// Operations absent from the table admit any authenticated caller. The table
// is plain data consulted before dispatch, not annotations resolved at
// runtime.
var requiredRoles = map[string][]model.Role{
	opTaskCreate:    {model.RoleUser},
	opCommentCreate: {model.RoleAuthor},
}

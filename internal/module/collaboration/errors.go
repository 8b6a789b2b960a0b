package collaboration

import "errors"

var (
	// Not found
	ErrProjectNotFound = errors.New("project not found")
	ErrRequestNotFound = errors.New("collaboration request not found")
	ErrUserNotFound    = errors.New("requester not found")

	// Forbidden
	ErrNotProjectOwner  = errors.New("not the project owner")
	ErrOwnerOnlyListing = errors.New("only the owner can list requests")
	ErrNotRequester     = errors.New("not the requester")

	// Preconditions on create
	ErrProjectNotOpen       = errors.New("project is not in progress")
	ErrCannotJoinOwnProject = errors.New("requester owns the project")
	ErrAlreadyTeamMember    = errors.New("requester is already a team member")
	ErrPendingRequestExists = errors.New("pending request already exists")

	// Validation
	ErrMessageTooShort = errors.New("message too short")
	ErrMessageTooLong  = errors.New("message too long")
	ErrSkillsRequired  = errors.New("skills required")
	ErrTooManySkills   = errors.New("too many skills")
	ErrSkillTooLong    = errors.New("skill too long")
	ErrInvalidAction   = errors.New("invalid review action")

	// State
	ErrAlreadyReviewed = errors.New("request already reviewed")
	ErrCannotCancel    = errors.New("request is not pending")
)

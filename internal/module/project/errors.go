package project

import "errors"

var (
	ErrProjectNotFound  = errors.New("project not found")
	ErrNotProjectOwner  = errors.New("not the project owner")
	ErrAlreadyPublished = errors.New("project already published")
)

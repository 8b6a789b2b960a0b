// Package main UniShowcase Server API
//
//	@title						UniShowcase Server API
//	@version					1.0
//	@description				Backend API for the student project showcase: collaboration requests and achievement badges.
//
//	@host						localhost:8080
//	@BasePath					/api/v1
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"
//
//	@tag.name					Projects
//	@tag.description			Project views and publishing
//
//	@tag.name					Collaboration
//	@tag.description			Collaboration requests and review
//
//	@tag.name					Badges
//	@tag.description			Achievement badges
package main

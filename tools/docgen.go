// Package main provides a YAML API reference generator for the userbase API.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

// APISpec is a simplified OpenAPI-style document describing the HTTP surface.
type APISpec struct {
	OpenAPI string `yaml:"openapi"`
	Info    struct {
		Title       string `yaml:"title"`
		Description string `yaml:"description"`
		Version     string `yaml:"version"`
	} `yaml:"info"`
	Paths map[string]map[string]Operation `yaml:"paths"`
}

// Operation describes one HTTP operation.
type Operation struct {
	Summary   string         `yaml:"summary"`
	Tags      []string       `yaml:"tags,omitempty"`
	Security  bool           `yaml:"x-requires-session,omitempty"`
	Responses map[int]string `yaml:"responses"`
}

// errorResponses lists the failure statuses shared by authenticated routes.
func errorResponses(extra map[int]string) map[int]string {
	out := map[int]string{
		401: "UNAUTHORIZED - missing or invalid session",
		403: "FORBIDDEN - insufficient permissions",
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

func buildSpec() *APISpec {
	spec := &APISpec{OpenAPI: "3.0.3"}
	spec.Info.Title = "Userbase API"
	spec.Info.Description = "User management backend with session authentication."
	spec.Info.Version = "1.0.0"

	spec.Paths = map[string]map[string]Operation{
		"/health": {
			"get": {Summary: "Service health and build info", Tags: []string{"system"},
				Responses: map[int]string{200: "OK"}},
		},
		"/api/v1/auth/config": {
			"get": {Summary: "Enabled authentication methods", Tags: []string{"auth"},
				Responses: map[int]string{200: "OK"}},
		},
		"/api/v1/session/login": {
			"post": {Summary: "Password login", Tags: []string{"auth"},
				Responses: map[int]string{
					200: "Logged in",
					400: "SERIALIZATION_ERROR - malformed body",
					401: "UNAUTHORIZED - invalid credentials",
				}},
		},
		"/api/v1/session": {
			"get": {Summary: "Current session identity", Tags: []string{"auth"}, Security: true,
				Responses: errorResponses(map[int]string{200: "OK"})},
			"delete": {Summary: "Logout", Tags: []string{"auth"}, Security: true,
				Responses: errorResponses(map[int]string{204: "Session cleared"})},
		},
		"/api/v1/users": {
			"get": {Summary: "List users (paginated via limit and offset query params)", Tags: []string{"users"}, Security: true,
				Responses: errorResponses(map[int]string{200: "OK"})},
			"post": {Summary: "Create user", Tags: []string{"users"}, Security: true,
				Responses: errorResponses(map[int]string{
					201: "Created",
					409: "CONFLICT - email already exists",
					422: "VALIDATION_ERROR - semantically invalid input",
				})},
		},
		"/api/v1/users/{id}": {
			"get": {Summary: "Get user by id", Tags: []string{"users"}, Security: true,
				Responses: errorResponses(map[int]string{200: "OK", 404: "NOT_FOUND"})},
			"put": {Summary: "Update user", Tags: []string{"users"}, Security: true,
				Responses: errorResponses(map[int]string{
					200: "OK",
					400: "BAD_REQUEST - no fields to update",
					404: "NOT_FOUND",
				})},
			"delete": {Summary: "Delete user", Tags: []string{"users"}, Security: true,
				Responses: errorResponses(map[int]string{204: "Deleted", 404: "NOT_FOUND"})},
		},
	}

	return spec
}

func main() {
	out := flag.String("out", "docs/api.yaml", "output file path")
	flag.Parse()

	data, err := yaml.Marshal(buildSpec())
	if err != nil {
		log.Fatalf("Failed to marshal API spec: %v", err)
	}

	if err := os.WriteFile(*out, data, 0o644); err != nil {
		log.Fatalf("Failed to write %s: %v", *out, err)
	}

	fmt.Printf("Wrote %s\n", *out)
}

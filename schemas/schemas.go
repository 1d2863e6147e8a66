// Package schemas embeds the JSON Schemas for the fixture documents.
package schemas

import "embed"

// FS holds every *.schema.json file in this directory.
//
//go:embed *.schema.json
var FS embed.FS

// Schema file names, one per fixture document.
const (
	Jobs       = "jobs.schema.json"
	Candidates = "candidates.schema.json"
	Users      = "users.schema.json"
)

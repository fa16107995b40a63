// Package schemas holds the JSON Schema documents shipped with the binary.
package schemas

import "embed"

//go:embed *.schema.json
var Files embed.FS

// ResumeSchemaFile is the schema cv_data files are checked against.
const ResumeSchemaFile = "resume.schema.json"

// Resume returns the raw resume schema.
func Resume() []byte {
	data, err := Files.ReadFile(ResumeSchemaFile)
	if err != nil {
		panic("embedded resume schema missing: " + err.Error())
	}
	return data
}

// Package tileset provides the embedded tile legend shared by the server and the viewer.
package tileset

import "embed"

// dataFS embeds all JSON files from this directory at build time.
//
//go:embed *.json
var dataFS embed.FS

// Package db carries the catalog store schema.
package db

import _ "embed"

//go:embed schema.sql
var Schema string

package web

import (
	_ "embed"
)

// Index holds the single-page calculator form served at the root route.
//
//go:embed index.html
var Index []byte

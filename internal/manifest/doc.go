// Package manifest loads declarative TOML timeline descriptions and builds
// projects from them. The export command uses it to render timelines without
// an interactive session.
package manifest

// Package textutil holds small text helpers shared across the CLI.
package textutil

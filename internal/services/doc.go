// Package services holds shared plumbing for external tool integrations:
// sentinel error markers and the Wrap helper that tags failures with stage
// context for classification.
package services

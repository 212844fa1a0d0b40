// Package models defines the records exchanged with the Wataki API, both over
// the control plane and inside stream events.
package models

// Package services contains the business operations of the PlanA client.
//
// Services orchestrate API calls through client.API and keep their results
// either in the shared store.Store or in their own exported fields, which
// the CLI reads after each call. Diffs that become PATCH bodies are computed
// by pure functions so they can be tested without I/O.
package services

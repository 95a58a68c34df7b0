// Package models defines the records exchanged with the PlanA API.
//
// JSON names follow the API (camelCase). Fields the API may send as null use
// volatiletech/null types so that "absent" and "empty" stay distinguishable
// when computing patches.
package models

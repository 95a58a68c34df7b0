// Package cli provides the interactive PlanA administration client.
//
// App wires the session store, the API services and the navigation guard,
// then runs a REPL. Every command belongs to a screen of the web front-end;
// the guard decides whether the screen is reachable before the command runs,
// so anonymous users are sent to 'login' and signed-in users cannot reach
// the registration screens.
//
// Command groups:
//   - session: login, cas, register, password-reset, logout, whoami
//   - directory: directory, advanced
//   - associations: associations, association*, members, roles
//   - commissions: commissions, commission-*, funds
//   - users: users, user*, unvalidated-members
//   - documents: documents, document-*, template
//
// Errors are printed with the category of notification the web front-end
// would show ("403-error" or "500-error").
package cli

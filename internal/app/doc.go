// Package app wires configuration, storage clients, the user directory, the
// session store and the HTTP router into a runnable service.
package app

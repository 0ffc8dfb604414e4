// Package app wires configuration, logging, the tenant directory and the
// HTTP API into the mentionkit service.
package app

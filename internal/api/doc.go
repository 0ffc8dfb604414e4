// Package api serves the mention demo endpoints over a tenant directory.
//
//	GET  /health        liveness
//	GET  /health/ready  readiness of the directory backends
//	GET  /suggest?q=    up to the suggestion limit of the tenant's entities
//	POST /resolve       parse, validate and summarize {"page_context": {...}}
//
// The tenant comes from the X-Tenant-Id header and falls back to the
// configured default. Error responses carry a fixed message per failure
// class and never echo request input.
package api

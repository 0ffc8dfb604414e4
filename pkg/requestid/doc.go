// Package requestid attaches a correlation id to every HTTP request.
//
// Middleware reuses the client's X-Request-ID header when it is 1-128
// characters of letters, digits, '-' and '_', and otherwise generates a UUIDv7.
// The id is stored in the request context and echoed in the response header.
// LoggerExtractor plugs it into logger.New so that every record logged with
// the request context carries "request_id".
package requestid

// Package tenant resolves which tenant a request acts for.
//
// The mention pipeline never authenticates; the host hands the tenant in. For
// the demo API that is the X-Tenant-Id header, with a configurable fallback:
//
//	r.Use(tenant.Middleware(
//		tenant.NewHeaderResolver(tenant.DefaultHeader, "demo"),
//		tenant.WithSkipPaths("/health"),
//	))
//
// Handlers read the identifier with IDFromContext, and LoggerExtractor adds
// it to every log record made with the request context. The identifier is
// only checked for shape here; whether the tenant exists is answered by the
// directory.
package tenant

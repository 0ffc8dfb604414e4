// Package clientip determines the client address of HTTP requests for
// access logs.
//
// Forwarded headers are trusted only when named explicitly, so a direct
// client cannot choose the address it is logged under:
//
//	ips := clientip.New(clientip.HeaderCFConnectingIP, clientip.HeaderXForwardedFor)
//	r.Use(ips.Middleware)
package clientip

// Package clientip resolves the originating client address of a request.
//
// A Resolver trusts a fixed list of forwarding headers, first match wins, and
// falls back to the TCP peer address. Only list headers your proxy overwrites;
// anything else lets clients pick their own address.
//
//	res := clientip.New(clientip.DefaultHeaders...)
//	r.Use(res.Middleware)
//	...
//	ip, _ := clientip.FromContext(req.Context())
package clientip

// Package authsession owns "who is using this client right now".
//
// A Session holds the current visitor identity (or none, for guests), restores
// it from session-lifetime storage at startup, expires it after a period of
// inactivity, and renews it whenever an activity signal arrives.
//
// Lifecycle:
//
//	s := authsession.New(sessionStorage, authsession.WithLogger(log))
//	s.Hydrate(ctx)        // exactly once, before any consumer reads identity
//	s.Ready()             // true from here on
//	s.Login(ctx, identity)
//	s.Touch(ctx)          // activity signal; no-op for guests
//	s.Logout(ctx)
//
// The identity is persisted under the fixed key StorageKey after every change;
// an absent identity removes the record instead of writing an empty value.
// Unreadable records are treated as guest state and are never reported to the
// caller.
//
// Consumers that depend on identity register a Listener with Subscribe. The
// cart store uses it to switch its storage scope on login and logout.
package authsession

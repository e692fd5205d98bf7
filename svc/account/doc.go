// Package account resolves the account a request acts for and keeps it in
// the request context.
//
//	r.Use(account.Middleware(
//		account.NewHeaderResolver(account.DefaultHeader),
//		store,
//		account.WithCache(account.NewLRUCache(1024, time.Minute)),
//	))
//	r.Use(account.Require(nil))
//
// Middleware lets requests without an identifier through unchanged; Require
// rejects them. Authentication is not handled here.
package account

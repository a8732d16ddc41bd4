// Copyright (c) 2026 Kong Demo Platform. All rights reserved.
// Author: muhammad.mk.dev@gmail.com

package sec

// Identity is the verified consumer identity forwarded by the gateway.
//
// # Trust Model
//
// The Kong JWT plugin validates the access token at the edge and injects the
// consumer's ID and username as plain request headers. Downstream services
// (user, trade, notification) reconstruct this struct from those headers and
// never decode tokens themselves — that is the whole point of the
// stateless-gateway design.
type Identity struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

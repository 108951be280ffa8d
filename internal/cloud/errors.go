// SPDX-License-Identifier: Apache-2.0

package cloud

import "github.com/joomcode/errorx"

var (
	ErrNamespace = errorx.NewNamespace("cloud")

	// NotFoundError is fatal when a caller requires an existing resource for
	// identification. Inside the ensure paths absence is expected control flow
	// and never surfaces as this error.
	NotFoundError = ErrNamespace.NewType("not_found", errorx.NotFound())

	// AmbiguousError reports multiple matches for a resource the caller named
	// expecting exactly one. The engine never guesses which one was meant.
	AmbiguousError = ErrNamespace.NewType("ambiguous")

	// RemoteError wraps control-plane request failures. Requests are not
	// retried; bulk operations stop at the first failure so an incomplete run
	// cannot go unnoticed.
	RemoteError = ErrNamespace.NewType("remote")
)

// Copyright 2023 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

package tpm2lite

import (
	"github.com/canonical/go-tpm2lite/mu"
)

// pwAuthCommand returns the authorization for a password session with an
// empty password - the only session type this package supports.
func pwAuthCommand() *AuthCommand {
	return &AuthCommand{SessionHandle: HandlePW}
}

// marshalAuthArea marshals the authorization area for a command: a 32-bit
// size field covering the sessions that follow, then the session itself. The
// size isn't known until the session fields have been written, so space for
// it is reserved up front and patched in afterwards. If the area doesn't
// fit, buf is left in the failed state and the size field is never written.
func marshalAuthArea(buf *mu.Buffer, auth *AuthCommand) {
	size := buf.Reserve(4)
	base := buf.Remaining()

	buf.WriteUint32(uint32(auth.SessionHandle))
	buf.WriteSized(auth.Nonce)
	buf.WriteUint8(uint8(auth.SessionAttrs))
	buf.WriteSized(auth.HMAC)

	if buf.Err() != nil {
		return
	}
	size.WriteUint32(uint32(base - buf.Remaining()))
}

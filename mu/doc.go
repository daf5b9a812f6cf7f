// Copyright 2023 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

/*
Package mu provides helpers for marshalling to and unmarshalling from the TPM
wire format, within a fixed-size buffer supplied by the caller.

Unlike a general purpose serializer, this package never allocates backing
storage - it is intended for firmware-style environments where every command
is built inside a caller-owned buffer. All accesses go through a Buffer,
which couples a position with the remaining capacity and records the first
failure. Once a Buffer has failed, subsequent operations become no-ops, so a
sequence of dependent writes or reads can be performed without checking for
an error at every step. Callers check Buffer.Err once, at the end.

Integers are marshalled in big-endian byte order, as required by the TPM
library specification.
*/
package mu

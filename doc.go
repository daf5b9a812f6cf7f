// Copyright 2023 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

/*
Package tpm2lite implements a minimal command/response codec for TPM 2.0
devices, suitable for boot firmware environments.

This documentation refers to TPM commands and types that are described in
more detail in the TPM 2.0 Library Specification, which can be found at
https://trustedcomputinggroup.org/resource/tpm-library-specification/.

Unlike a full TPM library, this package supports only the small set of
commands that firmware needs before the OS takes over - TPM2_NV_Read and
TPM2_NV_Write, authorized with a password session against the platform
hierarchy - and it never allocates: commands are marshalled into a
caller-supplied fixed-size buffer with every write bounds-checked, and
response fields are returned as views into the caller's response buffer.

MarshalCommand and UnmarshalResponse are pure in-memory transforms. The
Context type layers the two over a Transport for callers that want a
complete NV read/write round trip.
*/
package tpm2lite

// Copyright 2023 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

package tpm2lite

const (
	TagRspCommand StructTag = 0x00c4 // TPM_ST_RSP_COMMAND
	TagNoSessions StructTag = 0x8001 // TPM_ST_NO_SESSIONS
	TagSessions   StructTag = 0x8002 // TPM_ST_SESSIONS
)

const (
	HandlePW       Handle = 0x40000009 // TPM_RS_PW, the password authorization session
	HandlePlatform Handle = 0x4000000c // TPM_RH_PLATFORM
)

const (
	CommandNVWrite CommandCode = 0x00000137 // TPM_CC_NV_Write
	CommandNVRead  CommandCode = 0x0000014e // TPM_CC_NV_Read
)

const (
	// ResponseSuccess corresponds to TPM_RC_SUCCESS.
	ResponseSuccess ResponseCode = 0
)

const (
	// MaxNVBufferSize is the maximum number of octets transferred by a
	// single NV read or write.
	MaxNVBufferSize = 512

	// headerSize is the wire size of CommandHeader and ResponseHeader.
	headerSize = 10

	// responseAuthAreaSize is the wire size of the authorization area in
	// a response to a command authorized with a single password session:
	// an empty nonce (2), the session attributes (1) and an empty HMAC
	// (2).
	responseAuthAreaSize = 5
)

// Copyright 2023 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

package tpm2lite

// Handle corresponds to the TPM_HANDLE type, and is a numeric identifier
// that references a resource on the TPM.
type Handle uint32

// CommandCode corresponds to the TPM_CC type.
type CommandCode uint32

// ResponseCode corresponds to the TPM_RC type.
type ResponseCode uint32

// StructTag corresponds to the TPM_ST type, and indicates whether a command
// or response packet carries an authorization area.
type StructTag uint16

// SessionAttributes corresponds to the TPMA_SESSION type, and represents the
// attributes of an authorization session.
type SessionAttributes uint8

const (
	// AttrContinueSession indicates that the session should not be
	// flushed once the command completes.
	AttrContinueSession SessionAttributes = 1 << 0
)

// Nonce corresponds to the TPM2B_NONCE type.
type Nonce []byte

// Auth corresponds to the TPM2B_AUTH type, and represents an authorization
// value.
type Auth []byte

// MaxNVBuffer corresponds to the TPM2B_MAX_NV_BUFFER type, and is the data
// transferred by a single NV read or write.
type MaxNVBuffer []byte

// CommandHeader is the header for a TPM command.
type CommandHeader struct {
	Tag         StructTag
	CommandSize uint32
	CommandCode CommandCode
}

// ResponseHeader is the header for the TPM's response to a command.
type ResponseHeader struct {
	Tag          StructTag
	ResponseSize uint32
	ResponseCode ResponseCode
}

// AuthCommand corresponds to the TPMS_AUTH_COMMAND type, and is the
// per-session authorization accompanying a command. On the wire the
// authorization area is preceded by a 32-bit size field covering its whole
// contents.
type AuthCommand struct {
	SessionHandle Handle
	Nonce         Nonce
	SessionAttrs  SessionAttributes
	HMAC          Auth
}

// NVWriteParams are the parameters for TPM2_NV_Write.
type NVWriteParams struct {
	Index  Handle      // the NV index to write to
	Data   MaxNVBuffer // the data to write
	Offset uint16      // octet offset into the NV area
}

// NVReadParams are the parameters for TPM2_NV_Read.
type NVReadParams struct {
	Index  Handle // the NV index to read from
	Size   uint16 // the number of octets to read
	Offset uint16 // octet offset into the NV area
}

// NVReadResponse is the parameter area of a successful TPM2_NV_Read
// response. Buffer is a view into the response buffer supplied to
// UnmarshalResponse, not a copy - it is only valid for as long as that
// buffer is.
type NVReadResponse struct {
	ParamsSize uint32
	Buffer     MaxNVBuffer
}

// Response is a decoded TPM response. The payload field that is populated is
// selected by the command code supplied to UnmarshalResponse - the wire
// format carries no payload type discriminator of its own.
type Response struct {
	Command CommandCode // the command code supplied by the caller
	Header  ResponseHeader

	// NVRead is the decoded parameter area for a TPM2_NV_Read response
	// that carried one. It is nil for header-only responses.
	NVRead *NVReadResponse
}

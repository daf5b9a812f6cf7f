// Copyright 2023 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

package tpm2lite

import (
	"errors"
	"fmt"

	"github.com/canonical/go-tpm2lite/mu"
)

// Body marshalers return the StructTag the command header must carry, so
// that whether a command adds an authorization area is a property of the
// marshaler rather than shared state.

func marshalNVWrite(buf *mu.Buffer, params *NVWriteParams) StructTag {
	buf.WriteUint32(uint32(HandlePlatform))
	buf.WriteUint32(uint32(params.Index))
	marshalAuthArea(buf, pwAuthCommand())
	if len(params.Data) > MaxNVBufferSize {
		buf.Fail(fmt.Errorf("data length %d exceeds the maximum NV buffer size", len(params.Data)))
	}
	buf.WriteSized(params.Data)
	buf.WriteUint16(params.Offset)
	return TagSessions
}

func marshalNVRead(buf *mu.Buffer, params *NVReadParams) StructTag {
	buf.WriteUint32(uint32(HandlePlatform))
	buf.WriteUint32(uint32(params.Index))
	marshalAuthArea(buf, pwAuthCommand())
	buf.WriteUint16(params.Size)
	buf.WriteUint16(params.Offset)
	return TagSessions
}

// MarshalCommand serializes a complete TPM command packet for the specified
// command code into dest, and returns the number of bytes written. The
// params argument must be the parameter type matching the command code -
// *NVReadParams for CommandNVRead and *NVWriteParams for CommandNVWrite.
//
// The header contains the total packet size, which isn't known until the
// body has been marshalled, so the header region is reserved first and
// patched in once the body size is realized. If dest is too small for the
// complete packet, a *MarshalError is returned and dest contents beyond the
// reported failure are unspecified, but never written past len(dest).
func MarshalCommand(command CommandCode, params interface{}, dest []byte) (int, error) {
	buf := mu.NewBuffer(dest)
	header := buf.Reserve(headerSize)

	var tag StructTag
	switch command {
	case CommandNVRead:
		p, ok := params.(*NVReadParams)
		if !ok {
			return 0, &MarshalError{command, fmt.Errorf("invalid parameter type %T", params)}
		}
		tag = marshalNVRead(buf, p)
	case CommandNVWrite:
		p, ok := params.(*NVWriteParams)
		if !ok {
			return 0, &MarshalError{command, fmt.Errorf("invalid parameter type %T", params)}
		}
		tag = marshalNVWrite(buf, p)
	default:
		logger.WithField("command", command).Error("request to marshal unsupported command")
		return 0, &MarshalError{command, errors.New("unsupported command code")}
	}

	if err := buf.Err(); err != nil {
		return 0, &MarshalError{command, err}
	}

	header.WriteUint16(uint16(tag))
	header.WriteUint32(uint32(buf.Offset()))
	header.WriteUint32(uint32(command))

	return buf.Offset(), nil
}

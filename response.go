// Copyright 2023 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

package tpm2lite

import (
	"encoding/hex"
	"fmt"

	"github.com/canonical/go-tpm2lite/mu"
)

// unmarshalNVRead decodes the parameter area of a TPM2_NV_Read response:
// the parameter area size, the NV buffer, then the response authorization
// area, which is discarded. Size inconsistencies that the original firmware
// implementations tolerate are logged rather than failing the parse here -
// if they leave bytes unaccounted for, UnmarshalResponse rejects the
// response on the trailing-byte check instead.
func unmarshalNVRead(buf *mu.Buffer, command CommandCode) *NVReadResponse {
	nvr := new(NVReadResponse)
	nvr.ParamsSize = buf.ReadUint32()

	data, err := buf.ReadSized()
	if err != nil {
		logger.WithField("command", command).Debugf("cannot unmarshal NV buffer: %v", err)
		return nvr
	}
	nvr.Buffer = MaxNVBuffer(data)

	if int(nvr.ParamsSize) != len(nvr.Buffer)+2 {
		logger.WithField("command", command).Debugf(
			"parameter area size %d inconsistent with buffer size %d", nvr.ParamsSize, len(nvr.Buffer))
		return nvr
	}

	if buf.Err() != nil {
		return nvr
	}

	// The authorization area of a password session response should be 5
	// bytes. Report any discrepancy but consume it either way.
	if buf.Remaining() != responseAuthAreaSize {
		logger.WithField("command", command).Debugf(
			"unexpected authorization area size %d", buf.Remaining())
	}
	buf.Skip(buf.Remaining())

	return nvr
}

// UnmarshalResponse deserializes the raw response to the specified command.
// The command code selects the payload unmarshaller - the wire format has no
// payload type discriminator, so a caller passing the wrong command code
// gets a misparse, not an error.
//
// The returned Response may reference rsp: for TPM2_NV_Read the NV buffer is
// a view into rsp, valid only for as long as rsp is.
//
// A *InvalidResponseError is returned if rsp is shorter than a response
// header, if the command code has no unmarshaller registered, or if any
// bytes of rsp are left over once the payload has been decoded.
func UnmarshalResponse(command CommandCode, rsp []byte) (*Response, error) {
	if len(rsp) < headerSize {
		return nil, &InvalidResponseError{command, fmt.Sprintf("insufficient bytes for a response header (got %d)", len(rsp))}
	}

	buf := mu.NewBuffer(rsp)

	resp := &Response{Command: command}
	resp.Header.Tag = StructTag(buf.ReadUint16())
	resp.Header.ResponseSize = buf.ReadUint32()
	resp.Header.ResponseCode = ResponseCode(buf.ReadUint32())

	if buf.Remaining() == 0 {
		// Header-only response. The declared size should match what
		// was actually received, but a mismatch is not treated as
		// fatal.
		if resp.Header.ResponseSize != headerSize {
			logger.WithField("command", command).Debugf(
				"header-only response with size field %d", resp.Header.ResponseSize)
		}
		return resp, nil
	}

	switch command {
	case CommandNVRead:
		resp.NVRead = unmarshalNVRead(buf, command)
	case CommandNVWrite:
		// Session data included in the response can be safely ignored.
		buf.Skip(buf.Remaining())
	default:
		logger.WithField("command", command).Errorf(
			"request to unmarshal response for unsupported command, code %#08x, payload:\n%s",
			uint32(resp.Header.ResponseCode), hex.Dump(rsp[headerSize:]))
		return nil, &InvalidResponseError{command, "unsupported command code"}
	}

	if err := buf.Err(); err != nil {
		return nil, &InvalidResponseError{command, fmt.Sprintf("cannot unmarshal payload: %v", err)}
	}
	if n := buf.Remaining(); n > 0 {
		logger.WithField("command", command).Debugf(
			"got %d bytes back, failed to parse (%d left over)", resp.Header.ResponseSize, n)
		return nil, &InvalidResponseError{command, fmt.Sprintf("payload contains %d trailing bytes", n)}
	}

	return resp, nil
}

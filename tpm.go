// Copyright 2023 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

package tpm2lite

// Transport represents a communication channel to a TPM implementation.
// Implementations are outside the scope of this package - firmware supplies
// whatever reaches its TPM, and tests supply loopbacks.
type Transport interface {
	// Read is used to receive a response to a previously transmitted command.
	Read(p []byte) (int, error)

	// Write is used to transmit a serialized command to the TPM implementation.
	// A command must be transmitted in a single write.
	Write(p []byte) (int, error)

	// Close closes the transport.
	Close() error
}

const (
	maxCommandSize  = 4096
	maxResponseSize = 4096
)

// Context is used for executing the commands this package supports via a
// Transport. It owns fixed-size command and response buffers, so executing a
// command performs no allocation.
//
// A Context is not safe for concurrent use: the response returned by one
// command references the context's response buffer and is overwritten by the
// next command.
type Context struct {
	transport Transport
	cmdBuf    [maxCommandSize]byte
	rspBuf    [maxResponseSize]byte
}

// NewContext creates a new Context for the supplied Transport. The Context
// takes ownership of the Transport.
func NewContext(transport Transport) *Context {
	return &Context{transport: transport}
}

// Close closes the transport associated with this context.
func (c *Context) Close() error {
	if err := c.transport.Close(); err != nil {
		return &TransportError{"close", err}
	}
	return nil
}

// RunCommand marshals the specified command and parameters, submits the
// packet via the transport, and unmarshals and decodes the response. The
// returned Response may reference this context's response buffer and is
// invalidated by the next command executed on it.
//
// A *TransportError is returned if the transport fails. One of *TPMError or
// *TPMWarning is returned if the TPM returns a response code other than
// ResponseSuccess.
func (c *Context) RunCommand(command CommandCode, params interface{}) (*Response, error) {
	n, err := MarshalCommand(command, params, c.cmdBuf[:])
	if err != nil {
		return nil, err
	}

	if _, err := c.transport.Write(c.cmdBuf[:n]); err != nil {
		return nil, &TransportError{"write", err}
	}

	rn, err := c.transport.Read(c.rspBuf[:])
	if err != nil {
		return nil, &TransportError{"read", err}
	}

	resp, err := UnmarshalResponse(command, c.rspBuf[:rn])
	if err != nil {
		return nil, err
	}
	if err := DecodeResponseCode(command, resp.Header.ResponseCode); err != nil {
		return nil, err
	}
	return resp, nil
}

// NVRead executes the TPM2_NV_Read command to read size octets from the NV
// index associated with index, starting at offset, using a password session
// with an empty password against the platform hierarchy.
//
// The returned buffer is a view into this context's response buffer and is
// only valid until the next command is executed on it.
func (c *Context) NVRead(index Handle, size, offset uint16) (MaxNVBuffer, error) {
	resp, err := c.RunCommand(CommandNVRead, &NVReadParams{Index: index, Size: size, Offset: offset})
	if err != nil {
		return nil, err
	}
	if resp.NVRead == nil {
		return nil, &InvalidResponseError{CommandNVRead, "response has no NV buffer"}
	}
	return resp.NVRead.Buffer, nil
}

// NVWrite executes the TPM2_NV_Write command to write data to the NV index
// associated with index, starting at offset, using a password session with
// an empty password against the platform hierarchy.
func (c *Context) NVWrite(index Handle, data MaxNVBuffer, offset uint16) error {
	_, err := c.RunCommand(CommandNVWrite, &NVWriteParams{Index: index, Data: data, Offset: offset})
	return err
}
